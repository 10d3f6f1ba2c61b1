package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"store-catalog/internal/config"
	"store-catalog/internal/loader"
	"store-catalog/internal/store"
)

// LoadCatalogCommand creates the load-catalog command.
func LoadCatalogCommand(ctx context.Context, s *store.Store) *cobra.Command {
	var (
		snapshotPath string
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "load-catalog",
		Short: "Bulk-load a scraped catalog snapshot",
		Long: `Load a scraped JSON snapshot (departments, aisles, products, sections)
into the catalog database.

Records are inserted one transaction each, in foreign-key order. A record
that fails is logged and skipped; re-running a load reports a conflict for
every record already inserted.

Examples:
  # Load the default snapshot
  ./store-catalog load-catalog

  # Load a specific snapshot file
  ./store-catalog load-catalog --snapshot=data/snapshot.json

  # Parse and report record counts without writing
  ./store-catalog load-catalog --snapshot=data/snapshot.json --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoadCatalog(ctx, s, snapshotPath, dryRun)
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", config.GetSnapshotPath(), "Path to the snapshot JSON file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse the snapshot and report counts without writing")

	return cmd
}

// RunLoadCatalog handles the 'load-catalog' command.
func RunLoadCatalog(ctx context.Context, s *store.Store, args []string) error {
	cmd := LoadCatalogCommand(ctx, s)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func runLoadCatalog(ctx context.Context, s *store.Store, snapshotPath string, dryRun bool) error {
	snap, err := loader.ReadSnapshot(snapshotPath)
	if err != nil {
		return err
	}

	if dryRun {
		departments, aisles, products, sections := 0, 0, 0, 0
		for _, d := range snap.Departments {
			departments++
			for _, a := range d.Aisles {
				aisles++
				for _, p := range a.Products {
					products++
					for _, refs := range p.Sections {
						sections += len(refs)
					}
				}
			}
		}
		fmt.Printf("Snapshot %s: %d departments, %d aisles, %d products, %d section edges\n",
			snapshotPath, departments, aisles, products, sections)
		return nil
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	stats, err := loader.New(s, logger).Load(ctx, snap)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	fmt.Printf("Loaded %d departments, %d aisles, %d products, %d section edges (%d skipped)\n",
		stats.Departments, stats.Aisles, stats.Products, stats.Sections, stats.Failed)
	return nil
}
