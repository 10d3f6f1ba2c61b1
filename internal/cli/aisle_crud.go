package cli

import (
	"context"
	"flag"
	"fmt"

	"store-catalog/internal/catalog"
	"store-catalog/internal/store"
)

// RunAisleCreate handles the 'aisle-create' command.
func RunAisleCreate(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("aisle-create", flag.ExitOnError)
	aisleID := fs.Int("id", 0, "External aisle id (required)")
	name := fs.String("name", "", "Aisle name (required)")
	rank := fs.Int("rank", 0, "Position within the department")
	departmentID := fs.Int("department", 0, "Owning department id (required)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *aisleID == 0 || *name == "" || *departmentID == 0 {
		fs.Usage()
		return fmt.Errorf("error: --id, --name and --department flags are required")
	}

	a := catalog.Aisle{AisleID: *aisleID, Name: *name, Rank: *rank, DepartmentID: *departmentID}
	if err := s.CreateAisle(ctx, &a); err != nil {
		return fmt.Errorf("failed to create aisle: %w", err)
	}
	fmt.Printf("Created aisle %d (%s)\n", a.AisleID, a.Name)
	return nil
}

// RunAisleList handles the 'aisle-list' command. With --department, only
// that department's aisles are listed, in rank order.
func RunAisleList(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("aisle-list", flag.ExitOnError)
	departmentID := fs.Int("department", 0, "Filter by owning department id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	var aisles []catalog.Aisle
	var err error
	if *departmentID != 0 {
		aisles, err = s.ListAislesByDepartment(ctx, *departmentID)
	} else {
		aisles, err = s.ListAisles(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list aisles: %w", err)
	}
	if len(aisles) == 0 {
		fmt.Println("No aisles found.")
		return nil
	}
	return printJSON(aisles)
}

// RunAisleGet handles the 'aisle-get' command.
func RunAisleGet(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("aisle-get", flag.ExitOnError)
	aisleID := fs.Int("id", 0, "External aisle id (required)")
	withProducts := fs.Bool("with-products", false, "Attach the aisle's products")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *aisleID == 0 {
		fs.Usage()
		return fmt.Errorf("error: --id flag is required")
	}

	depth := catalog.DepthFromFlags(*withProducts, false)
	view, err := s.HydrateAisle(ctx, *aisleID, depth)
	if err != nil {
		return fmt.Errorf("failed to get aisle: %w", err)
	}
	return printJSON(view)
}

// RunAisleUpdate handles the 'aisle-update' command (full replace of the
// mutable fields).
func RunAisleUpdate(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("aisle-update", flag.ExitOnError)
	aisleID := fs.Int("id", 0, "External aisle id (required)")
	name := fs.String("name", "", "Aisle name (required)")
	rank := fs.Int("rank", 0, "Position within the department")
	departmentID := fs.Int("department", 0, "Owning department id (required)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *aisleID == 0 || *name == "" || *departmentID == 0 {
		fs.Usage()
		return fmt.Errorf("error: --id, --name and --department flags are required")
	}

	if err := s.UpdateAisle(ctx, *aisleID, *name, *rank, *departmentID); err != nil {
		return fmt.Errorf("failed to update aisle: %w", err)
	}
	fmt.Printf("Updated aisle %d\n", *aisleID)
	return nil
}

// RunAislePatch handles the 'aisle-patch' command. Only flags that were set
// on the command line are applied.
func RunAislePatch(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("aisle-patch", flag.ExitOnError)
	aisleID := fs.Int("id", 0, "External aisle id (required)")
	name := fs.String("name", "", "Aisle name")
	rank := fs.Int("rank", 0, "Position within the department")
	departmentID := fs.Int("department", 0, "Owning department id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *aisleID == 0 {
		fs.Usage()
		return fmt.Errorf("error: --id flag is required")
	}

	var patch store.AislePatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "rank":
			patch.Rank = rank
		case "department":
			patch.DepartmentID = departmentID
		}
	})

	if err := s.PatchAisle(ctx, *aisleID, patch); err != nil {
		return fmt.Errorf("failed to patch aisle: %w", err)
	}
	fmt.Printf("Patched aisle %d\n", *aisleID)
	return nil
}

// RunAisleDelete handles the 'aisle-delete' command. The delete cascades to
// the aisle's products and their section edges.
func RunAisleDelete(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("aisle-delete", flag.ExitOnError)
	aisleID := fs.Int("id", 0, "External aisle id (required)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *aisleID == 0 {
		fs.Usage()
		return fmt.Errorf("error: --id flag is required")
	}

	if err := s.DeleteAisle(ctx, *aisleID); err != nil {
		return fmt.Errorf("failed to delete aisle: %w", err)
	}
	fmt.Printf("Deleted aisle %d\n", *aisleID)
	return nil
}
