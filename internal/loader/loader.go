// Package loader ingests scraped JSON catalog snapshots into the store.
//
// A snapshot is a department -> aisle -> product tree plus per-level order
// lists; ranks are assigned from the zero-based position in those lists.
// Each record is inserted in its own transaction, in foreign-key order:
// departments, aisles, products, then section edges. A record that fails is
// logged and skipped; the load continues. Re-running a load reports a
// conflict for every record already inserted.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"store-catalog/internal/catalog"
	"store-catalog/internal/store"
)

// Snapshot is one parsed scrape. Parse state is scoped to this value and
// passed around explicitly; nothing is memoized process-wide.
type Snapshot struct {
	DepartmentOrder []int                         `json:"department_order"`
	Departments     map[string]SnapshotDepartment `json:"departments"`
}

// SnapshotDepartment mirrors one scraped department and its aisles.
type SnapshotDepartment struct {
	DepartmentID int                      `json:"department_id"`
	Name         string                   `json:"name"`
	AisleOrder   []int                    `json:"aisle_order"`
	Aisles       map[string]SnapshotAisle `json:"aisles"`
}

// SnapshotAisle mirrors one scraped aisle and its products.
type SnapshotAisle struct {
	AisleID      int                        `json:"aisle_id"`
	Name         string                     `json:"name"`
	ProductOrder []int                      `json:"product_order"`
	Products     map[string]SnapshotProduct `json:"products"`
}

// SnapshotProduct mirrors one scraped product. Sections map the scraped
// section label ("Featured Products") to the child product references.
type SnapshotProduct struct {
	ProductID int                      `json:"product_id"`
	Name      string                   `json:"name"`
	Size      string                   `json:"size"`
	Src       string                   `json:"src"`
	Alt       string                   `json:"alt"`
	Price     string                   `json:"price"`
	PricePer  string                   `json:"price_per"`
	Affix     string                   `json:"affix"`
	Sections  map[string][]SnapshotRef `json:"sections"`
}

// SnapshotRef references another product by external id.
type SnapshotRef struct {
	ProductID int `json:"product_id"`
}

// Stats counts the outcome of one load.
type Stats struct {
	Departments int
	Aisles      int
	Products    int
	Sections    int
	Failed      int
}

// Loader drives one snapshot load against a store.
type Loader struct {
	store  *store.Store
	logger *slog.Logger
}

// New creates a Loader. A nil logger falls back to slog.Default.
func New(s *store.Store, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{store: s, logger: logger}
}

// ReadSnapshot parses a snapshot file.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snap, nil
}

// Load ingests the snapshot. Per-record failures are logged and counted,
// never fatal; only a failure to walk the snapshot itself returns an error.
func (l *Loader) Load(ctx context.Context, snap *Snapshot) (*Stats, error) {
	stats := &Stats{}
	l.loadDepartments(ctx, snap, stats)
	l.loadAisles(ctx, snap, stats)
	l.loadProducts(ctx, snap, stats)
	// Section children may live in other aisles, so edges go in only after
	// every product exists.
	l.loadSections(ctx, snap, stats)
	return stats, nil
}

func (l *Loader) loadDepartments(ctx context.Context, snap *Snapshot, stats *Stats) {
	ranks := catalog.RanksFromOrder(snap.DepartmentOrder)
	for _, sd := range snap.Departments {
		rank, err := ranks.Rank(sd.DepartmentID)
		if err != nil {
			l.skip(stats, "department", sd.DepartmentID, err)
			continue
		}
		d := catalog.Department{DepartmentID: sd.DepartmentID, Name: sd.Name, Rank: rank}
		if err := l.store.CreateDepartment(ctx, &d); err != nil {
			l.skip(stats, "department", sd.DepartmentID, err)
			continue
		}
		stats.Departments++
	}
}

func (l *Loader) loadAisles(ctx context.Context, snap *Snapshot, stats *Stats) {
	for _, sd := range snap.Departments {
		ranks := catalog.RanksFromOrder(sd.AisleOrder)
		for _, sa := range sd.Aisles {
			rank, err := ranks.Rank(sa.AisleID)
			if err != nil {
				l.skip(stats, "aisle", sa.AisleID, err)
				continue
			}
			a := catalog.Aisle{
				AisleID:      sa.AisleID,
				Name:         sa.Name,
				Rank:         rank,
				DepartmentID: sd.DepartmentID,
			}
			if err := l.store.CreateAisle(ctx, &a); err != nil {
				l.skip(stats, "aisle", sa.AisleID, err)
				continue
			}
			stats.Aisles++
		}
	}
}

func (l *Loader) loadProducts(ctx context.Context, snap *Snapshot, stats *Stats) {
	for _, sd := range snap.Departments {
		for _, sa := range sd.Aisles {
			ranks := catalog.RanksFromOrder(sa.ProductOrder)
			for _, sp := range sa.Products {
				rank, err := ranks.Rank(sp.ProductID)
				if err != nil {
					l.skip(stats, "product", sp.ProductID, err)
					continue
				}
				p := catalog.Product{
					ProductID: sp.ProductID,
					Name:      sp.Name,
					Rank:      rank,
					Size:      sp.Size,
					ImageSrc:  sp.Src,
					ImageAlt:  sp.Alt,
					Price:     sp.Price,
					PricePer:  sp.PricePer,
					Affix:     sp.Affix,
					AisleID:   sa.AisleID,
				}
				if err := l.store.CreateProduct(ctx, &p); err != nil {
					l.skip(stats, "product", sp.ProductID, err)
					continue
				}
				stats.Products++
			}
		}
	}
}

func (l *Loader) loadSections(ctx context.Context, snap *Snapshot, stats *Stats) {
	for _, sd := range snap.Departments {
		for _, sa := range sd.Aisles {
			for _, sp := range sa.Products {
				for label, refs := range sp.Sections {
					sectionType, err := catalog.ParseSectionType(label)
					if err != nil {
						l.logger.Warn("skipping section group",
							"product", sp.ProductID, "label", label, "error", err)
						stats.Failed += len(refs)
						continue
					}
					for _, ref := range refs {
						edge := catalog.Section{
							SectionType:     sectionType,
							ParentProductID: sp.ProductID,
							ChildProductID:  ref.ProductID,
						}
						if err := l.store.AddSection(ctx, &edge); err != nil {
							l.skip(stats, "section", sp.ProductID, err)
							continue
						}
						stats.Sections++
					}
				}
			}
		}
	}
}

func (l *Loader) skip(stats *Stats, kind string, id int, err error) {
	stats.Failed++
	l.logger.Warn("skipping record", "kind", kind, "id", id, "error", err)
}
