package loader

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-catalog/internal/catalog"
	"store-catalog/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("sqlite", filepath.Join(t.TempDir(), "loader_test.db"))
	require.NoError(t, err, "failed to open test store")
	t.Cleanup(func() {
		_ = s.Close()
	})
	require.NoError(t, s.InitDB(context.Background()), "failed to init schema")
	return s
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func wineSnapshot() *Snapshot {
	return &Snapshot{
		DepartmentOrder: []int{1},
		Departments: map[string]SnapshotDepartment{
			"Wines": {
				DepartmentID: 1,
				Name:         "Wines",
				AisleOrder:   []int{102, 101},
				Aisles: map[string]SnapshotAisle{
					"Red Wines": {
						AisleID:      101,
						Name:         "Red Wines",
						ProductOrder: []int{1002, 1001},
						Products: map[string]SnapshotProduct{
							"Cab": {
								ProductID: 1001, Name: "Cab", Size: "750ml",
								Price: "$16.69", PricePer: "$16.69/each", Affix: "each",
								Sections: map[string][]SnapshotRef{
									"Featured Products": {{ProductID: 1002}, {ProductID: 2001}},
								},
							},
							"Chianti": {
								ProductID: 1002, Name: "Chianti", Size: "750ml",
								Price: "$10.89", PricePer: "$10.89/each", Affix: "each",
							},
						},
					},
					"White Wines": {
						AisleID:      102,
						Name:         "White Wines",
						ProductOrder: []int{2001},
						Products: map[string]SnapshotProduct{
							"Sauvignon Blanc": {
								ProductID: 2001, Name: "Sauvignon Blanc", Size: "750 ml",
								Price: "$19.19", PricePer: "$19.19/each", Affix: "each",
								Sections: map[string][]SnapshotRef{
									"Often Bought With": {{ProductID: 1002}},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestLoad_FullSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stats, err := New(s, quietLogger()).Load(ctx, wineSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Departments)
	assert.Equal(t, 2, stats.Aisles)
	assert.Equal(t, 3, stats.Products)
	assert.Equal(t, 3, stats.Sections)
	assert.Equal(t, 0, stats.Failed)

	// ranks come from zero-based order list positions
	d, err := s.GetDepartment(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Rank)

	whites, err := s.GetAisle(ctx, 102)
	require.NoError(t, err)
	assert.Equal(t, 0, whites.Rank, "first in aisle_order")
	reds, err := s.GetAisle(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 1, reds.Rank)

	cab, err := s.GetProduct(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, 1, cab.Rank, "second in product_order")

	// the cross-aisle edge resolved because edges load after all products
	sections, err := s.SectionsFor(ctx, 1001)
	require.NoError(t, err)
	featured := sections[catalog.SectionFeaturedProducts]
	require.Len(t, featured, 2)
	assert.Equal(t, 1002, featured[0].ProductID)
	assert.Equal(t, 2001, featured[1].ProductID)
}

func TestLoad_UnrankedRecordSkipped(t *testing.T) {
	s := newTestStore(t)

	snap := wineSnapshot()
	dept := snap.Departments["Wines"]
	dept.AisleOrder = []int{101} // 102 no longer ranked
	snap.Departments["Wines"] = dept

	stats, err := New(s, quietLogger()).Load(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Aisles)
	// aisle 102 skipped, its product orphaned, plus the edge to the missing
	// child and the edge from the missing parent
	assert.Equal(t, 4, stats.Failed)

	_, getErr := s.GetAisle(context.Background(), 102)
	assert.ErrorIs(t, getErr, catalog.ErrNotFound)
}

func TestLoad_RerunSkipsEverythingAlreadyLoaded(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	l := New(s, quietLogger())

	first, err := l.Load(ctx, wineSnapshot())
	require.NoError(t, err)
	require.Equal(t, 0, first.Failed)

	second, err := l.Load(ctx, wineSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Departments)
	assert.Equal(t, 0, second.Aisles)
	assert.Equal(t, 0, second.Products)
	assert.Equal(t, 0, second.Sections)
	total := first.Departments + first.Aisles + first.Products + first.Sections
	assert.Equal(t, total, second.Failed, "every record conflicts on re-run")

	// store is unchanged
	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestLoad_UnknownSectionLabelSkipsGroup(t *testing.T) {
	s := newTestStore(t)

	snap := wineSnapshot()
	cab := snap.Departments["Wines"].Aisles["Red Wines"].Products["Cab"]
	cab.Sections["Bargain Bin"] = []SnapshotRef{{ProductID: 1002}}
	snap.Departments["Wines"].Aisles["Red Wines"].Products["Cab"] = cab

	stats, err := New(s, quietLogger()).Load(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Sections, "known groups still load")
	assert.Equal(t, 1, stats.Failed)
}

func TestReadSnapshot(t *testing.T) {
	raw, err := json.Marshal(wineSnapshot())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	snap, err := ReadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, snap.Departments, 1)
	assert.Equal(t, []int{1}, snap.DepartmentOrder)
	assert.Len(t, snap.Departments["Wines"].Aisles, 2)
}

func TestReadSnapshot_MissingFile(t *testing.T) {
	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
