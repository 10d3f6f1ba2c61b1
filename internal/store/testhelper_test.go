package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"store-catalog/internal/catalog"
)

// newTestStore opens a throwaway SQLite-backed store so the suite runs the
// same SQL the service runs, without an external database.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite", filepath.Join(t.TempDir(), "catalog_test.db"))
	require.NoError(t, err, "failed to open test store")
	t.Cleanup(func() {
		_ = s.Close()
	})
	require.NoError(t, s.InitDB(context.Background()), "failed to init schema")
	return s
}

// seedWineCatalog inserts the two-aisle wine department used across the
// suite: department 1 with aisles 101/102 and products 1001/1002/2001/2002.
func seedWineCatalog(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.CreateDepartment(ctx, &catalog.Department{
		DepartmentID: 1, Name: "Wines", Rank: 1,
	}))
	require.NoError(t, s.CreateAisle(ctx, &catalog.Aisle{
		AisleID: 101, Name: "Red Wines", Rank: 1, DepartmentID: 1,
	}))
	require.NoError(t, s.CreateAisle(ctx, &catalog.Aisle{
		AisleID: 102, Name: "White Wines", Rank: 2, DepartmentID: 1,
	}))

	products := []catalog.Product{
		{ProductID: 1001, Name: "Cab", Rank: 1, Size: "750ml", Price: "$16.69",
			PricePer: "$16.69/each", Affix: "each", AisleID: 101},
		{ProductID: 1002, Name: "Chianti", Rank: 2, Size: "750ml", Price: "$10.89",
			PricePer: "$10.89/each", Affix: "each", AisleID: 101},
		{ProductID: 2001, Name: "Sauvignon Blanc", Rank: 1, Size: "750 ml", Price: "$19.19",
			PricePer: "$19.19/each", Affix: "each", AisleID: 102},
		{ProductID: 2002, Name: "Chardonnay", Rank: 2, Size: "750 ml", Price: "$13.59",
			PricePer: "$13.59/each", Affix: "each", AisleID: 102},
	}
	for i := range products {
		require.NoError(t, s.CreateProduct(ctx, &products[i]))
	}
}
