package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-catalog/internal/catalog"
)

func TestAddSection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedWineCatalog(t, s)

	edge := catalog.Section{
		SectionType: catalog.SectionFeaturedProducts, ParentProductID: 1001, ChildProductID: 1002,
	}
	require.NoError(t, s.AddSection(ctx, &edge))

	got, err := s.GetSection(ctx, catalog.SectionFeaturedProducts, 1001, 1002)
	require.NoError(t, err)
	assert.Equal(t, catalog.SectionFeaturedProducts, got.SectionType)
	assert.Equal(t, 1001, got.ParentProductID)
	assert.Equal(t, 1002, got.ChildProductID)
}

func TestAddSection_UnknownType(t *testing.T) {
	s := newTestStore(t)
	seedWineCatalog(t, s)

	err := s.AddSection(context.Background(), &catalog.Section{
		SectionType: "bargain_bin", ParentProductID: 1001, ChildProductID: 1002,
	})
	require.ErrorIs(t, err, catalog.ErrValidation)
}

func TestAddSection_SelfEdge(t *testing.T) {
	s := newTestStore(t)
	seedWineCatalog(t, s)

	err := s.AddSection(context.Background(), &catalog.Section{
		SectionType: catalog.SectionRelatedItems, ParentProductID: 1001, ChildProductID: 1001,
	})
	require.ErrorIs(t, err, catalog.ErrValidation)
}

func TestAddSection_SelfEdgeOnMissingProduct(t *testing.T) {
	s := newTestStore(t)
	seedWineCatalog(t, s)

	// the self-edge rule fires before existence is checked
	err := s.AddSection(context.Background(), &catalog.Section{
		SectionType: catalog.SectionRelatedItems, ParentProductID: 9999, ChildProductID: 9999,
	})
	require.ErrorIs(t, err, catalog.ErrValidation)
}

func TestAddSection_MissingProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedWineCatalog(t, s)

	err := s.AddSection(ctx, &catalog.Section{
		SectionType: catalog.SectionRelatedItems, ParentProductID: 9999, ChildProductID: 1002,
	})
	require.ErrorIs(t, err, catalog.ErrBadReference)

	err = s.AddSection(ctx, &catalog.Section{
		SectionType: catalog.SectionRelatedItems, ParentProductID: 1001, ChildProductID: 9999,
	})
	require.ErrorIs(t, err, catalog.ErrBadReference)
}

func TestAddSection_DuplicateEdgeConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedWineCatalog(t, s)

	edge := catalog.Section{
		SectionType: catalog.SectionOftenBoughtWith, ParentProductID: 1001, ChildProductID: 2002,
	}
	require.NoError(t, s.AddSection(ctx, &edge))

	err := s.AddSection(ctx, &edge)
	require.ErrorIs(t, err, catalog.ErrConflict)
}

func TestAddSection_SamePairDifferentTypeAllowed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedWineCatalog(t, s)

	require.NoError(t, s.AddSection(ctx, &catalog.Section{
		SectionType: catalog.SectionFeaturedProducts, ParentProductID: 1001, ChildProductID: 1002,
	}))
	require.NoError(t, s.AddSection(ctx, &catalog.Section{
		SectionType: catalog.SectionRelatedItems, ParentProductID: 1001, ChildProductID: 1002,
	}))

	edges, err := s.ListSections(ctx)
	require.NoError(t, err)
	assert.Len(t, edges, 2)
}

func TestGetSection_NotFound(t *testing.T) {
	s := newTestStore(t)
	seedWineCatalog(t, s)

	_, err := s.GetSection(context.Background(), catalog.SectionFeaturedProducts, 1001, 1002)
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestListSections_DeterministicOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedWineCatalog(t, s)

	require.NoError(t, s.AddSection(ctx, &catalog.Section{
		SectionType: catalog.SectionRelatedItems, ParentProductID: 2001, ChildProductID: 1001,
	}))
	require.NoError(t, s.AddSection(ctx, &catalog.Section{
		SectionType: catalog.SectionFeaturedProducts, ParentProductID: 1001, ChildProductID: 2002,
	}))
	require.NoError(t, s.AddSection(ctx, &catalog.Section{
		SectionType: catalog.SectionFeaturedProducts, ParentProductID: 1001, ChildProductID: 1002,
	}))

	edges, err := s.ListSections(ctx)
	require.NoError(t, err)
	require.Len(t, edges, 3)
	assert.Equal(t, 1002, edges[0].ChildProductID)
	assert.Equal(t, 2002, edges[1].ChildProductID)
	assert.Equal(t, 2001, edges[2].ParentProductID)
}

func TestRemoveSection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedWineCatalog(t, s)

	require.NoError(t, s.AddSection(ctx, &catalog.Section{
		SectionType: catalog.SectionFeaturedProducts, ParentProductID: 1001, ChildProductID: 1002,
	}))
	require.NoError(t, s.RemoveSection(ctx, catalog.SectionFeaturedProducts, 1001, 1002))

	_, err := s.GetSection(ctx, catalog.SectionFeaturedProducts, 1001, 1002)
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRemoveSection_NotFound(t *testing.T) {
	s := newTestStore(t)
	seedWineCatalog(t, s)

	err := s.RemoveSection(context.Background(), catalog.SectionRelatedItems, 1001, 1002)
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestSectionsFor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedWineCatalog(t, s)

	require.NoError(t, s.AddSection(ctx, &catalog.Section{
		SectionType: catalog.SectionFeaturedProducts, ParentProductID: 1001, ChildProductID: 1002,
	}))
	require.NoError(t, s.AddSection(ctx, &catalog.Section{
		SectionType: catalog.SectionFeaturedProducts, ParentProductID: 1001, ChildProductID: 2001,
	}))
	require.NoError(t, s.AddSection(ctx, &catalog.Section{
		SectionType: catalog.SectionOftenBoughtWith, ParentProductID: 1001, ChildProductID: 2002,
	}))
	// reverse edge must not appear under 1001
	require.NoError(t, s.AddSection(ctx, &catalog.Section{
		SectionType: catalog.SectionRelatedItems, ParentProductID: 2001, ChildProductID: 1001,
	}))

	sections, err := s.SectionsFor(ctx, 1001)
	require.NoError(t, err)
	require.Len(t, sections, 3)

	featured := sections[catalog.SectionFeaturedProducts]
	require.Len(t, featured, 2)
	assert.Equal(t, "Chianti", featured[0].Name)
	assert.Equal(t, "/store/items/item1002", featured[0].Href)
	assert.Equal(t, "Sauvignon Blanc", featured[1].Name)

	often := sections[catalog.SectionOftenBoughtWith]
	require.Len(t, often, 1)
	assert.Equal(t, 2002, often[0].ProductID)

	assert.Empty(t, sections[catalog.SectionRelatedItems])
}

func TestSectionsFor_NoEdgesStillHasAllTypes(t *testing.T) {
	s := newTestStore(t)
	seedWineCatalog(t, s)

	sections, err := s.SectionsFor(context.Background(), 2002)
	require.NoError(t, err)
	require.Len(t, sections, 3)
	for _, st := range catalog.SectionTypes {
		children, ok := sections[st]
		assert.True(t, ok, "type %s must be present", st)
		assert.Empty(t, children)
	}
}
