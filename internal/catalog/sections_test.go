package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSectionType_Canonical(t *testing.T) {
	for _, name := range []string{"featured_products", "related_items", "often_bought_with"} {
		st, err := ParseSectionType(name)
		require.NoError(t, err)
		assert.Equal(t, SectionType(name), st)
	}
}

func TestParseSectionType_SnapshotLabels(t *testing.T) {
	cases := map[string]SectionType{
		"Featured Products": SectionFeaturedProducts,
		"Related Items":     SectionRelatedItems,
		"Often Bought With": SectionOftenBoughtWith,
	}
	for label, want := range cases {
		st, err := ParseSectionType(label)
		require.NoError(t, err)
		assert.Equal(t, want, st)
	}
}

func TestParseSectionType_Unknown(t *testing.T) {
	_, err := ParseSectionType("trending_now")
	require.ErrorIs(t, err, ErrValidation)
}

func TestNewSections_AllTypesPresent(t *testing.T) {
	sections := NewSections()

	require.Len(t, sections, 3)
	for _, st := range SectionTypes {
		children, ok := sections[st]
		require.True(t, ok, "missing key %s", st)
		assert.NotNil(t, children)
		assert.Empty(t, children)
	}
}
