package catalog

import "fmt"

// SectionType discriminates the kind of relationship a Section edge carries.
type SectionType string

const (
	SectionFeaturedProducts SectionType = "featured_products"
	SectionRelatedItems     SectionType = "related_items"
	SectionOftenBoughtWith  SectionType = "often_bought_with"
)

// SectionTypes lists every valid type in the order they appear in grouped
// section maps.
var SectionTypes = []SectionType{
	SectionFeaturedProducts,
	SectionRelatedItems,
	SectionOftenBoughtWith,
}

// labels maps the display names carried by scraped snapshots to the
// canonical types.
var sectionLabels = map[string]SectionType{
	"Featured Products": SectionFeaturedProducts,
	"Related Items":     SectionRelatedItems,
	"Often Bought With": SectionOftenBoughtWith,
}

// ParseSectionType accepts either a canonical type ("featured_products") or
// the display label found in snapshots ("Featured Products").
func ParseSectionType(s string) (SectionType, error) {
	switch SectionType(s) {
	case SectionFeaturedProducts, SectionRelatedItems, SectionOftenBoughtWith:
		return SectionType(s), nil
	}
	if st, ok := sectionLabels[s]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown section type %q", ErrValidation, s)
}

// Valid reports whether t is one of the three fixed section types.
func (t SectionType) Valid() bool {
	switch t {
	case SectionFeaturedProducts, SectionRelatedItems, SectionOftenBoughtWith:
		return true
	}
	return false
}

// Sections groups hydrated child products by section type. All three keys
// are always present so callers never need to test key existence.
type Sections map[SectionType][]Product

// NewSections returns a Sections map with every type mapped to an empty,
// non-nil slice.
func NewSections() Sections {
	s := make(Sections, len(SectionTypes))
	for _, t := range SectionTypes {
		s[t] = []Product{}
	}
	return s
}
