package catalog

// Depth controls how many levels of child relations the hydration engine
// attaches to a returned view. Each depth has its own view struct so that
// unrequested relation fields are absent from the serialized result rather
// than null or empty.
type Depth int

const (
	// DepthFlat returns the entity only, no relation fields.
	DepthFlat Depth = iota
	// DepthWithChildren attaches immediate children, themselves flat.
	DepthWithChildren
	// DepthWithGrandchildren attaches children and their children: the full
	// department -> aisle -> product expansion, or a product's grouped
	// section children.
	DepthWithGrandchildren
)

// DepthFromFlags translates the two query booleans of the read endpoints
// into a Depth. The deeper flag wins.
func DepthFromFlags(withChildren, withGrandchildren bool) Depth {
	switch {
	case withGrandchildren:
		return DepthWithGrandchildren
	case withChildren:
		return DepthWithChildren
	default:
		return DepthFlat
	}
}

// DepartmentWithAisles is a department hydrated one level deep. Its aisles
// carry no products field.
type DepartmentWithAisles struct {
	Department
	Aisles []Aisle `json:"aisles"`
}

// DepartmentTree is the full three-level expansion.
type DepartmentTree struct {
	Department
	Aisles []AisleWithProducts `json:"aisles"`
}

// AisleWithProducts is an aisle hydrated with its products, each flat.
type AisleWithProducts struct {
	Aisle
	Products []Product `json:"products"`
}

// ProductWithSections is a product hydrated with its section children
// grouped by type. The raw section edges used to build the map are not part
// of the view.
type ProductWithSections struct {
	Product
	Sections Sections `json:"sections"`
}
