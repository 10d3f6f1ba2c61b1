package catalog

import "fmt"

// Department is the top level of the store hierarchy. External consumers
// address it by DepartmentID, never by the surrogate InternalID.
type Department struct {
	InternalID   string `db:"internal_id" json:"-"`
	DepartmentID int    `db:"department_id" json:"department_id"`
	Name         string `db:"name" json:"name"`
	Rank         int    `db:"rank" json:"rank"`
	Href         string `db:"-" json:"href,omitempty"`
}

// Aisle belongs to exactly one department. Rank orders aisles within their
// department, not globally.
type Aisle struct {
	InternalID   string `db:"internal_id" json:"-"`
	AisleID      int    `db:"aisle_id" json:"aisle_id"`
	Name         string `db:"name" json:"name"`
	Rank         int    `db:"rank" json:"rank"`
	DepartmentID int    `db:"department_id" json:"department_id"`
	Href         string `db:"-" json:"href,omitempty"`
}

// Product belongs to exactly one aisle. Price fields are display strings as
// scraped, not parsed amounts.
type Product struct {
	InternalID string `db:"internal_id" json:"-"`
	ProductID  int    `db:"product_id" json:"product_id"`
	Name       string `db:"name" json:"name"`
	Rank       int    `db:"rank" json:"rank"`
	Size       string `db:"size" json:"size"`
	ImageSrc   string `db:"image_src" json:"src"`
	ImageAlt   string `db:"image_alt" json:"alt"`
	Price      string `db:"price" json:"price"`
	PricePer   string `db:"price_per" json:"price_per"`
	Affix      string `db:"affix" json:"affix"`
	AisleID    int    `db:"aisle_id" json:"aisle_id"`
	Href       string `db:"-" json:"href,omitempty"`
}

// Section is a directed, typed relationship edge between two products. The
// composite (SectionType, ParentProductID, ChildProductID) is the primary
// key; an edge from A to B does not imply one from B to A.
type Section struct {
	SectionType     SectionType `db:"section_type" json:"section_type"`
	ParentProductID int         `db:"parent_product_id" json:"parent_product_id"`
	ChildProductID  int         `db:"child_product_id" json:"child_product_id"`
}

// ComputeHref derives the department path from its external id. Hrefs are
// never stored.
func (d *Department) ComputeHref() string {
	return fmt.Sprintf("/store/departments/%d", d.DepartmentID)
}

// ComputeHref derives the aisle path from its own and its department's
// external ids.
func (a *Aisle) ComputeHref() string {
	return fmt.Sprintf("/store/departments/%d/aisles/%d", a.DepartmentID, a.AisleID)
}

// ComputeHref derives the item path from the product's external id.
func (p *Product) ComputeHref() string {
	return fmt.Sprintf("/store/items/item%d", p.ProductID)
}
