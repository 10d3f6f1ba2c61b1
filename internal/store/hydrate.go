package store

import (
	"context"
	"fmt"

	"store-catalog/internal/catalog"
)

// Hydration assembles entity views to a caller-requested depth. Each depth
// returns a distinct view type so relation fields that were not requested
// never appear in the serialized result.

// GetDepartmentWithAisles hydrates a department one level deep: its aisles
// are attached flat, with no products field.
func (s *Store) GetDepartmentWithAisles(ctx context.Context, departmentID int) (*catalog.DepartmentWithAisles, error) {
	d, err := s.GetDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	aisles, err := s.ListAislesByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if aisles == nil {
		aisles = []catalog.Aisle{}
	}
	return &catalog.DepartmentWithAisles{Department: *d, Aisles: aisles}, nil
}

// GetDepartmentTree hydrates the full department -> aisle -> product
// expansion. Every nested entity carries its computed href.
func (s *Store) GetDepartmentTree(ctx context.Context, departmentID int) (*catalog.DepartmentTree, error) {
	d, err := s.GetDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	aisles, err := s.ListAislesByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	tree := &catalog.DepartmentTree{Department: *d, Aisles: make([]catalog.AisleWithProducts, 0, len(aisles))}
	for _, a := range aisles {
		products, listErr := s.ListProductsByAisle(ctx, a.AisleID)
		if listErr != nil {
			return nil, listErr
		}
		if products == nil {
			products = []catalog.Product{}
		}
		tree.Aisles = append(tree.Aisles, catalog.AisleWithProducts{Aisle: a, Products: products})
	}
	return tree, nil
}

// GetAisleWithProducts hydrates an aisle with its products, each flat.
func (s *Store) GetAisleWithProducts(ctx context.Context, aisleID int) (*catalog.AisleWithProducts, error) {
	a, err := s.GetAisle(ctx, aisleID)
	if err != nil {
		return nil, err
	}
	products, err := s.ListProductsByAisle(ctx, aisleID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return &catalog.AisleWithProducts{Aisle: *a, Products: products}, nil
}

// GetProductWithSections hydrates a product with its section children
// grouped by type. The raw edges never appear on the view.
func (s *Store) GetProductWithSections(ctx context.Context, productID int) (*catalog.ProductWithSections, error) {
	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	sections, err := s.SectionsFor(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &catalog.ProductWithSections{Product: *p, Sections: sections}, nil
}

// HydrateDepartment returns the department view for the requested depth.
func (s *Store) HydrateDepartment(ctx context.Context, departmentID int, depth catalog.Depth) (interface{}, error) {
	switch depth {
	case catalog.DepthFlat:
		return s.GetDepartment(ctx, departmentID)
	case catalog.DepthWithChildren:
		return s.GetDepartmentWithAisles(ctx, departmentID)
	case catalog.DepthWithGrandchildren:
		return s.GetDepartmentTree(ctx, departmentID)
	default:
		return nil, fmt.Errorf("%w: unknown hydration depth %d", catalog.ErrValidation, depth)
	}
}

// HydrateAisle returns the aisle view for the requested depth. Aisles have
// no grandchild relation beyond products, so the two deep levels coincide.
func (s *Store) HydrateAisle(ctx context.Context, aisleID int, depth catalog.Depth) (interface{}, error) {
	switch depth {
	case catalog.DepthFlat:
		return s.GetAisle(ctx, aisleID)
	case catalog.DepthWithChildren, catalog.DepthWithGrandchildren:
		return s.GetAisleWithProducts(ctx, aisleID)
	default:
		return nil, fmt.Errorf("%w: unknown hydration depth %d", catalog.ErrValidation, depth)
	}
}

// HydrateProduct returns the product view for the requested depth. A
// product's only relation is its grouped section children.
func (s *Store) HydrateProduct(ctx context.Context, productID int, depth catalog.Depth) (interface{}, error) {
	switch depth {
	case catalog.DepthFlat:
		return s.GetProduct(ctx, productID)
	case catalog.DepthWithChildren, catalog.DepthWithGrandchildren:
		return s.GetProductWithSections(ctx, productID)
	default:
		return nil, fmt.Errorf("%w: unknown hydration depth %d", catalog.ErrValidation, depth)
	}
}
