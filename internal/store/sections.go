package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"store-catalog/internal/catalog"
)

// AddSection inserts a directed relationship edge. The edge is rejected
// with ErrValidation when parent == child or the type is unknown, with
// ErrBadReference when either product does not exist, and with ErrConflict
// when the edge is already present.
func (s *Store) AddSection(ctx context.Context, edge *catalog.Section) error {
	if !edge.SectionType.Valid() {
		return fmt.Errorf("%w: unknown section type %q", catalog.ErrValidation, edge.SectionType)
	}
	if edge.ParentProductID == edge.ChildProductID {
		return fmt.Errorf("%w: parent and child must be different products (%d)",
			catalog.ErrValidation, edge.ParentProductID)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, id := range []int{edge.ParentProductID, edge.ChildProductID} {
		exists, checkErr := productExists(ctx, tx, id)
		if checkErr != nil {
			return checkErr
		}
		if !exists {
			return fmt.Errorf("%w: product %d", catalog.ErrBadReference, id)
		}
	}

	var n int
	err = tx.GetContext(ctx, &n,
		`SELECT count(*) FROM sections
		 WHERE section_type = $1 AND parent_product_id = $2 AND child_product_id = $3`,
		edge.SectionType, edge.ParentProductID, edge.ChildProductID)
	if err != nil {
		return fmt.Errorf("failed to check section edge: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: section (%s, %d, %d)", catalog.ErrConflict,
			edge.SectionType, edge.ParentProductID, edge.ChildProductID)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sections (section_type, parent_product_id, child_product_id)
		 VALUES ($1, $2, $3)`,
		edge.SectionType, edge.ParentProductID, edge.ChildProductID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: section (%s, %d, %d)", catalog.ErrConflict,
				edge.SectionType, edge.ParentProductID, edge.ChildProductID)
		}
		return fmt.Errorf("failed to create section edge: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSection retrieves one edge by its full composite key.
func (s *Store) GetSection(ctx context.Context, sectionType catalog.SectionType, parentID, childID int) (*catalog.Section, error) {
	var edge catalog.Section
	err := s.db.GetContext(ctx, &edge,
		`SELECT section_type, parent_product_id, child_product_id FROM sections
		 WHERE section_type = $1 AND parent_product_id = $2 AND child_product_id = $3`,
		sectionType, parentID, childID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: section (%s, %d, %d)", catalog.ErrNotFound,
			sectionType, parentID, childID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve section edge: %w", err)
	}
	return &edge, nil
}

// ListSections returns every edge, ordered by parent id then type then
// child id for determinism.
func (s *Store) ListSections(ctx context.Context) ([]catalog.Section, error) {
	var edges []catalog.Section
	err := s.db.SelectContext(ctx, &edges,
		`SELECT section_type, parent_product_id, child_product_id FROM sections
		 ORDER BY parent_product_id, section_type, child_product_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list section edges: %w", err)
	}
	return edges, nil
}

// RemoveSection deletes one edge by its full composite key.
func (s *Store) RemoveSection(ctx context.Context, sectionType catalog.SectionType, parentID, childID int) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sections
		 WHERE section_type = $1 AND parent_product_id = $2 AND child_product_id = $3`,
		sectionType, parentID, childID)
	if err != nil {
		return fmt.Errorf("failed to delete section edge: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking delete result: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: section (%s, %d, %d)", catalog.ErrNotFound,
			sectionType, parentID, childID)
	}
	return nil
}

// SectionsFor resolves every edge with the given product as parent and
// hydrates the child products, grouped by type. All three section types are
// present in the result even when empty.
func (s *Store) SectionsFor(ctx context.Context, parentProductID int) (catalog.Sections, error) {
	type sectionChild struct {
		catalog.Product
		SectionType catalog.SectionType `db:"section_type"`
	}

	var children []sectionChild
	err := s.db.SelectContext(ctx, &children,
		`SELECT s.section_type, p.internal_id, p.product_id, p.name, p.rank, p.size,
		        p.image_src, p.image_alt, p.price, p.price_per, p.affix, p.aisle_id
		 FROM sections s JOIN products p ON p.product_id = s.child_product_id
		 WHERE s.parent_product_id = $1
		 ORDER BY s.section_type, s.child_product_id`, parentProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sections: %w", err)
	}

	sections := catalog.NewSections()
	for _, c := range children {
		c.Product.Href = c.Product.ComputeHref()
		sections[c.SectionType] = append(sections[c.SectionType], c.Product)
	}
	return sections, nil
}

// deleteSectionEdges removes every edge referencing one of the given
// products as parent or child. Shared by the cascade paths of the three
// entity deletes.
func deleteSectionEdges(ctx context.Context, tx *sqlx.Tx, productIDs []int) error {
	if len(productIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(
		`DELETE FROM sections WHERE parent_product_id IN (?) OR child_product_id IN (?)`,
		productIDs, productIDs)
	if err != nil {
		return fmt.Errorf("failed to build section cascade query: %w", err)
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to delete section edges: %w", err)
	}
	return nil
}
