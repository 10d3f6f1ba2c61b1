package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"store-catalog/internal/catalog"
)

// DepartmentPatch carries the fields a partial update may set. Nil fields
// are left untouched. The external id is the entity's address and is never
// patched.
type DepartmentPatch struct {
	Name *string
	Rank *int
}

func departmentExists(ctx context.Context, q sqlx.QueryerContext, departmentID int) (bool, error) {
	var n int
	err := sqlx.GetContext(ctx, q, &n,
		`SELECT count(*) FROM departments WHERE department_id = $1`, departmentID)
	if err != nil {
		return false, fmt.Errorf("failed to check department %d: %w", departmentID, err)
	}
	return n > 0, nil
}

// CreateDepartment inserts a new department. It fails with ErrConflict if
// the external id is already taken.
func (s *Store) CreateDepartment(ctx context.Context, d *catalog.Department) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exists, err := departmentExists(ctx, tx, d.DepartmentID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: department %d", catalog.ErrConflict, d.DepartmentID)
	}

	d.InternalID = uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO departments (internal_id, department_id, name, rank)
		 VALUES ($1, $2, $3, $4)`,
		d.InternalID, d.DepartmentID, d.Name, d.Rank)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: department %d", catalog.ErrConflict, d.DepartmentID)
		}
		return fmt.Errorf("failed to create department: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	d.Href = d.ComputeHref()
	return nil
}

// GetDepartment retrieves a flat department by external id.
func (s *Store) GetDepartment(ctx context.Context, departmentID int) (*catalog.Department, error) {
	var d catalog.Department
	err := s.db.GetContext(ctx, &d,
		`SELECT internal_id, department_id, name, rank
		 FROM departments WHERE department_id = $1`, departmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: department %d", catalog.ErrNotFound, departmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve department: %w", err)
	}
	d.Href = d.ComputeHref()
	return &d, nil
}

// ListDepartments returns every department ordered by rank.
func (s *Store) ListDepartments(ctx context.Context) ([]catalog.Department, error) {
	var departments []catalog.Department
	err := s.db.SelectContext(ctx, &departments,
		`SELECT internal_id, department_id, name, rank
		 FROM departments ORDER BY rank`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	for i := range departments {
		departments[i].Href = departments[i].ComputeHref()
	}
	return departments, nil
}

// UpdateDepartment replaces the department's mutable fields.
func (s *Store) UpdateDepartment(ctx context.Context, departmentID int, name string, rank int) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE departments SET name = $1, rank = $2 WHERE department_id = $3`,
		name, rank, departmentID)
	if err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update result: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: department %d", catalog.ErrNotFound, departmentID)
	}
	return nil
}

// PatchDepartment applies a partial update, setting only the provided
// fields.
func (s *Store) PatchDepartment(ctx context.Context, departmentID int, patch DepartmentPatch) error {
	var sets []string
	var args []interface{}
	argIndex := 1

	if patch.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *patch.Name)
		argIndex++
	}
	if patch.Rank != nil {
		sets = append(sets, fmt.Sprintf("rank = $%d", argIndex))
		args = append(args, *patch.Rank)
		argIndex++
	}
	if len(sets) == 0 {
		_, err := s.GetDepartment(ctx, departmentID)
		return err
	}

	args = append(args, departmentID)
	query := fmt.Sprintf(`UPDATE departments SET %s WHERE department_id = $%d`,
		strings.Join(sets, ", "), argIndex)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to patch department: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking patch result: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: department %d", catalog.ErrNotFound, departmentID)
	}
	return nil
}

// DeleteDepartment removes a department and cascades to its aisles, their
// products, and every section edge touching those products, all in one
// transaction.
func (s *Store) DeleteDepartment(ctx context.Context, departmentID int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exists, err := departmentExists(ctx, tx, departmentID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: department %d", catalog.ErrNotFound, departmentID)
	}

	var productIDs []int
	err = tx.SelectContext(ctx, &productIDs,
		`SELECT p.product_id
		 FROM products p JOIN aisles a ON a.aisle_id = p.aisle_id
		 WHERE a.department_id = $1`, departmentID)
	if err != nil {
		return fmt.Errorf("failed to enumerate department products: %w", err)
	}
	if err = deleteSectionEdges(ctx, tx, productIDs); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM products WHERE aisle_id IN
		   (SELECT aisle_id FROM aisles WHERE department_id = $1)`, departmentID)
	if err != nil {
		return fmt.Errorf("failed to delete department products: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`DELETE FROM aisles WHERE department_id = $1`, departmentID)
	if err != nil {
		return fmt.Errorf("failed to delete department aisles: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`DELETE FROM departments WHERE department_id = $1`, departmentID)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
