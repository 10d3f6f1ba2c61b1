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

// AislePatch carries the fields a partial aisle update may set. Patching
// DepartmentID re-validates the referenced department.
type AislePatch struct {
	Name         *string
	Rank         *int
	DepartmentID *int
}

func aisleExists(ctx context.Context, q sqlx.QueryerContext, aisleID int) (bool, error) {
	var n int
	err := sqlx.GetContext(ctx, q, &n,
		`SELECT count(*) FROM aisles WHERE aisle_id = $1`, aisleID)
	if err != nil {
		return false, fmt.Errorf("failed to check aisle %d: %w", aisleID, err)
	}
	return n > 0, nil
}

// CreateAisle inserts a new aisle. The referenced department must exist,
// else ErrBadReference; a duplicate aisle id fails with ErrConflict.
func (s *Store) CreateAisle(ctx context.Context, a *catalog.Aisle) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exists, err := aisleExists(ctx, tx, a.AisleID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: aisle %d", catalog.ErrConflict, a.AisleID)
	}

	deptExists, err := departmentExists(ctx, tx, a.DepartmentID)
	if err != nil {
		return err
	}
	if !deptExists {
		return fmt.Errorf("%w: department %d", catalog.ErrBadReference, a.DepartmentID)
	}

	a.InternalID = uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO aisles (internal_id, aisle_id, name, rank, department_id)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.InternalID, a.AisleID, a.Name, a.Rank, a.DepartmentID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: aisle %d", catalog.ErrConflict, a.AisleID)
		}
		return fmt.Errorf("failed to create aisle: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	a.Href = a.ComputeHref()
	return nil
}

// GetAisle retrieves a flat aisle by external id.
func (s *Store) GetAisle(ctx context.Context, aisleID int) (*catalog.Aisle, error) {
	var a catalog.Aisle
	err := s.db.GetContext(ctx, &a,
		`SELECT internal_id, aisle_id, name, rank, department_id
		 FROM aisles WHERE aisle_id = $1`, aisleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: aisle %d", catalog.ErrNotFound, aisleID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve aisle: %w", err)
	}
	a.Href = a.ComputeHref()
	return &a, nil
}

// ListAisles returns every aisle, grouped by department and ordered by rank
// within each.
func (s *Store) ListAisles(ctx context.Context) ([]catalog.Aisle, error) {
	var aisles []catalog.Aisle
	err := s.db.SelectContext(ctx, &aisles,
		`SELECT internal_id, aisle_id, name, rank, department_id
		 FROM aisles ORDER BY department_id, rank`)
	if err != nil {
		return nil, fmt.Errorf("failed to list aisles: %w", err)
	}
	for i := range aisles {
		aisles[i].Href = aisles[i].ComputeHref()
	}
	return aisles, nil
}

// ListAislesByDepartment returns the department's aisles ordered by rank.
// The department itself must exist, else ErrNotFound.
func (s *Store) ListAislesByDepartment(ctx context.Context, departmentID int) ([]catalog.Aisle, error) {
	exists, err := departmentExists(ctx, s.db, departmentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: department %d", catalog.ErrNotFound, departmentID)
	}

	var aisles []catalog.Aisle
	err = s.db.SelectContext(ctx, &aisles,
		`SELECT internal_id, aisle_id, name, rank, department_id
		 FROM aisles WHERE department_id = $1 ORDER BY rank`, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list aisles by department: %w", err)
	}
	for i := range aisles {
		aisles[i].Href = aisles[i].ComputeHref()
	}
	return aisles, nil
}

// UpdateAisle replaces the aisle's mutable fields. Moving the aisle to
// another department re-validates the reference.
func (s *Store) UpdateAisle(ctx context.Context, aisleID int, name string, rank, departmentID int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deptExists, err := departmentExists(ctx, tx, departmentID)
	if err != nil {
		return err
	}
	if !deptExists {
		return fmt.Errorf("%w: department %d", catalog.ErrBadReference, departmentID)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE aisles SET name = $1, rank = $2, department_id = $3 WHERE aisle_id = $4`,
		name, rank, departmentID, aisleID)
	if err != nil {
		return fmt.Errorf("failed to update aisle: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update result: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: aisle %d", catalog.ErrNotFound, aisleID)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// PatchAisle applies a partial update, setting only the provided fields.
func (s *Store) PatchAisle(ctx context.Context, aisleID int, patch AislePatch) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

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
	if patch.DepartmentID != nil {
		deptExists, checkErr := departmentExists(ctx, tx, *patch.DepartmentID)
		if checkErr != nil {
			return checkErr
		}
		if !deptExists {
			return fmt.Errorf("%w: department %d", catalog.ErrBadReference, *patch.DepartmentID)
		}
		sets = append(sets, fmt.Sprintf("department_id = $%d", argIndex))
		args = append(args, *patch.DepartmentID)
		argIndex++
	}
	if len(sets) == 0 {
		_, err = s.GetAisle(ctx, aisleID)
		return err
	}

	args = append(args, aisleID)
	query := fmt.Sprintf(`UPDATE aisles SET %s WHERE aisle_id = $%d`,
		strings.Join(sets, ", "), argIndex)

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to patch aisle: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking patch result: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: aisle %d", catalog.ErrNotFound, aisleID)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteAisle removes an aisle, its products, and every section edge
// touching those products, all in one transaction.
func (s *Store) DeleteAisle(ctx context.Context, aisleID int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exists, err := aisleExists(ctx, tx, aisleID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: aisle %d", catalog.ErrNotFound, aisleID)
	}

	var productIDs []int
	err = tx.SelectContext(ctx, &productIDs,
		`SELECT product_id FROM products WHERE aisle_id = $1`, aisleID)
	if err != nil {
		return fmt.Errorf("failed to enumerate aisle products: %w", err)
	}
	if err = deleteSectionEdges(ctx, tx, productIDs); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM products WHERE aisle_id = $1`, aisleID)
	if err != nil {
		return fmt.Errorf("failed to delete aisle products: %w", err)
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM aisles WHERE aisle_id = $1`, aisleID)
	if err != nil {
		return fmt.Errorf("failed to delete aisle: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
