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

const productColumns = `internal_id, product_id, name, rank, size,
	image_src, image_alt, price, price_per, affix, aisle_id`

// ProductPatch carries the fields a partial product update may set.
// Patching AisleID re-validates the referenced aisle.
type ProductPatch struct {
	Name     *string
	Rank     *int
	Size     *string
	ImageSrc *string
	ImageAlt *string
	Price    *string
	PricePer *string
	Affix    *string
	AisleID  *int
}

func productExists(ctx context.Context, q sqlx.QueryerContext, productID int) (bool, error) {
	var n int
	err := sqlx.GetContext(ctx, q, &n,
		`SELECT count(*) FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return false, fmt.Errorf("failed to check product %d: %w", productID, err)
	}
	return n > 0, nil
}

// CreateProduct inserts a new product. The referenced aisle must exist,
// else ErrBadReference; a duplicate product id or name fails with
// ErrConflict.
func (s *Store) CreateProduct(ctx context.Context, p *catalog.Product) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exists, err := productExists(ctx, tx, p.ProductID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: product %d", catalog.ErrConflict, p.ProductID)
	}

	aExists, err := aisleExists(ctx, tx, p.AisleID)
	if err != nil {
		return err
	}
	if !aExists {
		return fmt.Errorf("%w: aisle %d", catalog.ErrBadReference, p.AisleID)
	}

	p.InternalID = uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO products (internal_id, product_id, name, rank, size,
		                       image_src, image_alt, price, price_per, affix, aisle_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.InternalID, p.ProductID, p.Name, p.Rank, p.Size,
		p.ImageSrc, p.ImageAlt, p.Price, p.PricePer, p.Affix, p.AisleID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: product %d (%s)", catalog.ErrConflict, p.ProductID, p.Name)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	p.Href = p.ComputeHref()
	return nil
}

// GetProduct retrieves a flat product by external id.
func (s *Store) GetProduct(ctx context.Context, productID int) (*catalog.Product, error) {
	var p catalog.Product
	err := s.db.GetContext(ctx, &p,
		`SELECT `+productColumns+` FROM products WHERE product_id = $1`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: product %d", catalog.ErrNotFound, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	p.Href = p.ComputeHref()
	return &p, nil
}

// GetProductByName retrieves a flat product by its unique name.
func (s *Store) GetProductByName(ctx context.Context, name string) (*catalog.Product, error) {
	var p catalog.Product
	err := s.db.GetContext(ctx, &p,
		`SELECT `+productColumns+` FROM products WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: product %q", catalog.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	p.Href = p.ComputeHref()
	return &p, nil
}

// ListProducts returns every product, grouped by aisle and ordered by rank
// within each.
func (s *Store) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	err := s.db.SelectContext(ctx, &products,
		`SELECT `+productColumns+` FROM products ORDER BY aisle_id, rank`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	for i := range products {
		products[i].Href = products[i].ComputeHref()
	}
	return products, nil
}

// ListProductsByAisle returns the aisle's products ordered by rank. The
// aisle itself must exist, else ErrNotFound.
func (s *Store) ListProductsByAisle(ctx context.Context, aisleID int) ([]catalog.Product, error) {
	exists, err := aisleExists(ctx, s.db, aisleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: aisle %d", catalog.ErrNotFound, aisleID)
	}

	var products []catalog.Product
	err = s.db.SelectContext(ctx, &products,
		`SELECT `+productColumns+` FROM products WHERE aisle_id = $1 ORDER BY rank`, aisleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by aisle: %w", err)
	}
	for i := range products {
		products[i].Href = products[i].ComputeHref()
	}
	return products, nil
}

// ListProductsByDepartment returns every product under the department's
// aisles, via the aisle join. The department must exist, else ErrNotFound.
func (s *Store) ListProductsByDepartment(ctx context.Context, departmentID int) ([]catalog.Product, error) {
	exists, err := departmentExists(ctx, s.db, departmentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: department %d", catalog.ErrNotFound, departmentID)
	}

	var products []catalog.Product
	err = s.db.SelectContext(ctx, &products,
		`SELECT p.internal_id, p.product_id, p.name, p.rank, p.size,
		        p.image_src, p.image_alt, p.price, p.price_per, p.affix, p.aisle_id
		 FROM products p JOIN aisles a ON a.aisle_id = p.aisle_id
		 WHERE a.department_id = $1
		 ORDER BY a.rank, p.rank`, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by department: %w", err)
	}
	for i := range products {
		products[i].Href = products[i].ComputeHref()
	}
	return products, nil
}

// UpdateProduct replaces the product's mutable fields. The product id in p
// is ignored; the entity is addressed by productID. Moving the product to
// another aisle re-validates the reference.
func (s *Store) UpdateProduct(ctx context.Context, productID int, p *catalog.Product) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	aExists, err := aisleExists(ctx, tx, p.AisleID)
	if err != nil {
		return err
	}
	if !aExists {
		return fmt.Errorf("%w: aisle %d", catalog.ErrBadReference, p.AisleID)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE products SET name = $1, rank = $2, size = $3, image_src = $4,
		        image_alt = $5, price = $6, price_per = $7, affix = $8, aisle_id = $9
		 WHERE product_id = $10`,
		p.Name, p.Rank, p.Size, p.ImageSrc, p.ImageAlt,
		p.Price, p.PricePer, p.Affix, p.AisleID, productID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: product name %q", catalog.ErrConflict, p.Name)
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update result: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: product %d", catalog.ErrNotFound, productID)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// PatchProduct applies a partial update, setting only the provided fields.
func (s *Store) PatchProduct(ctx context.Context, productID int, patch ProductPatch) error {
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

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Rank != nil {
		add("rank", *patch.Rank)
	}
	if patch.Size != nil {
		add("size", *patch.Size)
	}
	if patch.ImageSrc != nil {
		add("image_src", *patch.ImageSrc)
	}
	if patch.ImageAlt != nil {
		add("image_alt", *patch.ImageAlt)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.PricePer != nil {
		add("price_per", *patch.PricePer)
	}
	if patch.Affix != nil {
		add("affix", *patch.Affix)
	}
	if patch.AisleID != nil {
		aExists, checkErr := aisleExists(ctx, tx, *patch.AisleID)
		if checkErr != nil {
			return checkErr
		}
		if !aExists {
			return fmt.Errorf("%w: aisle %d", catalog.ErrBadReference, *patch.AisleID)
		}
		add("aisle_id", *patch.AisleID)
	}
	if len(sets) == 0 {
		_, err = s.GetProduct(ctx, productID)
		return err
	}

	args = append(args, productID)
	query := fmt.Sprintf(`UPDATE products SET %s WHERE product_id = $%d`,
		strings.Join(sets, ", "), argIndex)

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: product name already taken", catalog.ErrConflict)
		}
		return fmt.Errorf("failed to patch product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking patch result: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: product %d", catalog.ErrNotFound, productID)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteProduct removes a product together with every section edge that
// references it as parent or child, in one transaction.
func (s *Store) DeleteProduct(ctx context.Context, productID int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exists, err := productExists(ctx, tx, productID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: product %d", catalog.ErrNotFound, productID)
	}

	if err = deleteSectionEdges(ctx, tx, []int{productID}); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
