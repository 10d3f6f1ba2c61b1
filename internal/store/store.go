package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func init() {
	// modernc's driver registers as "sqlite", which sqlx does not know.
	// SQLite accepts $n placeholders, so the postgres bindvar style works
	// for both drivers.
	sqlx.BindDriver("sqlite", sqlx.DOLLAR)
}

// Store represents the catalog database connection and operations.
type Store struct {
	db *sqlx.DB
}

// Open connects to the catalog database. Supported drivers are "postgres"
// and "sqlite".
func Open(driver, connString string) (*Store, error) {
	db, err := sqlx.Connect(driver, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == "sqlite" {
		if _, pragmaErr := db.Exec("PRAGMA foreign_keys = ON"); pragmaErr != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", pragmaErr)
		}
	}
	return &Store{db: db}, nil
}

// NewFromDB constructs a Store from an existing *sqlx.DB. Useful for tests.
func NewFromDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying database handle.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// InitDB creates the catalog tables if they do not exist. Tables with
// foreign keys are created after the table they reference: departments,
// then aisles, then products, then sections.
func (s *Store) InitDB(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute init SQL: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a storage-level unique
// constraint error. Creates check for duplicates explicitly before
// inserting; this is the backstop for races the pre-check cannot see.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
