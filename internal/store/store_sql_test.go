package store

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewFromDB(sqlx.NewDb(db, "postgres")), mock
}

func TestListDepartments_QueryShape(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"internal_id", "department_id", "name", "rank"}).
		AddRow("11111111-1111-1111-1111-111111111111", 1, "Wines", 1).
		AddRow("22222222-2222-2222-2222-222222222222", 2, "Produce", 2)

	query := regexp.QuoteMeta(`SELECT internal_id, department_id, name, rank
		 FROM departments ORDER BY rank`)
	mock.ExpectQuery(query).WillReturnRows(rows)

	departments, err := s.ListDepartments(context.Background())
	if err != nil {
		t.Fatalf("ListDepartments returned error: %v", err)
	}
	if len(departments) != 2 {
		t.Fatalf("expected 2 departments, got %d", len(departments))
	}
	if departments[0].Href != "/store/departments/1" {
		t.Errorf("unexpected first href: %s", departments[0].Href)
	}

	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Fatalf("unmet sqlmock expectations: %v", mockErr)
	}
}

func TestDeleteDepartment_CascadeStatementOrder(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT count(*) FROM departments WHERE department_id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT p.product_id
		 FROM products p JOIN aisles a ON a.aisle_id = p.aisle_id
		 WHERE a.department_id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow(1001).AddRow(1002))
	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM sections WHERE parent_product_id IN ($1, $2) OR child_product_id IN ($3, $4)`)).
		WithArgs(1001, 1002, 1001, 1002).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM products WHERE aisle_id IN
		   (SELECT aisle_id FROM aisles WHERE department_id = $1)`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM aisles WHERE department_id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM departments WHERE department_id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.DeleteDepartment(context.Background(), 1); err != nil {
		t.Fatalf("DeleteDepartment returned error: %v", err)
	}

	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Fatalf("unmet sqlmock expectations: %v", mockErr)
	}
}

func TestDeleteDepartment_EmptyDepartmentSkipsEdgeCascade(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT count(*) FROM departments WHERE department_id = $1`)).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT p.product_id
		 FROM products p JOIN aisles a ON a.aisle_id = p.aisle_id
		 WHERE a.department_id = $1`)).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}))
	// no section delete expected: the edge cascade is a no-op without products
	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM products WHERE aisle_id IN
		   (SELECT aisle_id FROM aisles WHERE department_id = $1)`)).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM aisles WHERE department_id = $1`)).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM departments WHERE department_id = $1`)).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.DeleteDepartment(context.Background(), 9); err != nil {
		t.Fatalf("DeleteDepartment returned error: %v", err)
	}

	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Fatalf("unmet sqlmock expectations: %v", mockErr)
	}
}
