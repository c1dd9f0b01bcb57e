package villas

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/wemurs1/RoyalVilla/internal/common"
	"github.com/wemurs1/RoyalVilla/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func villaColumns() []string {
	return []string{"id", "name", "details", "rate", "sqft", "occupancy", "image_url", "image_key", "created_at", "updated_at"}
}

func TestCreate_ReturnsGeneratedFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+villas\b.*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("Royal Villa", "Sea view", 550.0, 4500, 8, "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("v1", now, now))

	v, err := repo.Create(context.Background(), &models.Villa{
		Name: "Royal Villa", Details: "Sea view", Rate: 550, Sqft: 4500, Occupancy: 8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.ID != "v1" {
		t.Fatalf("id not populated: %+v", v)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+.*FROM\s+villas\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestList_PaginatesAndCounts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	countQ := `(?s)^\s*SELECT\s+COUNT\(\*\)\s+FROM\s+villas\s+WHERE\s+name\s+ILIKE\s+\$1\s*$`
	listQ := `(?s)^\s*SELECT\s+.*FROM\s+villas\s+WHERE\s+name\s+ILIKE\s+\$1\s+ORDER\s+BY\s+name\s+LIMIT\s+\$2\s+OFFSET\s+\$3\s*$`

	mock.ExpectQuery(countQ).WithArgs("%Villa%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	now := time.Now()
	rows := sqlmock.NewRows(villaColumns()).
		AddRow("v1", "Garden Villa", "d", 300.0, 2400, 4, "", "", now, now).
		AddRow("v2", "Pool Villa", "d", 420.0, 3200, 6, "", "", now, now)
	mock.ExpectQuery(listQ).WithArgs("%Villa%", 2, 2).WillReturnRows(rows)

	got, total, err := repo.List(context.Background(), ListFilter{Search: "Villa", Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 12 || len(got) != 2 {
		t.Fatalf("want total=12 len=2, got total=%d len=%d", total, len(got))
	}
}

func TestList_DefaultsPage(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+COUNT`).WithArgs("%%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`(?s)SELECT\s+.*LIMIT\s+\$2\s+OFFSET\s+\$3`).
		WithArgs("%%", defaultPageSize, 0).
		WillReturnRows(sqlmock.NewRows(villaColumns()))

	got, total, err := repo.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 || got != nil {
		t.Fatalf("want empty result, got total=%d len=%d", total, len(got))
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+villas\s+SET\s+name\b`

	mock.ExpectExec(q).
		WithArgs("missing", "N", "D", 1.0, 1, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Villa{
		ID: "missing", Name: "N", Details: "D", Rate: 1, Sqft: 1, Occupancy: 1,
	})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestSetImage(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+villas\s+SET\s+image_key\s*=\s*\$2,\s*image_url\s*=\s*\$3\b`

	mock.ExpectExec(q).
		WithArgs("v1", "villas/2026/1/1/abc", "https://cdn.example.com/v1.jpg").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetImage(context.Background(), "v1", "villas/2026/1/1/abc", "https://cdn.example.com/v1.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+villas\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).WithArgs("v1").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "v1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
