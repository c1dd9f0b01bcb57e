package villas

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wemurs1/RoyalVilla/internal/common"
	"github.com/wemurs1/RoyalVilla/internal/dbx"
	"github.com/wemurs1/RoyalVilla/internal/server/models"
)

const defaultPageSize = 20

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, villa *models.Villa) (*models.Villa, error) {
	query := `
		INSERT INTO villas (name, details, rate, sqft, occupancy, image_url, image_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		villa.Name, villa.Details, villa.Rate, villa.Sqft, villa.Occupancy,
		villa.ImageURL, villa.ImageKey).
		Scan(&villa.ID, &villa.CreatedAt, &villa.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return villa, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Villa, error) {
	query := `
		SELECT id, name, details, rate, sqft, occupancy, image_url, image_key, created_at, updated_at
		FROM villas
		WHERE id = $1
	`
	villa := &models.Villa{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&villa.ID, &villa.Name, &villa.Details, &villa.Rate, &villa.Sqft,
		&villa.Occupancy, &villa.ImageURL, &villa.ImageKey, &villa.CreatedAt, &villa.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return villa, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*models.Villa, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	search := "%" + filter.Search + "%"

	var total int64
	countQuery := `SELECT COUNT(*) FROM villas WHERE name ILIKE $1`
	if err := r.db.QueryRowContext(ctx, countQuery, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `
		SELECT id, name, details, rate, sqft, occupancy, image_url, image_key, created_at, updated_at
		FROM villas
		WHERE name ILIKE $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	offset := (filter.Page - 1) * filter.PageSize
	rows, err := r.db.QueryContext(ctx, query, search, filter.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Villa
	for rows.Next() {
		villa := &models.Villa{}
		if err := rows.Scan(
			&villa.ID, &villa.Name, &villa.Details, &villa.Rate, &villa.Sqft,
			&villa.Occupancy, &villa.ImageURL, &villa.ImageKey, &villa.CreatedAt, &villa.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, villa)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return result, total, nil
}

func (r *PostgresRepository) Update(ctx context.Context, villa *models.Villa) error {
	query := `
		UPDATE villas
		SET name = $2, details = $3, rate = $4, sqft = $5, occupancy = $6, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		villa.ID, villa.Name, villa.Details, villa.Rate, villa.Sqft, villa.Occupancy)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) SetImage(ctx context.Context, id, imageKey, imageURL string) error {
	query := `
		UPDATE villas
		SET image_key = $2, image_url = $3, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, imageKey, imageURL)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM villas WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
