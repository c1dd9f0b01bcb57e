package amenities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wemurs1/RoyalVilla/internal/common"
	"github.com/wemurs1/RoyalVilla/internal/dbx"
	"github.com/wemurs1/RoyalVilla/internal/server/models"
)

// pgForeignKeyViolation is the SQLSTATE raised when the referenced villa
// does not exist.
const pgForeignKeyViolation = "23503"

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, amenity *models.Amenity) (*models.Amenity, error) {
	query := `
		INSERT INTO amenities (villa_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		amenity.VillaID, amenity.Name, amenity.Description).
		Scan(&amenity.ID, &amenity.CreatedAt, &amenity.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return amenity, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Amenity, error) {
	query := `
		SELECT id, villa_id, name, description, created_at, updated_at
		FROM amenities
		WHERE id = $1
	`
	amenity := &models.Amenity{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&amenity.ID, &amenity.VillaID, &amenity.Name, &amenity.Description,
		&amenity.CreatedAt, &amenity.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return amenity, nil
}

func (r *PostgresRepository) ListByVilla(ctx context.Context, villaID string) ([]*models.Amenity, error) {
	query := `
		SELECT id, villa_id, name, description, created_at, updated_at
		FROM amenities
		WHERE villa_id = $1
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, villaID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Amenity
	for rows.Next() {
		amenity := &models.Amenity{}
		if err := rows.Scan(
			&amenity.ID, &amenity.VillaID, &amenity.Name, &amenity.Description,
			&amenity.CreatedAt, &amenity.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, amenity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, amenity *models.Amenity) error {
	query := `
		UPDATE amenities
		SET name = $2, description = $3, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, amenity.ID, amenity.Name, amenity.Description)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM amenities WHERE id = $1`
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
