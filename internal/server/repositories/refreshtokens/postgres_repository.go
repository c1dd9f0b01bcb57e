package refreshtokens

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

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx). Rotation runs it against the transactional handle.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, token *models.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_id, access_token_id, token, status, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, issued_at
	`
	err := r.db.QueryRowContext(ctx, query,
		token.UserID, token.AccessTokenID, token.Token, models.StatusActive, token.ExpiresAt).
		Scan(&token.ID, &token.IssuedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return common.ErrorDuplicateSecret
		}
		return fmt.Errorf("db error: %w", err)
	}
	token.Status = models.StatusActive
	return nil
}

func (r *PostgresRepository) FindBySecret(ctx context.Context, secret string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, access_token_id, token, status, successor_id, issued_at, expires_at
		FROM refresh_tokens
		WHERE token = $1
	`
	token := &models.RefreshToken{}
	var successor sql.NullString
	err := r.db.QueryRowContext(ctx, query, secret).Scan(
		&token.ID, &token.UserID, &token.AccessTokenID, &token.Token,
		&token.Status, &successor, &token.IssuedAt, &token.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	token.SuccessorID = successor.String
	return token, nil
}

func (r *PostgresRepository) MarkRotated(ctx context.Context, id string, successorID string) (bool, error) {
	query := `
		UPDATE refresh_tokens
		SET status = $3, successor_id = $2
		WHERE id = $1 AND status = $4
	`
	res, err := r.db.ExecContext(ctx, query, id, successorID, models.StatusRotated, models.StatusActive)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) MarkRevoked(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE refresh_tokens
		SET status = $2
		WHERE id = $1 AND status = $3
	`
	res, err := r.db.ExecContext(ctx, query, id, models.StatusRevoked, models.StatusActive)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) AllActiveForUser(ctx context.Context, userID string) ([]*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, access_token_id, token, status, successor_id, issued_at, expires_at
		FROM refresh_tokens
		WHERE user_id = $1 AND status = $2
		ORDER BY issued_at
	`
	rows, err := r.db.QueryContext(ctx, query, userID, models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var tokens []*models.RefreshToken
	for rows.Next() {
		token := &models.RefreshToken{}
		var successor sql.NullString
		if err := rows.Scan(
			&token.ID, &token.UserID, &token.AccessTokenID, &token.Token,
			&token.Status, &successor, &token.IssuedAt, &token.ExpiresAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		token.SuccessorID = successor.String
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tokens, nil
}

func (r *PostgresRepository) RevokeAll(ctx context.Context, userID string) (int64, error) {
	query := `
		UPDATE refresh_tokens
		SET status = $2
		WHERE user_id = $1 AND status = $3
	`
	res, err := r.db.ExecContext(ctx, query, userID, models.StatusRevoked, models.StatusActive)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
