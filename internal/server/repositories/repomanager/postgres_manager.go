package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/wemurs1/RoyalVilla/internal/dbx"
	"github.com/wemurs1/RoyalVilla/internal/server/migrations"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/amenities"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/refreshtokens"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/users"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/villas"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Villas(db dbx.DBTX) villas.Repository {
	return villas.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Amenities(db dbx.DBTX) amenities.Repository {
	return amenities.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// OpenDB opens the pgx stdlib driver with the given DSN. Migrations run
// separately so tests can open handles without touching the schema.
func OpenDB(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}
