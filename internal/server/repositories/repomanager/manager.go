// Package repomanager binds concrete repositories to a database handle.
// Services ask the manager for repositories per call so the same code can
// run against *sql.DB or an open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/wemurs1/RoyalVilla/internal/dbx"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/amenities"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/refreshtokens"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/users"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/villas"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Villas(db dbx.DBTX) villas.Repository
	Amenities(db dbx.DBTX) amenities.Repository
}
