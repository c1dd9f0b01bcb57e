// Package refreshtokens declares the server-side repository contract for
// refresh token rows in persistent storage.
//
// Rows move through three states: active, rotated, revoked. State-changing
// operations are conditional updates so that two concurrent rotation
// attempts on the same row cannot both succeed; the loser observes zero
// affected rows and must treat the token as already consumed.
package refreshtokens

import (
	"context"

	"github.com/wemurs1/RoyalVilla/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and transitioning
// refresh token rows. Rows are never deleted; invalidated rows stay behind
// for reuse detection and audit.
type Repository interface {
	// Insert stores a new active row. Returns common.ErrorDuplicateSecret
	// when the opaque secret collides with an existing row (astronomically
	// rare at 512 bits; the caller regenerates and retries).
	Insert(ctx context.Context, token *models.RefreshToken) error

	// FindBySecret looks up a row by its opaque secret, whatever its
	// status. Returns common.ErrorNotFound when absent.
	FindBySecret(ctx context.Context, secret string) (*models.RefreshToken, error)

	// MarkRotated transitions the row active to rotated and records the row
	// that replaced it. Reports false when the row was no longer active,
	// meaning a concurrent rotation or revocation got there first.
	MarkRotated(ctx context.Context, id string, successorID string) (bool, error)

	// MarkRevoked transitions the row active to revoked. Reports false when
	// the row was no longer active.
	MarkRevoked(ctx context.Context, id string) (bool, error)

	// AllActiveForUser returns every active row owned by userID, one per
	// logged-in device.
	AllActiveForUser(ctx context.Context, userID string) ([]*models.RefreshToken, error)

	// RevokeAll marks every active row of userID revoked and returns how
	// many rows transitioned. Used for logout-everywhere and for cascade
	// revocation after detected reuse.
	RevokeAll(ctx context.Context, userID string) (int64, error)
}
