package models

import "time"

// Refresh token row states. A row that leaves StatusActive never returns
// to it; presenting a non-active secret again is the reuse signal.
const (
	StatusActive  = "active"
	StatusRotated = "rotated"
	StatusRevoked = "revoked"
)

// RefreshToken is a persisted, single-use-per-rotation bearer secret.
// AccessTokenID is the jti of the access token issued alongside it.
// SuccessorID links a rotated row to the row that replaced it; it is
// empty for active and revoked rows. Rows are kept after invalidation
// for audit purposes, never deleted here.
type RefreshToken struct {
	ID            string
	UserID        string
	AccessTokenID string
	Token         string
	Status        string
	SuccessorID   string
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

// Active reports whether the row is still the single usable member of
// its rotation chain. Expiry is checked separately against the clock.
func (t *RefreshToken) Active() bool {
	return t.Status == StatusActive
}
