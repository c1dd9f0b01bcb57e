// Package common defines shared constants and sentinel errors used across
// the RoyalVilla service layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound        = errors.New("not found")
	ErrorAlreadyExists   = errors.New("already exists")
	ErrorDuplicateSecret = errors.New("duplicate token secret")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Refresh token lifecycle errors. ErrTokenReused is never surfaced to
	// clients distinctly; it exists for logging and alerting.
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrTokenReused          = errors.New("refresh token reuse detected")
)
