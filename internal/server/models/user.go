// Package models defines server-side data models persisted in the database.
package models

import "time"

// Role names assigned to users. A user holds exactly one stored role;
// access token claims carry it as a role set.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is a registered account. PasswordHash is a bcrypt hash; the raw
// password never leaves the registration/login request scope.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Roles returns the user's role names as a set for token claims.
func (u *User) Roles() []string {
	if u.Role == "" {
		return []string{RoleCustomer}
	}
	return []string{u.Role}
}
