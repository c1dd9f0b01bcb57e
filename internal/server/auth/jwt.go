// Package auth implements the access token signer: minting and verifying
// short-lived HS256 JWTs. The signer is stateless; verification needs no
// store lookup.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/wemurs1/RoyalVilla/internal/common"
	"github.com/wemurs1/RoyalVilla/internal/server/models"
)

// Claims carries the identity embedded in an access token: subject (user
// id), email, display name, role set, and the unique token id (jti) that
// links the token to its refresh row.
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// Signer mints and verifies signed access tokens. It is safe for
// concurrent use.
type Signer struct {
	secret   []byte
	validity time.Duration
}

// NewSigner returns a Signer for the given HMAC secret and token lifetime.
// An empty secret is a configuration error and must abort startup.
func NewSigner(secret string, validity time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("jwt signing secret is not configured")
	}
	return &Signer{secret: []byte(secret), validity: validity}, nil
}

// Issue mints a signed access token for the user. It returns the compact
// token string, the generated jti, and the expiry fixed at issuance.
func (s *Signer) Issue(user *models.User) (string, string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.validity)
	jti := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: user.Email,
		Name:  user.Name,
		Roles: user.Roles(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return signed, jti, expiresAt, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Every failure collapses to common.ErrInvalidToken: expired, malformed,
// and forged tokens must be indistinguishable to the caller.
func (s *Signer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
