// Package services implements the business layer: session lifecycle
// (login, rotation, revocation), account registration, villa and amenity
// management, and image storage coordination. Services obtain
// repositories from a RepositoryManager per call so that multi-row
// updates can share one transaction.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wemurs1/RoyalVilla/internal/common"
	"github.com/wemurs1/RoyalVilla/internal/dbx"
	"github.com/wemurs1/RoyalVilla/internal/logging"
	"github.com/wemurs1/RoyalVilla/internal/server/auth"
	"github.com/wemurs1/RoyalVilla/internal/server/models"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/repomanager"
)

// refreshSecretBytes is the entropy of an opaque refresh token secret.
// 64 random bytes, hex encoded to 128 characters.
const refreshSecretBytes = 64

// insertRetries bounds regeneration attempts on a secret collision.
const insertRetries = 3

// errRotationConflict aborts the rotation transaction when the CAS update
// observes zero affected rows. Never escapes Refresh.
var errRotationConflict = errors.New("refresh token already consumed")

// TokenPair is a freshly minted credential set: a short-lived signed
// access token and the opaque refresh secret that can replace it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// SessionService owns the credential lifecycle. All mutations go through
// the authoritative store; access tokens are stateless and simply expire.
type SessionService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	signer          *auth.Signer
	detector        *ReuseDetector
	refreshValidity time.Duration
	logger          logging.Logger
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, signer *auth.Signer,
	detector *ReuseDetector, refreshValidity time.Duration, logger logging.Logger) *SessionService {
	return &SessionService{
		db:              db,
		repomanager:     m,
		signer:          signer,
		detector:        detector,
		refreshValidity: refreshValidity,
		logger:          logger.With("module", "session_service"),
	}
}

// Login verifies the credentials and opens a new session. Both an unknown
// email and a wrong password come back as common.ErrInvalidCredentials;
// a dummy hash comparison keeps the two paths at comparable cost.
func (s *SessionService) Login(ctx context.Context, email string, password string) (*TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPassword(dummyHash, password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(ctx, s.db, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return pair, nil
}

// Refresh rotates a presented refresh secret into a fresh token pair.
// The old row and its successor change in one transaction; the loser of
// a concurrent rotation race sees the conditional update fail, rolls
// back, and is treated exactly like reuse of a consumed token.
func (s *SessionService) Refresh(ctx context.Context, secret string) (*TokenPair, error) {
	eval, err := s.detector.Evaluate(ctx, secret)
	if err != nil {
		return nil, err
	}

	switch eval.Outcome {
	case OutcomeAccepted:
	case OutcomeExpired:
		return nil, common.ErrRefreshTokenExpired
	case OutcomeNotFound:
		return nil, common.ErrRefreshTokenNotFound
	case OutcomeReused:
		return nil, common.ErrTokenReused
	default:
		return nil, common.ErrorInternal
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, eval.UserID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	var pair *TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		successor, p, err := s.insertSession(ctx, tx, user)
		if err != nil {
			return err
		}
		ok, err := s.repomanager.RefreshTokens(tx).MarkRotated(ctx, eval.Record.ID, successor.ID)
		if err != nil {
			return fmt.Errorf("error rotating refresh token: %w", err)
		}
		if !ok {
			return errRotationConflict
		}
		pair = p
		return nil
	})
	if err != nil {
		if errors.Is(err, errRotationConflict) {
			// A concurrent request consumed the row between Evaluate and
			// the conditional update. Same theft signal, same cascade.
			revoked, revErr := s.repomanager.RefreshTokens(s.db).RevokeAll(ctx, user.ID)
			if revErr != nil {
				return nil, fmt.Errorf("error revoking session family: %w", revErr)
			}
			s.logger.Warn(ctx, "concurrent refresh detected, session family revoked",
				"user_id", user.ID, "token_id", eval.Record.ID, "siblings_revoked", revoked)
			return nil, common.ErrTokenReused
		}
		return nil, err
	}
	return pair, nil
}

// Revoke invalidates the single session carrying the presented secret.
// Revoking an unknown or already inactive token is not an error; the end
// state is the same.
func (s *SessionService) Revoke(ctx context.Context, secret string) error {
	repo := s.repomanager.RefreshTokens(s.db)

	record, err := repo.FindBySecret(ctx, secret)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return fmt.Errorf("error searching refresh token: %w", err)
	}

	if _, err := repo.MarkRevoked(ctx, record.ID); err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	return nil
}

// LogoutAll revokes every active session of the user and returns how many
// were closed.
func (s *SessionService) LogoutAll(ctx context.Context, userID string) (int64, error) {
	revoked, err := s.repomanager.RefreshTokens(s.db).RevokeAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error revoking sessions: %w", err)
	}
	s.logger.Info(ctx, "all sessions revoked", "user_id", userID, "sessions", revoked)
	return revoked, nil
}

// Sessions lists the user's active sessions, one per logged-in device.
func (s *SessionService) Sessions(ctx context.Context, userID string) ([]*models.RefreshToken, error) {
	tokens, err := s.repomanager.RefreshTokens(s.db).AllActiveForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	return tokens, nil
}

// issueTokenPair mints a new access token and a new active refresh row on
// the given handle, which may be a transaction during rotation.
func (s *SessionService) issueTokenPair(ctx context.Context, db dbx.DBTX, user *models.User) (*TokenPair, error) {
	_, pair, err := s.insertSession(ctx, db, user)
	return pair, err
}

func (s *SessionService) insertSession(ctx context.Context, db dbx.DBTX, user *models.User) (*models.RefreshToken, *TokenPair, error) {
	accessToken, jti, expiresAt, err := s.signer.Issue(user)
	if err != nil {
		return nil, nil, fmt.Errorf("error signing access token: %w", err)
	}

	repo := s.repomanager.RefreshTokens(db)
	for attempt := 0; attempt < insertRetries; attempt++ {
		secret, err := common.MakeRandHexString(refreshSecretBytes)
		if err != nil {
			return nil, nil, fmt.Errorf("error generating refresh secret: %w", err)
		}

		record := &models.RefreshToken{
			UserID:        user.ID,
			AccessTokenID: jti,
			Token:         secret,
			Status:        models.StatusActive,
			ExpiresAt:     time.Now().Add(s.refreshValidity),
		}

		err = repo.Insert(ctx, record)
		if err == nil {
			return record, &TokenPair{
				AccessToken:  accessToken,
				RefreshToken: secret,
				ExpiresAt:    expiresAt,
			}, nil
		}
		if !errors.Is(err, common.ErrorDuplicateSecret) {
			return nil, nil, fmt.Errorf("error storing refresh token: %w", err)
		}
	}
	return nil, nil, fmt.Errorf("refresh secret collision persisted after %d attempts: %w", insertRetries, common.ErrorInternal)
}

// dummyHash is a valid bcrypt hash of an unguessable value, compared
// against when the email is unknown so that the miss path does not
// return measurably faster than a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
