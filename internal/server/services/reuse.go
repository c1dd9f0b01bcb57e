package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wemurs1/RoyalVilla/internal/common"
	"github.com/wemurs1/RoyalVilla/internal/logging"
	"github.com/wemurs1/RoyalVilla/internal/server/models"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/repomanager"
)

// Outcome classifies a presented refresh token secret.
type Outcome int

const (
	// OutcomeAccepted: the row is active and unexpired; rotation may proceed.
	OutcomeAccepted Outcome = iota
	// OutcomeExpired: the row is active but past its expiry. Staleness, not
	// theft; the row is left untouched and nothing is escalated.
	OutcomeExpired
	// OutcomeNotFound: no row carries this secret.
	OutcomeNotFound
	// OutcomeReused: the row already left the active state and is being
	// presented again. A refresh token is single-use, so this is the theft
	// signal; every active sibling of the owner has been revoked by the
	// time Evaluate returns.
	OutcomeReused
)

// Evaluation is the result of classifying a presented secret. Record is
// set for OutcomeAccepted; UserID is set whenever the row exists.
type Evaluation struct {
	Outcome Outcome
	Record  *models.RefreshToken
	UserID  string
}

// ReuseDetector is the policy layer over the refresh token store. It
// decides what a presented secret means and reacts to reuse by cascading
// revocation across the owner's whole session family.
type ReuseDetector struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewReuseDetector(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ReuseDetector {
	return &ReuseDetector{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "reuse_detector"),
	}
}

// Evaluate classifies the presented secret. It always consults the
// authoritative store; no in-process cache may sit in front of it, or a
// revocation on one instance would go unseen on another.
func (d *ReuseDetector) Evaluate(ctx context.Context, secret string) (*Evaluation, error) {
	repo := d.repomanager.RefreshTokens(d.db)

	record, err := repo.FindBySecret(ctx, secret)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &Evaluation{Outcome: OutcomeNotFound}, nil
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if record.Active() {
		if time.Now().After(record.ExpiresAt) {
			return &Evaluation{Outcome: OutcomeExpired, UserID: record.UserID}, nil
		}
		return &Evaluation{Outcome: OutcomeAccepted, Record: record, UserID: record.UserID}, nil
	}

	// The row is rotated or revoked and someone presented it again.
	// Kill the whole session family before handing control back, so no
	// sibling token can be spent after this point.
	revoked, err := repo.RevokeAll(ctx, record.UserID)
	if err != nil {
		return nil, fmt.Errorf("error revoking session family: %w", err)
	}
	d.logger.Warn(ctx, "refresh token reuse detected, session family revoked",
		"user_id", record.UserID,
		"token_id", record.ID,
		"token_status", record.Status,
		"siblings_revoked", revoked,
	)
	return &Evaluation{Outcome: OutcomeReused, UserID: record.UserID}, nil
}
