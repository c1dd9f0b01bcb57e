package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/wemurs1/RoyalVilla/internal/logging"
	"github.com/wemurs1/RoyalVilla/internal/server/auth"
	"github.com/wemurs1/RoyalVilla/internal/server/models"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/repomanager"
)

// UserService handles account registration and lookup.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "user_service"),
	}
}

// Register creates a new customer account. The email is normalized to
// lower case; a taken email surfaces as common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email string, name string, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         name,
		PasswordHash: hash,
		Role:         models.RoleCustomer,
	}

	created, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user registered", "user_id", created.ID)
	return created, nil
}

// GetByID returns the account with the given id.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}
