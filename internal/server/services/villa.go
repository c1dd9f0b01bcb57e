package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wemurs1/RoyalVilla/internal/logging"
	"github.com/wemurs1/RoyalVilla/internal/server/models"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/repomanager"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/villas"
)

// VillaService manages the villa catalogue.
type VillaService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewVillaService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *VillaService {
	return &VillaService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "villa_service"),
	}
}

// List returns a page of villas and the total count matching the filter.
func (s *VillaService) List(ctx context.Context, filter villas.ListFilter) ([]*models.Villa, int64, error) {
	items, total, err := s.repomanager.Villas(s.db).List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing villas: %w", err)
	}
	return items, total, nil
}

// GetByID returns a single villa or common.ErrorNotFound.
func (s *VillaService) GetByID(ctx context.Context, id string) (*models.Villa, error) {
	return s.repomanager.Villas(s.db).GetByID(ctx, id)
}

// Create stores a new villa.
func (s *VillaService) Create(ctx context.Context, villa *models.Villa) (*models.Villa, error) {
	created, err := s.repomanager.Villas(s.db).Create(ctx, villa)
	if err != nil {
		return nil, fmt.Errorf("error creating villa: %w", err)
	}
	s.logger.Info(ctx, "villa created", "villa_id", created.ID)
	return created, nil
}

// Update replaces the mutable fields of an existing villa.
func (s *VillaService) Update(ctx context.Context, villa *models.Villa) error {
	return s.repomanager.Villas(s.db).Update(ctx, villa)
}

// Delete removes the villa; its amenities cascade in the database.
func (s *VillaService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Villas(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "villa deleted", "villa_id", id)
	return nil
}
