package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wemurs1/RoyalVilla/internal/logging"
	"github.com/wemurs1/RoyalVilla/internal/server/models"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/repomanager"
)

// AmenityService manages amenities attached to villas.
type AmenityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewAmenityService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *AmenityService {
	return &AmenityService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "amenity_service"),
	}
}

// ListByVilla returns the villa's amenities. The villa must exist; a
// missing villa surfaces as common.ErrorNotFound.
func (s *AmenityService) ListByVilla(ctx context.Context, villaID string) ([]*models.Amenity, error) {
	if _, err := s.repomanager.Villas(s.db).GetByID(ctx, villaID); err != nil {
		return nil, err
	}
	items, err := s.repomanager.Amenities(s.db).ListByVilla(ctx, villaID)
	if err != nil {
		return nil, fmt.Errorf("error listing amenities: %w", err)
	}
	return items, nil
}

// GetByID returns a single amenity or common.ErrorNotFound.
func (s *AmenityService) GetByID(ctx context.Context, id string) (*models.Amenity, error) {
	return s.repomanager.Amenities(s.db).GetByID(ctx, id)
}

// Create attaches a new amenity to its villa. A dangling villa id comes
// back as common.ErrorNotFound from the foreign key check.
func (s *AmenityService) Create(ctx context.Context, amenity *models.Amenity) (*models.Amenity, error) {
	created, err := s.repomanager.Amenities(s.db).Create(ctx, amenity)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "amenity created", "amenity_id", created.ID, "villa_id", created.VillaID)
	return created, nil
}

// Update replaces the mutable fields of an existing amenity.
func (s *AmenityService) Update(ctx context.Context, amenity *models.Amenity) error {
	return s.repomanager.Amenities(s.db).Update(ctx, amenity)
}

// Delete removes the amenity.
func (s *AmenityService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Amenities(s.db).Delete(ctx, id)
}
