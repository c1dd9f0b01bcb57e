// Package amenities declares the repository contract for villa amenities.
package amenities

import (
	"context"

	"github.com/wemurs1/RoyalVilla/internal/server/models"
)

// Repository defines persistence operations for amenities.
type Repository interface {
	Create(ctx context.Context, amenity *models.Amenity) (*models.Amenity, error)
	GetByID(ctx context.Context, id string) (*models.Amenity, error)
	ListByVilla(ctx context.Context, villaID string) ([]*models.Amenity, error)
	Update(ctx context.Context, amenity *models.Amenity) error
	Delete(ctx context.Context, id string) error
}
