// Package villas declares the repository contract for villa records.
package villas

import (
	"context"

	"github.com/wemurs1/RoyalVilla/internal/server/models"
)

// ListFilter narrows and pages List results. Page is 1-based; Search
// matches villa names case-insensitively.
type ListFilter struct {
	Search   string
	Page     int
	PageSize int
}

// Repository defines persistence operations for villas.
type Repository interface {
	Create(ctx context.Context, villa *models.Villa) (*models.Villa, error)
	GetByID(ctx context.Context, id string) (*models.Villa, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Villa, int64, error)
	Update(ctx context.Context, villa *models.Villa) error
	SetImage(ctx context.Context, id, imageKey, imageURL string) error
	Delete(ctx context.Context, id string) error
}
