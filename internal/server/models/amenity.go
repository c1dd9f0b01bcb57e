package models

import "time"

// Amenity is a feature of a villa (pool, spa, parking, ...).
type Amenity struct {
	ID          string
	VillaID     string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
