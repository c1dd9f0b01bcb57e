package models

import "time"

// Villa is a bookable property. ImageKey is the object-storage key of the
// uploaded photo; ImageURL is the public or presigned URL served to clients.
type Villa struct {
	ID        string
	Name      string
	Details   string
	Rate      float64
	Sqft      int
	Occupancy int
	ImageURL  string
	ImageKey  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
