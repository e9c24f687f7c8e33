package domain

import "time"

// ParkingSpot is a lot: a physical facility with its own driver and manager pool.
type ParkingSpot struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type ParkingSpotDTO struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}
