package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type ParkedCarStatus string

const (
	StatusParking   ParkedCarStatus = "PARKING"
	StatusParked    ParkedCarStatus = "PARKED"
	StatusRetrieve  ParkedCarStatus = "RETRIEVE"
	StatusRetrieved ParkedCarStatus = "RETRIEVED"
)

func (s ParkedCarStatus) Valid() bool {
	switch s {
	case StatusParking, StatusParked, StatusRetrieve, StatusRetrieved:
		return true
	}
	return false
}

// Active reports whether the session still holds the car.
func (s ParkedCarStatus) Active() bool {
	return s != StatusRetrieved
}

// ParkedCar is the aggregate root of one parking session.
type ParkedCar struct {
	ID            int             `json:"id"`
	CarID         int             `json:"car_id"`
	UserID        int             `json:"user_id"`
	ParkingSpotID int             `json:"parking_spot_id"`
	DriverID      null.Int        `json:"driver_id"`
	Status        ParkedCarStatus `json:"status"`
	ParkedPos     string          `json:"parked_pos"`
	ParkedAt      time.Time       `json:"parked_at"`
	RetrievedAt   null.Time       `json:"retrieved_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type ParkCarDTO struct {
	CarID         int           `json:"car_id"`
	ParkingSpotID int           `json:"parking_spot_id"`
	Amount        float64       `json:"amount"`
	PaymentType   PaymentType   `json:"payment_type"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

type ParkCarResult struct {
	ParkedCar *ParkedCar `json:"parked_car"`
	Payment   *Payment   `json:"payment"`
}

type UpdateStatusDTO struct {
	Status ParkedCarStatus `json:"status"`
}

// ParkedCarView is a parked car joined with the entities the dashboards show.
type ParkedCarView struct {
	ID          int             `json:"id"`
	Status      ParkedCarStatus `json:"status"`
	ParkedPos   string          `json:"parked_pos"`
	ParkedAt    time.Time       `json:"parked_at"`
	RetrievedAt null.Time       `json:"retrieved_at"`
	CreatedAt   time.Time       `json:"created_at"`
	Car         CarSummary      `json:"car"`
	User        *UserSummary    `json:"user,omitempty"`
	Driver      *UserSummary    `json:"driver,omitempty"`
	ParkingSpot *ParkingSpot    `json:"parking_spot,omitempty"`
	Payment     *Payment        `json:"payment,omitempty"`
}

// ParkedCarFilter drives the manager search. Zero values mean "no filter".
type ParkedCarFilter struct {
	ParkingSpotID int
	Keyword       string
	Status        ParkedCarStatus
	ActiveOnly    bool
	From          time.Time
	To            time.Time
	Limit         int
	Offset        int
}
