package domain

import "time"

type PaymentType string

const (
	PaymentCash       PaymentType = "CASH"
	PaymentNetBanking PaymentType = "NET_BANKING"
	PaymentUPI        PaymentType = "UPI"
	PaymentCard       PaymentType = "CARD"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentCash, PaymentNetBanking, PaymentUPI, PaymentCard:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type Payment struct {
	ID          int           `json:"id"`
	UserID      int           `json:"-"`
	ParkedCarID int           `json:"parked_car_id"`
	Amount      float64       `json:"amount"`
	PaymentType PaymentType   `json:"payment_type"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// PaymentHistoryItem is a payment joined with the car and lot it paid for.
type PaymentHistoryItem struct {
	ID              int           `json:"id"`
	Amount          float64       `json:"amount"`
	PaymentType     PaymentType   `json:"payment_type"`
	Status          PaymentStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	ParkingLocation string        `json:"parking_location"`
	ParkingSpotName string        `json:"parking_spot_name"`
	CarBrand        string        `json:"car_brand"`
	CarModel        string        `json:"car_model"`
	CarLicensePlate string        `json:"car_license_plate"`
}

// PaymentStatusUpdate arrives from the payment processor queue.
type PaymentStatusUpdate struct {
	PaymentID int           `json:"payment_id"`
	Status    PaymentStatus `json:"status"`
}
