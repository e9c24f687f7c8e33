package postgresql

import (
	"strings"
	"time"

	"gopkg.in/guregu/null.v4"

	"valet_parking/internal/domain"
)

// parkedCarViewColumns and parkedCarViewFrom are shared by the lifecycle lists
// and the squirrel-built report queries so both scan through scanParkedCarView.
var parkedCarViewColumns = []string{
	"pc.id", "pc.status", "pc.parked_pos", "pc.parked_at", "pc.retrieved_at", "pc.created_at",
	"c.id", "c.brand", "c.model", "c.license_plate",
	"u.id", "u.name", "u.email", "u.phone",
	"d.id", "du.name", "du.phone",
	"ps.id", "ps.name", "ps.location", "ps.capacity",
	"p.id", "p.amount", "p.payment_type", "p.status", "p.created_at",
}

const parkedCarViewFrom = `parked_cars pc
	INNER JOIN cars c ON pc.car_id = c.id
	INNER JOIN users u ON pc.user_id = u.id
	INNER JOIN parking_spots ps ON pc.parking_spot_id = ps.id
	LEFT JOIN drivers d ON pc.driver_id = d.id
	LEFT JOIN users du ON d.user_id = du.id
	LEFT JOIN LATERAL (
		SELECT id, amount, payment_type, status, created_at
		FROM payments
		WHERE parked_car_id = pc.id AND deleted = false
		ORDER BY id
		LIMIT 1
	) p ON true`

var parkedCarViewSelect = "SELECT " + strings.Join(parkedCarViewColumns, ", ") + " FROM " + parkedCarViewFrom

func scanParkedCarView(row rowScanner) (*domain.ParkedCarView, error) {
	v := &domain.ParkedCarView{
		User:        &domain.UserSummary{},
		ParkingSpot: &domain.ParkingSpot{},
	}
	var (
		driverID         null.Int
		driverName       null.String
		driverPhone      null.String
		paymentID        null.Int
		paymentAmount    null.Float
		paymentType      null.String
		paymentStatus    null.String
		paymentCreatedAt null.Time
	)
	err := row.Scan(
		&v.ID, &v.Status, &v.ParkedPos, &v.ParkedAt, &v.RetrievedAt, &v.CreatedAt,
		&v.Car.ID, &v.Car.Brand, &v.Car.Model, &v.Car.LicensePlate,
		&v.User.ID, &v.User.Name, &v.User.Email, &v.User.Phone,
		&driverID, &driverName, &driverPhone,
		&v.ParkingSpot.ID, &v.ParkingSpot.Name, &v.ParkingSpot.Location, &v.ParkingSpot.Capacity,
		&paymentID, &paymentAmount, &paymentType, &paymentStatus, &paymentCreatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.ParkedAt = v.ParkedAt.In(time.UTC)
	v.CreatedAt = v.CreatedAt.In(time.UTC)
	if v.RetrievedAt.Valid {
		v.RetrievedAt.Time = v.RetrievedAt.Time.In(time.UTC)
	}
	if driverID.Valid {
		v.Driver = &domain.UserSummary{ID: int(driverID.Int64), Name: driverName.String, Phone: driverPhone}
	}
	if paymentID.Valid {
		v.Payment = &domain.Payment{
			ID:          int(paymentID.Int64),
			ParkedCarID: v.ID,
			Amount:      paymentAmount.Float64,
			PaymentType: domain.PaymentType(paymentType.String),
			Status:      domain.PaymentStatus(paymentStatus.String),
			CreatedAt:   paymentCreatedAt.Time.In(time.UTC),
		}
	}
	return v, nil
}
