package repository

import (
	"context"
	"errors"
	"time"

	"valet_parking/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")
var ErrAlreadyAssigned = errors.New("parked car is already assigned to a driver")
var ErrActiveSessionExists = errors.New("car already has an active parking session")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int, dto domain.UpdateProfileDTO) (*domain.User, error)
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) (*domain.Car, error)
	// FindOwned returns the car only when it belongs to userID and is not soft-deleted.
	FindOwned(ctx context.Context, id, userID int) (*domain.Car, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Car, error)
	Update(ctx context.Context, car *domain.Car) (*domain.Car, error)
	SoftDelete(ctx context.Context, id, userID int) error
}

type ParkingSpotRepository interface {
	Create(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error)
	FindByID(ctx context.Context, id int) (*domain.ParkingSpot, error)
	FindAll(ctx context.Context) ([]domain.ParkingSpot, error)
}

type StaffRepository interface {
	FindActiveByUser(ctx context.Context, kind domain.StaffKind, userID int) (*domain.StaffRecord, error)
	Create(ctx context.Context, kind domain.StaffKind, rec *domain.StaffRecord) (*domain.StaffRecord, error)
	ListPending(ctx context.Context, kind domain.StaffKind) ([]domain.PendingStaff, error)
	ListApprovedDrivers(ctx context.Context, parkingSpotID int) ([]domain.LotDriver, error)
	// Approve flips approved and promotes a plain USER role tag to the staff role, atomically.
	Approve(ctx context.Context, kind domain.StaffKind, id int) error
	Reject(ctx context.Context, kind domain.StaffKind, id int) error
}

type ParkedCarRepository interface {
	// CreateWithPayment inserts both rows in one transaction and fills their generated fields.
	CreateWithPayment(ctx context.Context, pc *domain.ParkedCar, payment *domain.Payment) error
	FindByID(ctx context.Context, id int) (*domain.ParkedCar, error)
	RequestRetrieval(ctx context.Context, id, userID int) (*domain.ParkedCar, error)
	AssignDriver(ctx context.Context, id, driverID, parkingSpotID int) (*domain.ParkedCar, error)
	UpdateStatus(ctx context.Context, id, driverID, parkingSpotID int, status domain.ParkedCarStatus) (*domain.ParkedCar, error)
	ListUnassignedForLot(ctx context.Context, parkingSpotID int) ([]domain.ParkedCarView, error)
	ListAssignedForDriver(ctx context.Context, parkingSpotID, driverID int) ([]domain.ParkedCarView, error)
	ListLotQueue(ctx context.Context, parkingSpotID int) ([]domain.ParkedCarView, error)
	FindActiveForUser(ctx context.Context, userID int) (*domain.ParkedCarView, error)
	ListRecentForUser(ctx context.Context, userID, limit, offset int) ([]domain.ParkedCarView, int, error)
}

type PaymentRepository interface {
	ListByUser(ctx context.Context, userID int) ([]domain.PaymentHistoryItem, error)
	UpdateStatus(ctx context.Context, id int, status domain.PaymentStatus) (*domain.Payment, error)
}

type ReportRepository interface {
	SearchParkedCars(ctx context.Context, filter domain.ParkedCarFilter) ([]domain.ParkedCarView, int, error)
	// LotTotals counts tickets and sums COMPLETED payments; zero from/to means all time.
	LotTotals(ctx context.Context, parkingSpotID int, from, to time.Time) (domain.LotTotals, error)
	CountByStatus(ctx context.Context, parkingSpotID int, statuses ...domain.ParkedCarStatus) (int, error)
}
