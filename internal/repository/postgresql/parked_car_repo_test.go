package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"valet_parking/internal/domain"
	"valet_parking/internal/repository"
)

var parkedCarMockColumns = []string{"id", "car_id", "user_id", "parking_spot_id", "driver_id", "status",
	"parked_pos", "parked_at", "retrieved_at", "created_at", "updated_at"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func parkedCarRow(id int, driverID any, status domain.ParkedCarStatus) *sqlmock.Rows {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(parkedCarMockColumns).
		AddRow(id, 11, 7, 4, driverID, string(status), "Level 1 - A03", now, nil, now, now)
}

func TestCreateWithPaymentCommits(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgParkedCarRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO parked_cars").
		WithArgs(11, 7, 4, "PARKING", "Level 1 - A03").
		WillReturnRows(parkedCarRow(21, nil, domain.StatusParking))
	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(7, 21, 150.0, "UPI", "PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(33, time.Now()))
	mock.ExpectCommit()

	pc := &domain.ParkedCar{CarID: 11, UserID: 7, ParkingSpotID: 4, Status: domain.StatusParking, ParkedPos: "Level 1 - A03"}
	payment := &domain.Payment{UserID: 7, Amount: 150, PaymentType: domain.PaymentUPI, Status: domain.PaymentPending}
	if err := repo.CreateWithPayment(context.Background(), pc, payment); err != nil {
		t.Fatalf("create: %v", err)
	}
	if pc.ID != 21 || payment.ID != 33 || payment.ParkedCarID != 21 {
		t.Fatalf("generated ids not filled: parked car %d, payment %d -> %d", pc.ID, payment.ID, payment.ParkedCarID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateWithPaymentRollsBackWhenPaymentFails(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgParkedCarRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO parked_cars").
		WillReturnRows(parkedCarRow(21, nil, domain.StatusParking))
	mock.ExpectQuery("INSERT INTO payments").
		WillReturnError(errors.New("payments table locked"))
	mock.ExpectRollback()

	pc := &domain.ParkedCar{CarID: 11, UserID: 7, ParkingSpotID: 4, Status: domain.StatusParking}
	payment := &domain.Payment{UserID: 7, Amount: 150, PaymentType: domain.PaymentCash, Status: domain.PaymentPending}
	if err := repo.CreateWithPayment(context.Background(), pc, payment); err == nil {
		t.Fatalf("expected payment failure to surface")
	}
	if pc.ID != 0 {
		t.Fatalf("parked car must not be filled after rollback, got id %d", pc.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateWithPaymentActiveSession(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgParkedCarRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO parked_cars").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: activeCarIndex})
	mock.ExpectRollback()

	pc := &domain.ParkedCar{CarID: 11, UserID: 7, ParkingSpotID: 4, Status: domain.StatusParking}
	err := repo.CreateWithPayment(context.Background(), pc, &domain.Payment{})
	if !errors.Is(err, repository.ErrActiveSessionExists) {
		t.Fatalf("expected ErrActiveSessionExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAssignDriver(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "claims unassigned car",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("UPDATE parked_cars SET driver_id").
					WithArgs(5, 21, 4).
					WillReturnRows(parkedCarRow(21, 5, domain.StatusParking))
			},
		},
		{
			name: "car held by another driver",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("UPDATE parked_cars SET driver_id").
					WithArgs(5, 21, 4).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery("SELECT EXISTS").
					WithArgs(21, 4).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantErr: repository.ErrAlreadyAssigned,
		},
		{
			name: "car missing from lot",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("UPDATE parked_cars SET driver_id").
					WithArgs(5, 21, 4).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery("SELECT EXISTS").
					WithArgs(21, 4).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewPgParkedCarRepository(db)
			tt.setup(mock)

			pc, err := repo.AssignDriver(context.Background(), 21, 5, 4)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else {
				if err != nil {
					t.Fatalf("assign: %v", err)
				}
				if !pc.DriverID.Valid || pc.DriverID.Int64 != 5 {
					t.Fatalf("expected driver 5, got %+v", pc.DriverID)
				}
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations: %v", err)
			}
		})
	}
}

func TestUpdateStatusFlagsRetrieval(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgParkedCarRepository(db)

	retrievedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("UPDATE parked_cars").
		WithArgs("RETRIEVED", 5, 21, 4, true).
		WillReturnRows(sqlmock.NewRows(parkedCarMockColumns).
			AddRow(21, 11, 7, 4, 5, "RETRIEVED", "Level 1 - A03", now, retrievedAt, now, retrievedAt))

	pc, err := repo.UpdateStatus(context.Background(), 21, 5, 4, domain.StatusRetrieved)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if pc.Status != domain.StatusRetrieved || !pc.RetrievedAt.Valid {
		t.Fatalf("expected retrieved with timestamp, got %+v", pc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateStatusKeepsRetrievedAtForOtherStatuses(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgParkedCarRepository(db)

	mock.ExpectQuery("UPDATE parked_cars").
		WithArgs("PARKED", 5, 21, 4, false).
		WillReturnRows(parkedCarRow(21, 5, domain.StatusParked))

	pc, err := repo.UpdateStatus(context.Background(), 21, 5, 4, domain.StatusParked)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if pc.RetrievedAt.Valid {
		t.Fatalf("retrieved_at must stay null, got %v", pc.RetrievedAt.Time)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRequestRetrievalNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgParkedCarRepository(db)

	mock.ExpectQuery("UPDATE parked_cars SET status = 'RETRIEVE'").
		WithArgs(21, 9).
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.RequestRetrieval(context.Background(), 21, 9); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
