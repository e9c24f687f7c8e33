package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"valet_parking/internal/domain"
	"valet_parking/internal/repository"
)

// activeCarIndex backs the one-active-session-per-car invariant.
const activeCarIndex = "parked_cars_active_car_idx"

const parkedCarColumns = `id, car_id, user_id, parking_spot_id, driver_id, status, parked_pos,
	parked_at, retrieved_at, created_at, updated_at`

type pgParkedCarRepository struct {
	db *sql.DB
}

func NewPgParkedCarRepository(db *sql.DB) repository.ParkedCarRepository {
	return &pgParkedCarRepository{db: db}
}

func scanParkedCar(row rowScanner) (*domain.ParkedCar, error) {
	pc := &domain.ParkedCar{}
	if err := row.Scan(&pc.ID, &pc.CarID, &pc.UserID, &pc.ParkingSpotID, &pc.DriverID, &pc.Status,
		&pc.ParkedPos, &pc.ParkedAt, &pc.RetrievedAt, &pc.CreatedAt, &pc.UpdatedAt); err != nil {
		return nil, err
	}
	pc.ParkedAt = pc.ParkedAt.In(time.UTC)
	if pc.RetrievedAt.Valid {
		pc.RetrievedAt.Time = pc.RetrievedAt.Time.In(time.UTC)
	}
	pc.CreatedAt = pc.CreatedAt.In(time.UTC)
	pc.UpdatedAt = pc.UpdatedAt.In(time.UTC)
	return pc, nil
}

func (r *pgParkedCarRepository) CreateWithPayment(ctx context.Context, pc *domain.ParkedCar, payment *domain.Payment) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		insertCar := `INSERT INTO parked_cars (car_id, user_id, parking_spot_id, status, parked_pos)
		               VALUES ($1, $2, $3, $4, $5)
		               RETURNING ` + parkedCarColumns
		created, err := scanParkedCar(tx.QueryRowContext(ctx, insertCar,
			pc.CarID, pc.UserID, pc.ParkingSpotID, string(pc.Status), pc.ParkedPos))
		if err != nil {
			if isUniqueViolation(err, activeCarIndex) {
				return fmt.Errorf("%w: car %d", repository.ErrActiveSessionExists, pc.CarID)
			}
			return fmt.Errorf("ParkedCarRepository.CreateWithPayment (parked car): %w", err)
		}

		insertPayment := `INSERT INTO payments (user_id, parked_car_id, amount, payment_type, status)
		                   VALUES ($1, $2, $3, $4, $5)
		                   RETURNING id, created_at`
		if err := tx.QueryRowContext(ctx, insertPayment,
			payment.UserID, created.ID, payment.Amount, string(payment.PaymentType), string(payment.Status),
		).Scan(&payment.ID, &payment.CreatedAt); err != nil {
			return fmt.Errorf("ParkedCarRepository.CreateWithPayment (payment): %w", err)
		}

		*pc = *created
		payment.ParkedCarID = created.ID
		payment.CreatedAt = payment.CreatedAt.In(time.UTC)
		return nil
	})
}

func (r *pgParkedCarRepository) FindByID(ctx context.Context, id int) (*domain.ParkedCar, error) {
	query := `SELECT ` + parkedCarColumns + ` FROM parked_cars WHERE id = $1 AND deleted = false`
	pc, err := scanParkedCar(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkedCarRepository.FindByID: %w", err)
	}
	return pc, nil
}

func (r *pgParkedCarRepository) RequestRetrieval(ctx context.Context, id, userID int) (*domain.ParkedCar, error) {
	query := `UPDATE parked_cars SET status = 'RETRIEVE', updated_at = CURRENT_TIMESTAMP
	           WHERE id = $1 AND user_id = $2 AND deleted = false AND status <> 'RETRIEVED'
	           RETURNING ` + parkedCarColumns
	pc, err := scanParkedCar(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkedCarRepository.RequestRetrieval: %w", err)
	}
	return pc, nil
}

// AssignDriver claims the car with a single check-and-set so two drivers racing
// for the same car cannot both win.
func (r *pgParkedCarRepository) AssignDriver(ctx context.Context, id, driverID, parkingSpotID int) (*domain.ParkedCar, error) {
	query := `UPDATE parked_cars SET driver_id = $1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $2 AND parking_spot_id = $3 AND deleted = false AND driver_id IS NULL
	           RETURNING ` + parkedCarColumns
	pc, err := scanParkedCar(r.db.QueryRowContext(ctx, query, driverID, id, parkingSpotID))
	if err == nil {
		return pc, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ParkedCarRepository.AssignDriver: %w", err)
	}
	return nil, r.explainMiss(ctx, "AssignDriver", id, parkingSpotID)
}

// UpdateStatus stamps the acting driver only while the car is unassigned or
// already theirs; retrieved_at moves only on a transition into RETRIEVED.
func (r *pgParkedCarRepository) UpdateStatus(ctx context.Context, id, driverID, parkingSpotID int, status domain.ParkedCarStatus) (*domain.ParkedCar, error) {
	query := `UPDATE parked_cars
	           SET status = $1,
	               driver_id = COALESCE(driver_id, $2),
	               retrieved_at = CASE WHEN $5::boolean THEN CURRENT_TIMESTAMP ELSE retrieved_at END,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = $3 AND parking_spot_id = $4 AND deleted = false
	             AND (driver_id IS NULL OR driver_id = $2)
	           RETURNING ` + parkedCarColumns
	pc, err := scanParkedCar(r.db.QueryRowContext(ctx, query,
		string(status), driverID, id, parkingSpotID, status == domain.StatusRetrieved))
	if err == nil {
		return pc, nil
	}
	if isUniqueViolation(err, activeCarIndex) {
		return nil, fmt.Errorf("%w: parked car %d", repository.ErrActiveSessionExists, id)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ParkedCarRepository.UpdateStatus: %w", err)
	}
	return nil, r.explainMiss(ctx, "UpdateStatus", id, parkingSpotID)
}

// explainMiss tells a missing row apart from one held by another driver after a
// conditional update touched nothing.
func (r *pgParkedCarRepository) explainMiss(ctx context.Context, op string, id, parkingSpotID int) error {
	var exists bool
	probe := `SELECT EXISTS (SELECT 1 FROM parked_cars WHERE id = $1 AND parking_spot_id = $2 AND deleted = false)`
	if err := r.db.QueryRowContext(ctx, probe, id, parkingSpotID).Scan(&exists); err != nil {
		return fmt.Errorf("ParkedCarRepository.%s (probe): %w", op, err)
	}
	if !exists {
		return repository.ErrNotFound
	}
	return fmt.Errorf("%w: parked car %d", repository.ErrAlreadyAssigned, id)
}

func (r *pgParkedCarRepository) queryViews(ctx context.Context, op, query string, args ...any) ([]domain.ParkedCarView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ParkedCarRepository.%s: %w", op, err)
	}
	defer rows.Close()

	views := []domain.ParkedCarView{}
	for rows.Next() {
		v, err := scanParkedCarView(rows)
		if err != nil {
			return nil, fmt.Errorf("ParkedCarRepository.%s (scanning row): %w", op, err)
		}
		views = append(views, *v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkedCarRepository.%s (rows error): %w", op, err)
	}
	return views, nil
}

func (r *pgParkedCarRepository) ListUnassignedForLot(ctx context.Context, parkingSpotID int) ([]domain.ParkedCarView, error) {
	query := parkedCarViewSelect + `
	           WHERE pc.parking_spot_id = $1 AND pc.deleted = false
	             AND pc.status <> 'RETRIEVED' AND pc.driver_id IS NULL
	           ORDER BY pc.parked_at DESC`
	return r.queryViews(ctx, "ListUnassignedForLot", query, parkingSpotID)
}

func (r *pgParkedCarRepository) ListAssignedForDriver(ctx context.Context, parkingSpotID, driverID int) ([]domain.ParkedCarView, error) {
	query := parkedCarViewSelect + `
	           WHERE pc.parking_spot_id = $1 AND pc.deleted = false
	             AND pc.status <> 'RETRIEVED' AND pc.driver_id = $2
	           ORDER BY pc.parked_at DESC`
	return r.queryViews(ctx, "ListAssignedForDriver", query, parkingSpotID, driverID)
}

func (r *pgParkedCarRepository) ListLotQueue(ctx context.Context, parkingSpotID int) ([]domain.ParkedCarView, error) {
	query := parkedCarViewSelect + `
	           WHERE pc.parking_spot_id = $1 AND pc.deleted = false
	             AND pc.status IN ('PARKING', 'RETRIEVE')
	           ORDER BY pc.parked_at DESC`
	return r.queryViews(ctx, "ListLotQueue", query, parkingSpotID)
}

func (r *pgParkedCarRepository) FindActiveForUser(ctx context.Context, userID int) (*domain.ParkedCarView, error) {
	query := parkedCarViewSelect + `
	           WHERE pc.user_id = $1 AND pc.deleted = false AND pc.status <> 'RETRIEVED'
	           ORDER BY pc.created_at ASC
	           LIMIT 1`
	v, err := scanParkedCarView(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkedCarRepository.FindActiveForUser: %w", err)
	}
	return v, nil
}

func (r *pgParkedCarRepository) ListRecentForUser(ctx context.Context, userID, limit, offset int) ([]domain.ParkedCarView, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM parked_cars WHERE user_id = $1 AND deleted = false`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ParkedCarRepository.ListRecentForUser (count): %w", err)
	}
	query := parkedCarViewSelect + `
	           WHERE pc.user_id = $1 AND pc.deleted = false
	           ORDER BY pc.created_at DESC
	           LIMIT $2 OFFSET $3`
	views, err := r.queryViews(ctx, "ListRecentForUser", query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}
