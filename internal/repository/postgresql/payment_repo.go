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

type pgPaymentRepository struct {
	db *sql.DB
}

func NewPgPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &pgPaymentRepository{db: db}
}

func (r *pgPaymentRepository) ListByUser(ctx context.Context, userID int) ([]domain.PaymentHistoryItem, error) {
	query := `SELECT p.id, p.amount, p.payment_type, p.status, p.created_at,
	                 ps.location, ps.name, c.brand, c.model, c.license_plate
	           FROM payments p
	           INNER JOIN parked_cars pc ON p.parked_car_id = pc.id
	           INNER JOIN cars c ON pc.car_id = c.id
	           INNER JOIN parking_spots ps ON pc.parking_spot_id = ps.id
	           WHERE p.user_id = $1 AND p.deleted = false
	           ORDER BY p.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("PaymentRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	items := []domain.PaymentHistoryItem{}
	for rows.Next() {
		var it domain.PaymentHistoryItem
		if err := rows.Scan(&it.ID, &it.Amount, &it.PaymentType, &it.Status, &it.CreatedAt,
			&it.ParkingLocation, &it.ParkingSpotName, &it.CarBrand, &it.CarModel, &it.CarLicensePlate); err != nil {
			return nil, fmt.Errorf("PaymentRepository.ListByUser (scanning row): %w", err)
		}
		it.CreatedAt = it.CreatedAt.In(time.UTC)
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("PaymentRepository.ListByUser (rows error): %w", err)
	}
	return items, nil
}

func (r *pgPaymentRepository) UpdateStatus(ctx context.Context, id int, status domain.PaymentStatus) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `UPDATE payments SET status = $1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $2 AND deleted = false
	           RETURNING id, user_id, parked_car_id, amount, payment_type, status, created_at`
	err := r.db.QueryRowContext(ctx, query, string(status), id).Scan(
		&p.ID, &p.UserID, &p.ParkedCarID, &p.Amount, &p.PaymentType, &p.Status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("PaymentRepository.UpdateStatus: %w", err)
	}
	p.CreatedAt = p.CreatedAt.In(time.UTC)
	return p, nil
}
