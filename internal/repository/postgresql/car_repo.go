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

type pgCarRepository struct {
	db *sql.DB
}

func NewPgCarRepository(db *sql.DB) repository.CarRepository {
	return &pgCarRepository{db: db}
}

const carColumns = `id, user_id, brand, model, license_plate, created_at, updated_at`

func scanCar(row rowScanner) (*domain.Car, error) {
	car := &domain.Car{}
	if err := row.Scan(&car.ID, &car.UserID, &car.Brand, &car.Model, &car.LicensePlate,
		&car.CreatedAt, &car.UpdatedAt); err != nil {
		return nil, err
	}
	car.CreatedAt = car.CreatedAt.In(time.UTC)
	car.UpdatedAt = car.UpdatedAt.In(time.UTC)
	return car, nil
}

func (r *pgCarRepository) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	query := `INSERT INTO cars (user_id, brand, model, license_plate)
	           VALUES ($1, $2, $3, $4)
	           RETURNING ` + carColumns
	created, err := scanCar(r.db.QueryRowContext(ctx, query, car.UserID, car.Brand, car.Model, car.LicensePlate))
	if err != nil {
		return nil, fmt.Errorf("CarRepository.Create: %w", err)
	}
	return created, nil
}

func (r *pgCarRepository) FindOwned(ctx context.Context, id, userID int) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1 AND user_id = $2 AND deleted = false`
	car, err := scanCar(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("CarRepository.FindOwned: %w", err)
	}
	return car, nil
}

func (r *pgCarRepository) ListByUser(ctx context.Context, userID int) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE user_id = $1 AND deleted = false ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("CarRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	cars := []domain.Car{}
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("CarRepository.ListByUser (scanning row): %w", err)
		}
		cars = append(cars, *car)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("CarRepository.ListByUser (rows error): %w", err)
	}
	return cars, nil
}

func (r *pgCarRepository) Update(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	query := `UPDATE cars SET brand = $1, model = $2, license_plate = $3, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $4 AND user_id = $5 AND deleted = false
	           RETURNING ` + carColumns
	updated, err := scanCar(r.db.QueryRowContext(ctx, query, car.Brand, car.Model, car.LicensePlate, car.ID, car.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("CarRepository.Update: %w", err)
	}
	return updated, nil
}

func (r *pgCarRepository) SoftDelete(ctx context.Context, id, userID int) error {
	query := `UPDATE cars SET deleted = true, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $1 AND user_id = $2 AND deleted = false`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("CarRepository.SoftDelete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("CarRepository.SoftDelete (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
