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

type pgParkingSpotRepository struct {
	db *sql.DB
}

func NewPgParkingSpotRepository(db *sql.DB) repository.ParkingSpotRepository {
	return &pgParkingSpotRepository{db: db}
}

const spotColumns = `id, name, location, capacity, created_at, updated_at`

func scanSpot(row rowScanner) (*domain.ParkingSpot, error) {
	spot := &domain.ParkingSpot{}
	if err := row.Scan(&spot.ID, &spot.Name, &spot.Location, &spot.Capacity, &spot.CreatedAt, &spot.UpdatedAt); err != nil {
		return nil, err
	}
	spot.CreatedAt = spot.CreatedAt.In(time.UTC)
	spot.UpdatedAt = spot.UpdatedAt.In(time.UTC)
	return spot, nil
}

func (r *pgParkingSpotRepository) Create(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error) {
	query := `INSERT INTO parking_spots (name, location, capacity) VALUES ($1, $2, $3) RETURNING ` + spotColumns
	created, err := scanSpot(r.db.QueryRowContext(ctx, query, spot.Name, spot.Location, spot.Capacity))
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, fmt.Errorf("%w: parking spot '%s'", repository.ErrDuplicateEntry, spot.Name)
		}
		return nil, fmt.Errorf("ParkingSpotRepository.Create: %w", err)
	}
	return created, nil
}

func (r *pgParkingSpotRepository) FindByID(ctx context.Context, id int) (*domain.ParkingSpot, error) {
	query := `SELECT ` + spotColumns + ` FROM parking_spots WHERE id = $1 AND deleted = false`
	spot, err := scanSpot(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSpotRepository.FindByID: %w", err)
	}
	return spot, nil
}

func (r *pgParkingSpotRepository) FindAll(ctx context.Context) ([]domain.ParkingSpot, error) {
	query := `SELECT ` + spotColumns + ` FROM parking_spots WHERE deleted = false ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ParkingSpotRepository.FindAll: %w", err)
	}
	defer rows.Close()

	spots := []domain.ParkingSpot{}
	for rows.Next() {
		spot, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("ParkingSpotRepository.FindAll (scanning row): %w", err)
		}
		spots = append(spots, *spot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingSpotRepository.FindAll (rows error): %w", err)
	}
	return spots, nil
}
