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

type pgStaffRepository struct {
	db *sql.DB
}

func NewPgStaffRepository(db *sql.DB) repository.StaffRepository {
	return &pgStaffRepository{db: db}
}

func staffTable(kind domain.StaffKind) (string, error) {
	switch kind {
	case domain.StaffDriver:
		return "drivers", nil
	case domain.StaffManager:
		return "managers", nil
	}
	return "", fmt.Errorf("unknown staff kind %q", kind)
}

func (r *pgStaffRepository) FindActiveByUser(ctx context.Context, kind domain.StaffKind, userID int) (*domain.StaffRecord, error) {
	table, err := staffTable(kind)
	if err != nil {
		return nil, err
	}
	rec := &domain.StaffRecord{}
	query := `SELECT id, user_id, parking_spot_id, approved, created_at FROM ` + table + `
	           WHERE user_id = $1 AND deleted = false`
	err = r.db.QueryRowContext(ctx, query, userID).Scan(&rec.ID, &rec.UserID, &rec.ParkingSpotID, &rec.Approved, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("StaffRepository.FindActiveByUser(%s): %w", table, err)
	}
	rec.CreatedAt = rec.CreatedAt.In(time.UTC)
	return rec, nil
}

func (r *pgStaffRepository) Create(ctx context.Context, kind domain.StaffKind, rec *domain.StaffRecord) (*domain.StaffRecord, error) {
	table, err := staffTable(kind)
	if err != nil {
		return nil, err
	}
	query := `INSERT INTO ` + table + ` (user_id, parking_spot_id) VALUES ($1, $2)
	           RETURNING id, approved, created_at`
	err = r.db.QueryRowContext(ctx, query, rec.UserID, rec.ParkingSpotID).Scan(&rec.ID, &rec.Approved, &rec.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, fmt.Errorf("%w: user %d already has a %s record", repository.ErrDuplicateEntry, rec.UserID, table)
		}
		return nil, fmt.Errorf("StaffRepository.Create(%s): %w", table, err)
	}
	rec.CreatedAt = rec.CreatedAt.In(time.UTC)
	return rec, nil
}

func (r *pgStaffRepository) ListPending(ctx context.Context, kind domain.StaffKind) ([]domain.PendingStaff, error) {
	table, err := staffTable(kind)
	if err != nil {
		return nil, err
	}
	query := `SELECT s.id, s.created_at, u.id, u.name, u.email, u.phone, ps.id, ps.name, ps.location, ps.capacity
	           FROM ` + table + ` s
	           INNER JOIN users u ON s.user_id = u.id
	           INNER JOIN parking_spots ps ON s.parking_spot_id = ps.id
	           WHERE s.approved = false AND s.deleted = false
	           ORDER BY s.created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("StaffRepository.ListPending(%s): %w", table, err)
	}
	defer rows.Close()

	pending := []domain.PendingStaff{}
	for rows.Next() {
		var p domain.PendingStaff
		if err := rows.Scan(&p.ID, &p.CreatedAt, &p.User.ID, &p.User.Name, &p.User.Email, &p.User.Phone,
			&p.ParkingSpot.ID, &p.ParkingSpot.Name, &p.ParkingSpot.Location, &p.ParkingSpot.Capacity); err != nil {
			return nil, fmt.Errorf("StaffRepository.ListPending (scanning row): %w", err)
		}
		p.CreatedAt = p.CreatedAt.In(time.UTC)
		pending = append(pending, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("StaffRepository.ListPending (rows error): %w", err)
	}
	return pending, nil
}

func (r *pgStaffRepository) ListApprovedDrivers(ctx context.Context, parkingSpotID int) ([]domain.LotDriver, error) {
	query := `SELECT d.id, u.id, u.name, u.email, u.phone
	           FROM drivers d
	           INNER JOIN users u ON d.user_id = u.id
	           WHERE d.parking_spot_id = $1 AND d.deleted = false AND d.approved = true
	           ORDER BY u.name ASC`
	rows, err := r.db.QueryContext(ctx, query, parkingSpotID)
	if err != nil {
		return nil, fmt.Errorf("StaffRepository.ListApprovedDrivers: %w", err)
	}
	defer rows.Close()

	drivers := []domain.LotDriver{}
	for rows.Next() {
		var d domain.LotDriver
		if err := rows.Scan(&d.ID, &d.User.ID, &d.User.Name, &d.User.Email, &d.User.Phone); err != nil {
			return nil, fmt.Errorf("StaffRepository.ListApprovedDrivers (scanning row): %w", err)
		}
		drivers = append(drivers, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("StaffRepository.ListApprovedDrivers (rows error): %w", err)
	}
	return drivers, nil
}

func (r *pgStaffRepository) Approve(ctx context.Context, kind domain.StaffKind, id int) error {
	table, err := staffTable(kind)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var userID int
		query := `UPDATE ` + table + ` SET approved = true, updated_at = CURRENT_TIMESTAMP
		           WHERE id = $1 AND deleted = false
		           RETURNING user_id`
		if err := tx.QueryRowContext(ctx, query, id).Scan(&userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			return fmt.Errorf("StaffRepository.Approve(%s): %w", table, err)
		}
		// Existing MANAGER/SUPERADMIN tags are left alone.
		promote := `UPDATE users SET role = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 AND role = 'USER'`
		if _, err := tx.ExecContext(ctx, promote, string(kind), userID); err != nil {
			return fmt.Errorf("StaffRepository.Approve (promoting user %d): %w", userID, err)
		}
		return nil
	})
}

func (r *pgStaffRepository) Reject(ctx context.Context, kind domain.StaffKind, id int) error {
	table, err := staffTable(kind)
	if err != nil {
		return err
	}
	query := `UPDATE ` + table + ` SET deleted = true, updated_at = CURRENT_TIMESTAMP WHERE id = $1 AND deleted = false`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("StaffRepository.Reject(%s): %w", table, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("StaffRepository.Reject (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
