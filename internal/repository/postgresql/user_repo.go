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

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) repository.UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, email, password, name, phone, role, created_at, updated_at`

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	if err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.Phone,
		&user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	user.CreatedAt = user.CreatedAt.In(time.UTC)
	user.UpdatedAt = user.UpdatedAt.In(time.UTC)
	return user, nil
}

func (r *pgUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (email, password, name, phone)
	           VALUES ($1, $2, $3, $4)
	           RETURNING ` + userColumns
	created, err := scanUser(r.db.QueryRowContext(ctx, query, user.Email, user.Password, user.Name, user.Phone))
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, fmt.Errorf("%w: email '%s'", repository.ErrDuplicateEntry, user.Email)
		}
		return nil, fmt.Errorf("UserRepository.Create: %w", err)
	}
	return created, nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted = false`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("UserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted = false`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("UserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) UpdateProfile(ctx context.Context, id int, dto domain.UpdateProfileDTO) (*domain.User, error) {
	query := `UPDATE users SET email = $1, name = $2, phone = $3, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $4 AND deleted = false
	           RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRowContext(ctx, query, dto.Email, dto.Name, dto.Phone, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		if isUniqueViolation(err, "") {
			return nil, fmt.Errorf("%w: email '%s'", repository.ErrDuplicateEntry, dto.Email)
		}
		return nil, fmt.Errorf("UserRepository.UpdateProfile: %w", err)
	}
	return user, nil
}
