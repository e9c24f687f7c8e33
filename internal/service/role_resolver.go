package service

import (
	"context"
	"errors"
	"fmt"

	"valet_parking/internal/access"
	"valet_parking/internal/domain"
	"valet_parking/internal/repository"
)

// RoleResolver loads the user and attachment record a gate needs and lets
// access.Evaluate decide.
type RoleResolver struct {
	userRepo  repository.UserRepository
	staffRepo repository.StaffRepository
}

func NewRoleResolver(userRepo repository.UserRepository, staffRepo repository.StaffRepository) *RoleResolver {
	return &RoleResolver{userRepo: userRepo, staffRepo: staffRepo}
}

func (r *RoleResolver) ResolveDriver(ctx context.Context, userID int) (*domain.StaffRecord, error) {
	return r.resolve(ctx, access.DriverGate, userID)
}

func (r *RoleResolver) ResolveManager(ctx context.Context, userID int) (*domain.StaffRecord, error) {
	return r.resolve(ctx, access.ManagerGate, userID)
}

// ResolveSuperAdmin returns no record; the role tag alone opens the gate.
func (r *RoleResolver) ResolveSuperAdmin(ctx context.Context, userID int) error {
	_, err := r.resolve(ctx, access.SuperAdminGate, userID)
	return err
}

func (r *RoleResolver) resolve(ctx context.Context, gate access.Gate, userID int) (*domain.StaffRecord, error) {
	user, err := r.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrForbidden)
		}
		return nil, fmt.Errorf("RoleResolver(%s): %w", gate.Name, err)
	}

	var record *domain.StaffRecord
	if gate.Attachment != "" && access.Evaluate(gate, user.Role, nil) != access.Forbidden {
		record, err = r.staffRepo.FindActiveByUser(ctx, gate.Attachment, userID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("RoleResolver(%s): %w", gate.Name, err)
		}
	}

	switch access.Evaluate(gate, user.Role, record) {
	case access.Allow:
		return record, nil
	case access.NotFound:
		return nil, fmt.Errorf("%w: %s record not found", repository.ErrNotFound, gate.Name)
	default:
		if record != nil && !record.Approved {
			return nil, fmt.Errorf("%w: %s not approved", ErrForbidden, gate.Name)
		}
		return nil, fmt.Errorf("%w: requires %s role", ErrForbidden, gate.Name)
	}
}
