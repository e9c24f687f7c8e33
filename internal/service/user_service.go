package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"valet_parking/internal/domain"
	"valet_parking/internal/repository"
)

// UserService covers the signed-in user's own profile and staff applications.
type UserService struct {
	userRepo  repository.UserRepository
	staffRepo repository.StaffRepository
	spotRepo  repository.ParkingSpotRepository
}

func NewUserService(userRepo repository.UserRepository, staffRepo repository.StaffRepository, spotRepo repository.ParkingSpotRepository) *UserService {
	return &UserService{userRepo: userRepo, staffRepo: staffRepo, spotRepo: spotRepo}
}

func (s *UserService) Profile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("UserService.Profile: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int, dto domain.UpdateProfileDTO) (*domain.User, error) {
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	dto.Name = strings.TrimSpace(dto.Name)
	user, err := s.userRepo.UpdateProfile(ctx, userID, dto)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEntry):
			return nil, ErrUserAlreadyExists
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("UserService.UpdateProfile: %w", err)
	}
	return user, nil
}

// Apply files an unapproved driver or manager record for a lot.
func (s *UserService) Apply(ctx context.Context, userID int, dto domain.StaffApplicationDTO) (*domain.StaffRecord, error) {
	if dto.Role != domain.StaffDriver && dto.Role != domain.StaffManager {
		return nil, fmt.Errorf("%w: role must be DRIVER or MANAGER", ErrValidation)
	}
	if _, err := s.spotRepo.FindByID(ctx, dto.ParkingSpotID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("parking spot %d: %w", dto.ParkingSpotID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("UserService.Apply (spot): %w", err)
	}
	rec, err := s.staffRepo.Create(ctx, dto.Role, &domain.StaffRecord{UserID: userID, ParkingSpotID: dto.ParkingSpotID})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, err
		}
		return nil, fmt.Errorf("UserService.Apply: %w", err)
	}
	return rec, nil
}
