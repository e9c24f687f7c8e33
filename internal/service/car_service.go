package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"valet_parking/internal/domain"
	"valet_parking/internal/repository"
)

type CarService struct {
	carRepo repository.CarRepository
}

func NewCarService(carRepo repository.CarRepository) *CarService {
	return &CarService{carRepo: carRepo}
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func (s *CarService) AddCar(ctx context.Context, userID int, dto domain.CarDTO) (*domain.Car, error) {
	car := &domain.Car{
		UserID:       userID,
		Brand:        strings.TrimSpace(dto.Brand),
		Model:        strings.TrimSpace(dto.Model),
		LicensePlate: normalizePlate(dto.LicensePlate),
	}
	if car.LicensePlate == "" {
		return nil, fmt.Errorf("%w: license_plate is required", ErrValidation)
	}
	return s.carRepo.Create(ctx, car)
}

func (s *CarService) ListCars(ctx context.Context, userID int) ([]domain.Car, error) {
	return s.carRepo.ListByUser(ctx, userID)
}

func (s *CarService) UpdateCar(ctx context.Context, userID, carID int, dto domain.CarDTO) (*domain.Car, error) {
	car, err := s.carRepo.FindOwned(ctx, carID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("car %d: %w", carID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("CarService.UpdateCar: %w", err)
	}
	car.Brand = strings.TrimSpace(dto.Brand)
	car.Model = strings.TrimSpace(dto.Model)
	car.LicensePlate = normalizePlate(dto.LicensePlate)
	return s.carRepo.Update(ctx, car)
}

func (s *CarService) DeleteCar(ctx context.Context, userID, carID int) error {
	if err := s.carRepo.SoftDelete(ctx, carID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("car %d: %w", carID, repository.ErrNotFound)
		}
		return fmt.Errorf("CarService.DeleteCar: %w", err)
	}
	return nil
}
