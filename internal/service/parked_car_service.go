package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"valet_parking/internal/domain"
	"valet_parking/internal/metrics"
	"valet_parking/internal/repository"
)

// ParkedCarService owns the parked-car lifecycle:
// PARKING -> PARKED -> RETRIEVE -> RETRIEVED.
type ParkedCarService struct {
	parkedRepo repository.ParkedCarRepository
	carRepo    repository.CarRepository
	spotRepo   repository.ParkingSpotRepository
	labeler    SlotLabeler
	publisher  EventPublisher
}

func NewParkedCarService(
	parkedRepo repository.ParkedCarRepository,
	carRepo repository.CarRepository,
	spotRepo repository.ParkingSpotRepository,
	labeler SlotLabeler,
	publisher EventPublisher,
) *ParkedCarService {
	if publisher == nil {
		publisher = FanOut(nil)
	}
	return &ParkedCarService{
		parkedRepo: parkedRepo,
		carRepo:    carRepo,
		spotRepo:   spotRepo,
		labeler:    labeler,
		publisher:  publisher,
	}
}

func validateParkCar(dto domain.ParkCarDTO) error {
	switch {
	case dto.CarID <= 0:
		return fmt.Errorf("%w: car_id is required", ErrValidation)
	case dto.ParkingSpotID <= 0:
		return fmt.Errorf("%w: parking_spot_id is required", ErrValidation)
	case dto.Amount <= 0:
		return fmt.Errorf("%w: amount must be greater than 0", ErrValidation)
	case dto.PaymentType == "":
		return fmt.Errorf("%w: payment_type is required", ErrValidation)
	case dto.PaymentStatus == "":
		return fmt.Errorf("%w: payment_status is required", ErrValidation)
	case !dto.PaymentType.Valid():
		return fmt.Errorf("%w: payment_type must be one of CASH, NET_BANKING, UPI, CARD", ErrValidation)
	case !dto.PaymentStatus.Valid():
		return fmt.Errorf("%w: payment_status must be one of PENDING, COMPLETED, FAILED, REFUNDED", ErrValidation)
	}
	return nil
}

// CreateParkingSession parks an owned car at a lot and records its payment in
// one transaction.
func (s *ParkedCarService) CreateParkingSession(ctx context.Context, userID int, dto domain.ParkCarDTO) (*domain.ParkCarResult, error) {
	if err := validateParkCar(dto); err != nil {
		return nil, err
	}

	if _, err := s.carRepo.FindOwned(ctx, dto.CarID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("car %d: %w", dto.CarID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("ParkedCarService.CreateParkingSession (car): %w", err)
	}
	spot, err := s.spotRepo.FindByID(ctx, dto.ParkingSpotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("parking spot %d: %w", dto.ParkingSpotID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("ParkedCarService.CreateParkingSession (spot): %w", err)
	}

	pc := &domain.ParkedCar{
		CarID:         dto.CarID,
		UserID:        userID,
		ParkingSpotID: spot.ID,
		Status:        domain.StatusParking,
		ParkedPos:     s.labeler.Label(spot),
	}
	payment := &domain.Payment{
		UserID:      userID,
		Amount:      dto.Amount,
		PaymentType: dto.PaymentType,
		Status:      dto.PaymentStatus,
	}
	if err := s.parkedRepo.CreateWithPayment(ctx, pc, payment); err != nil {
		if errors.Is(err, repository.ErrActiveSessionExists) {
			return nil, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return nil, fmt.Errorf("ParkedCarService.CreateParkingSession: %w", err)
	}

	log.Printf("ParkedCarService: car %d parked at spot %d (%s) as parked car %d", pc.CarID, pc.ParkingSpotID, pc.ParkedPos, pc.ID)
	metrics.Payments.WithLabelValues(string(payment.PaymentType)).Inc()
	s.transitioned(ctx, domain.EventParkedCarCreated, pc)
	return &domain.ParkCarResult{ParkedCar: pc, Payment: payment}, nil
}

// RequestRetrieval moves any active session of the owner to RETRIEVE.
func (s *ParkedCarService) RequestRetrieval(ctx context.Context, userID, parkedCarID int) (*domain.ParkedCar, error) {
	pc, err := s.parkedRepo.RequestRetrieval(ctx, parkedCarID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("parked car %d: %w", parkedCarID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("ParkedCarService.RequestRetrieval: %w", err)
	}
	s.transitioned(ctx, domain.EventRetrievalRequested, pc)
	return pc, nil
}

// AssignDriver lets a driver claim an unassigned car of their lot.
func (s *ParkedCarService) AssignDriver(ctx context.Context, driver *domain.StaffRecord, parkedCarID int) (*domain.ParkedCar, error) {
	pc, err := s.parkedRepo.AssignDriver(ctx, parkedCarID, driver.ID, driver.ParkingSpotID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("parked car %d: %w", parkedCarID, repository.ErrNotFound)
		case errors.Is(err, repository.ErrAlreadyAssigned):
			return nil, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return nil, fmt.Errorf("ParkedCarService.AssignDriver: %w", err)
	}
	log.Printf("ParkedCarService: driver %d claimed parked car %d", driver.ID, pc.ID)
	s.transitioned(ctx, domain.EventDriverAssigned, pc)
	return pc, nil
}

// UpdateStatus sets any of the four statuses. A car held by another driver
// is a Conflict; an unassigned car is claimed by the caller.
func (s *ParkedCarService) UpdateStatus(ctx context.Context, driver *domain.StaffRecord, parkedCarID int, status domain.ParkedCarStatus) (*domain.ParkedCar, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status must be one of PARKING, PARKED, RETRIEVE, RETRIEVED", ErrValidation)
	}
	pc, err := s.parkedRepo.UpdateStatus(ctx, parkedCarID, driver.ID, driver.ParkingSpotID, status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("parked car %d: %w", parkedCarID, repository.ErrNotFound)
		case errors.Is(err, repository.ErrAlreadyAssigned), errors.Is(err, repository.ErrActiveSessionExists):
			return nil, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return nil, fmt.Errorf("ParkedCarService.UpdateStatus: %w", err)
	}
	s.transitioned(ctx, domain.EventParkedCarStatusMoved, pc)
	return pc, nil
}

func (s *ParkedCarService) ListUnassignedForLot(ctx context.Context, driver *domain.StaffRecord) ([]domain.ParkedCarView, error) {
	return s.parkedRepo.ListUnassignedForLot(ctx, driver.ParkingSpotID)
}

func (s *ParkedCarService) ListAssignedForLot(ctx context.Context, driver *domain.StaffRecord) ([]domain.ParkedCarView, error) {
	return s.parkedRepo.ListAssignedForDriver(ctx, driver.ParkingSpotID, driver.ID)
}

// ListLotQueue returns the lot's cars waiting on a driver: PARKING or RETRIEVE.
func (s *ParkedCarService) ListLotQueue(ctx context.Context, driver *domain.StaffRecord) ([]domain.ParkedCarView, error) {
	return s.parkedRepo.ListLotQueue(ctx, driver.ParkingSpotID)
}

// ActiveParkedCar returns nil without error when the user has nothing parked.
func (s *ParkedCarService) ActiveParkedCar(ctx context.Context, userID int) (*domain.ParkedCarView, error) {
	v, err := s.parkedRepo.FindActiveForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ParkedCarService.ActiveParkedCar: %w", err)
	}
	return v, nil
}

func (s *ParkedCarService) RecentParkedCars(ctx context.Context, userID int, q domain.PageQuery) ([]domain.ParkedCarView, domain.Pagination, error) {
	q = q.Normalize(10)
	views, total, err := s.parkedRepo.ListRecentForUser(ctx, userID, q.Limit, q.Offset())
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("ParkedCarService.RecentParkedCars: %w", err)
	}
	return views, domain.NewPagination(q, total), nil
}

func (s *ParkedCarService) transitioned(ctx context.Context, t domain.ParkedCarEventType, pc *domain.ParkedCar) {
	metrics.ParkedCarTransitions.WithLabelValues(string(pc.Status)).Inc()
	if err := s.publisher.Publish(ctx, domain.NewParkedCarEvent(t, pc)); err != nil {
		log.Printf("ParkedCarService: publish %s for parked car %d: %v", t, pc.ID, err)
	}
}
