package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"valet_parking/internal/domain"
	"valet_parking/internal/repository"
)

// AdminService backs the super-administrator surface.
type AdminService struct {
	spotRepo   repository.ParkingSpotRepository
	staffRepo  repository.StaffRepository
	reportRepo repository.ReportRepository
	now        func() time.Time
}

func NewAdminService(spotRepo repository.ParkingSpotRepository, staffRepo repository.StaffRepository, reportRepo repository.ReportRepository) *AdminService {
	return &AdminService{spotRepo: spotRepo, staffRepo: staffRepo, reportRepo: reportRepo, now: time.Now}
}

func (s *AdminService) ParkingSpots(ctx context.Context) ([]domain.ParkingSpot, error) {
	return s.spotRepo.FindAll(ctx)
}

func (s *AdminService) CreateParkingSpot(ctx context.Context, dto domain.ParkingSpotDTO) (*domain.ParkingSpot, error) {
	if dto.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
	}
	return s.spotRepo.Create(ctx, &domain.ParkingSpot{Name: dto.Name, Location: dto.Location, Capacity: dto.Capacity})
}

func (s *AdminService) Overview(ctx context.Context, parkingSpotID int) (*domain.Overview, error) {
	spot, err := s.spotRepo.FindByID(ctx, parkingSpotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("parking spot %d: %w", parkingSpotID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("AdminService.Overview (spot): %w", err)
	}

	from, to := todayWindow(s.now())
	today, err := s.reportRepo.LotTotals(ctx, spot.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("AdminService.Overview (today): %w", err)
	}
	overall, err := s.reportRepo.LotTotals(ctx, spot.ID, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("AdminService.Overview (overall): %w", err)
	}
	active, err := s.reportRepo.CountByStatus(ctx, spot.ID, domain.StatusParking, domain.StatusParked)
	if err != nil {
		return nil, fmt.Errorf("AdminService.Overview (active): %w", err)
	}

	return &domain.Overview{
		ParkingSpot:       spot,
		TodaysPerformance: domain.TodaysPerformance{TicketsIssued: today.Tickets, Collection: today.Collection},
		OverallStatistics: domain.OverallStatistics{
			TotalTickets:    overall.Tickets,
			TotalCollection: overall.Collection,
			ActiveParking:   active,
		},
	}, nil
}

func (s *AdminService) PendingApprovals(ctx context.Context, kind domain.StaffKind) ([]domain.PendingStaff, error) {
	return s.staffRepo.ListPending(ctx, kind)
}

func (s *AdminService) Approve(ctx context.Context, kind domain.StaffKind, id int) error {
	if err := s.staffRepo.Approve(ctx, kind, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s %d: %w", kind, id, repository.ErrNotFound)
		}
		return fmt.Errorf("AdminService.Approve: %w", err)
	}
	return nil
}

func (s *AdminService) Reject(ctx context.Context, kind domain.StaffKind, id int) error {
	if err := s.staffRepo.Reject(ctx, kind, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s %d: %w", kind, id, repository.ErrNotFound)
		}
		return fmt.Errorf("AdminService.Reject: %w", err)
	}
	return nil
}
