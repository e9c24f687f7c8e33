package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"valet_parking/internal/domain"
	"valet_parking/internal/repository"
)

// ManagerService serves the dashboards of a manager's own lot.
type ManagerService struct {
	spotRepo   repository.ParkingSpotRepository
	staffRepo  repository.StaffRepository
	reportRepo repository.ReportRepository
	now        func() time.Time
}

func NewManagerService(spotRepo repository.ParkingSpotRepository, staffRepo repository.StaffRepository, reportRepo repository.ReportRepository) *ManagerService {
	return &ManagerService{spotRepo: spotRepo, staffRepo: staffRepo, reportRepo: reportRepo, now: time.Now}
}

// todayWindow spans the current calendar day in server local time.
func todayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

func (s *ManagerService) lot(ctx context.Context, parkingSpotID int) (*domain.ParkingSpot, error) {
	spot, err := s.spotRepo.FindByID(ctx, parkingSpotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("parking spot %d: %w", parkingSpotID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("ManagerService: load spot: %w", err)
	}
	return spot, nil
}

func (s *ManagerService) DailyStats(ctx context.Context, manager *domain.StaffRecord) (*domain.DailyStats, error) {
	spot, err := s.lot(ctx, manager.ParkingSpotID)
	if err != nil {
		return nil, err
	}
	from, to := todayWindow(s.now())

	active, _, err := s.reportRepo.SearchParkedCars(ctx, domain.ParkedCarFilter{
		ParkingSpotID: spot.ID,
		ActiveOnly:    true,
		From:          from,
		To:            to,
	})
	if err != nil {
		return nil, fmt.Errorf("ManagerService.DailyStats (active): %w", err)
	}
	totals, err := s.reportRepo.LotTotals(ctx, spot.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ManagerService.DailyStats (totals): %w", err)
	}

	return &domain.DailyStats{
		ParkingSpot: spot,
		Summary: domain.DailySummary{
			ActiveCarsCount: len(active),
			TotalCarsToday:  totals.Tickets,
			RevenueToday:    totals.Collection,
		},
		ActiveCars: active,
	}, nil
}

// SearchParkedCars pages through today's cars of the lot.
func (s *ManagerService) SearchParkedCars(ctx context.Context, manager *domain.StaffRecord, q domain.ParkedCarSearchQuery) ([]domain.ParkedCarView, domain.Pagination, error) {
	page := q.PageQuery.Normalize(10)
	status := domain.ParkedCarStatus(strings.ToUpper(strings.TrimSpace(q.Status)))
	if status != "" && !status.Valid() {
		return nil, domain.Pagination{}, fmt.Errorf("%w: status must be one of PARKING, PARKED, RETRIEVE, RETRIEVED", ErrValidation)
	}
	from, to := todayWindow(s.now())

	views, total, err := s.reportRepo.SearchParkedCars(ctx, domain.ParkedCarFilter{
		ParkingSpotID: manager.ParkingSpotID,
		Keyword:       strings.TrimSpace(q.Keyword),
		Status:        status,
		From:          from,
		To:            to,
		Limit:         page.Limit,
		Offset:        page.Offset(),
	})
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("ManagerService.SearchParkedCars: %w", err)
	}
	return views, domain.NewPagination(page, total), nil
}

func (s *ManagerService) Drivers(ctx context.Context, manager *domain.StaffRecord) ([]domain.LotDriver, error) {
	return s.staffRepo.ListApprovedDrivers(ctx, manager.ParkingSpotID)
}
