package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"valet_parking/internal/domain"
	"valet_parking/internal/repository"
)

func newReportFixture() (*fakeSpotRepo, *fakeStaffRepo, *fakeReportRepo) {
	spots := &fakeSpotRepo{spots: map[int]*domain.ParkingSpot{4: {ID: 4, Name: "Phoenix Mall", Location: "Pune", Capacity: 50}}}
	staff := &fakeStaffRepo{records: map[staffKey]*domain.StaffRecord{
		{domain.StaffDriver, 2}:  {ID: 20, UserID: 2, ParkingSpotID: 4, Approved: true},
		{domain.StaffDriver, 3}:  {ID: 30, UserID: 3, ParkingSpotID: 4, Approved: false},
		{domain.StaffManager, 8}: {ID: 80, UserID: 8, ParkingSpotID: 4, Approved: false},
	}}
	reports := &fakeReportRepo{
		views: []domain.ParkedCarView{{ID: 1, Status: domain.StatusParked}},
		totals: map[bool]domain.LotTotals{
			true:  {Tickets: 3, Collection: 450},
			false: {Tickets: 40, Collection: 6000},
		},
		active: 2,
	}
	return spots, staff, reports
}

func TestDailyStats(t *testing.T) {
	spots, staff, reports := newReportFixture()
	svc := NewManagerService(spots, staff, reports)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC) }

	stats, err := svc.DailyStats(context.Background(), &domain.StaffRecord{ID: 80, ParkingSpotID: 4})
	if err != nil {
		t.Fatalf("daily stats: %v", err)
	}
	if stats.Summary.ActiveCarsCount != 1 || stats.Summary.TotalCarsToday != 3 || stats.Summary.RevenueToday != 450 {
		t.Fatalf("unexpected summary %+v", stats.Summary)
	}
	f := reports.filters[0]
	if !f.ActiveOnly || !f.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) || !f.To.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected active filter %+v", f)
	}
}

func TestSearchParkedCars(t *testing.T) {
	spots, staff, reports := newReportFixture()
	svc := NewManagerService(spots, staff, reports)
	manager := &domain.StaffRecord{ID: 80, ParkingSpotID: 4}

	_, page, err := svc.SearchParkedCars(context.Background(), manager, domain.ParkedCarSearchQuery{
		PageQuery: domain.PageQuery{Page: 2, Limit: 5},
		Keyword:   " MH12 ",
		Status:    "parked",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	f := reports.filters[0]
	if f.Keyword != "MH12" || f.Status != domain.StatusParked || f.Limit != 5 || f.Offset != 5 || f.ParkingSpotID != 4 {
		t.Fatalf("unexpected filter %+v", f)
	}
	if page.CurrentPage != 2 || !page.HasPrevPage {
		t.Fatalf("unexpected pagination %+v", page)
	}

	if _, _, err := svc.SearchParkedCars(context.Background(), manager, domain.ParkedCarSearchQuery{Status: "LOST"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOverviewAndApprovals(t *testing.T) {
	spots, staff, reports := newReportFixture()
	svc := NewAdminService(spots, staff, reports)

	ov, err := svc.Overview(context.Background(), 4)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.TodaysPerformance.TicketsIssued != 3 || ov.OverallStatistics.TotalTickets != 40 || ov.OverallStatistics.ActiveParking != 2 {
		t.Fatalf("unexpected overview %+v", ov)
	}
	if _, err := svc.Overview(context.Background(), 99); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	pending, _ := svc.PendingApprovals(context.Background(), domain.StaffDriver)
	if len(pending) != 1 || pending[0].ID != 30 {
		t.Fatalf("expected driver 30 pending, got %+v", pending)
	}
	if err := svc.Approve(context.Background(), domain.StaffDriver, 30); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := svc.Reject(context.Background(), domain.StaffManager, 80); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := svc.Approve(context.Background(), domain.StaffManager, 80); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("rejected manager must be gone, got %v", err)
	}
	if _, err := svc.CreateParkingSpot(context.Background(), domain.ParkingSpotDTO{Name: "X", Location: "Y"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for zero capacity, got %v", err)
	}
}
