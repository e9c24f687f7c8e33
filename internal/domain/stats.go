package domain

type DailySummary struct {
	ActiveCarsCount int     `json:"active_cars_count"`
	TotalCarsToday  int     `json:"total_cars_today"`
	RevenueToday    float64 `json:"revenue_today"`
}

type DailyStats struct {
	ParkingSpot *ParkingSpot    `json:"parking_spot"`
	Summary     DailySummary    `json:"summary"`
	ActiveCars  []ParkedCarView `json:"active_cars"`
}

type TodaysPerformance struct {
	TicketsIssued int     `json:"tickets_issued"`
	Collection    float64 `json:"collection"`
}

type OverallStatistics struct {
	TotalTickets    int     `json:"total_tickets"`
	TotalCollection float64 `json:"total_collection"`
	ActiveParking   int     `json:"active_parking"`
}

type Overview struct {
	ParkingSpot       *ParkingSpot      `json:"parking_spot"`
	TodaysPerformance TodaysPerformance `json:"todays_performance"`
	OverallStatistics OverallStatistics `json:"overall_statistics"`
}

// LotTotals is what the report repository aggregates for one lot and window.
type LotTotals struct {
	Tickets    int
	Collection float64
}
