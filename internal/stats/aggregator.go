package stats

import (
	"math"
	"time"

	"github.com/stayflow/stayflow-backend/internal/db"
)

// assumedDaysPerMonth is the fixed availability window used for the
// occupancy estimate. Kept as a flat 30 days rather than the real month
// length, matching how the dashboards have always reported it.
const assumedDaysPerMonth = 30

type DashboardStats struct {
	TotalProperties  int `json:"total_properties"`
	ActiveProperties int `json:"active_properties"`

	TotalReservations   int `json:"total_reservations"`
	PendingReservations int `json:"pending_reservations"`

	TotalRevenue   float64 `json:"total_revenue"`
	MonthlyRevenue float64 `json:"monthly_revenue"`

	// Signed percentage change versus the previous calendar month.
	// Exactly 0 when the previous month had no signal.
	RevenueTrend      float64 `json:"revenue_trend"`
	ReservationsTrend float64 `json:"reservations_trend"`

	// Reservation-days over assumed available property-days for the
	// current period. Not capped; overlapping stays can exceed 100.
	OccupancyRate float64 `json:"occupancy_rate"`
}

// Compute derives dashboard statistics from a tenant's properties and
// reservations. It is a pure function of its inputs: no I/O, no clock
// access (the reference time is injected), and identical inputs always
// produce identical output. Empty inputs yield all-zero stats.
func Compute(properties []*db.Property, reservations []*db.Reservation, now time.Time) DashboardStats {
	s := DashboardStats{
		TotalProperties:   len(properties),
		TotalReservations: len(reservations),
	}

	for _, p := range properties {
		if p.IsActive {
			s.ActiveProperties++
		}
	}

	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := currentMonth.AddDate(0, -1, 0)

	var lastMonthRevenue float64
	var monthlyCount, lastMonthCount int
	var occupiedDays float64

	for _, r := range reservations {
		if r.Status == db.StatusPending {
			s.PendingReservations++
		}
		if r.Status != db.StatusConfirmed {
			continue
		}

		s.TotalRevenue += r.TotalPrice
		occupiedDays += ceilDays(r.CheckOut.Sub(r.CheckIn))

		switch {
		case sameMonth(r.CheckIn, currentMonth):
			s.MonthlyRevenue += r.TotalPrice
			monthlyCount++
		case sameMonth(r.CheckIn, lastMonth):
			lastMonthRevenue += r.TotalPrice
			lastMonthCount++
		}
	}

	s.RevenueTrend = trend(s.MonthlyRevenue, lastMonthRevenue)
	s.ReservationsTrend = trend(float64(monthlyCount), float64(lastMonthCount))

	totalDays := float64(s.ActiveProperties * assumedDaysPerMonth)
	if totalDays > 0 {
		s.OccupancyRate = occupiedDays / totalDays * 100
	}

	return s
}

// trend returns the percentage change from prev to cur, or exactly 0
// when prev is not positive. The zero is a "no signal" convention, not
// a real rate.
func trend(cur, prev float64) float64 {
	if prev > 0 {
		return (cur - prev) / prev * 100
	}
	return 0
}

func sameMonth(t, month time.Time) bool {
	return t.Year() == month.Year() && t.Month() == month.Month()
}

func ceilDays(d time.Duration) float64 {
	return math.Ceil(d.Hours() / 24)
}
