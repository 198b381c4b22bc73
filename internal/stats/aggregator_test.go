package stats

import (
	"testing"
	"time"

	"github.com/stayflow/stayflow-backend/internal/db"
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func prop(active bool) *db.Property {
	return &db.Property{IsActive: active}
}

func resv(status db.ReservationStatus, checkIn time.Time, nights int, price float64) *db.Reservation {
	return &db.Reservation{
		Status:     status,
		CheckIn:    checkIn,
		CheckOut:   checkIn.AddDate(0, 0, nights),
		TotalPrice: price,
	}
}

func TestComputeEmptyInputs(t *testing.T) {
	got := Compute(nil, nil, testNow)
	want := DashboardStats{}
	if got != want {
		t.Errorf("empty inputs: got %+v, want all zeros", got)
	}
}

func TestComputePropertyCounts(t *testing.T) {
	properties := []*db.Property{prop(true), prop(true), prop(false)}

	got := Compute(properties, nil, testNow)

	if got.TotalProperties != 3 {
		t.Errorf("TotalProperties = %d, want 3", got.TotalProperties)
	}
	if got.ActiveProperties != 2 {
		t.Errorf("ActiveProperties = %d, want 2", got.ActiveProperties)
	}
}

func TestComputeRevenueTrend(t *testing.T) {
	thisMonth := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)

	reservations := []*db.Reservation{
		resv(db.StatusConfirmed, thisMonth, 2, 100),
		resv(db.StatusConfirmed, lastMonth, 2, 50),
	}

	got := Compute(nil, reservations, testNow)

	if got.MonthlyRevenue != 100 {
		t.Errorf("MonthlyRevenue = %v, want 100", got.MonthlyRevenue)
	}
	if got.TotalRevenue != 150 {
		t.Errorf("TotalRevenue = %v, want 150", got.TotalRevenue)
	}
	if got.RevenueTrend != 100 {
		t.Errorf("RevenueTrend = %v, want +100%%", got.RevenueTrend)
	}
}

func TestComputeTrendZeroWhenNoPriorMonth(t *testing.T) {
	thisMonth := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	reservations := []*db.Reservation{
		resv(db.StatusConfirmed, thisMonth, 2, 500),
	}

	got := Compute(nil, reservations, testNow)

	if got.RevenueTrend != 0 {
		t.Errorf("RevenueTrend = %v, want 0 with empty prior month", got.RevenueTrend)
	}
	if got.ReservationsTrend != 0 {
		t.Errorf("ReservationsTrend = %v, want 0 with empty prior month", got.ReservationsTrend)
	}
}

func TestComputeReservationsTrendUsesCounts(t *testing.T) {
	thisMonth := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)

	// 3 this month vs 2 last month: +50% by count, even though revenue fell.
	reservations := []*db.Reservation{
		resv(db.StatusConfirmed, thisMonth, 1, 10),
		resv(db.StatusConfirmed, thisMonth, 1, 10),
		resv(db.StatusConfirmed, thisMonth, 1, 10),
		resv(db.StatusConfirmed, lastMonth, 1, 100),
		resv(db.StatusConfirmed, lastMonth, 1, 100),
	}

	got := Compute(nil, reservations, testNow)

	if got.ReservationsTrend != 50 {
		t.Errorf("ReservationsTrend = %v, want 50", got.ReservationsTrend)
	}
	if got.RevenueTrend != -85 {
		t.Errorf("RevenueTrend = %v, want -85", got.RevenueTrend)
	}
}

func TestComputeYearBoundary(t *testing.T) {
	january := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	december := time.Date(2023, time.December, 20, 0, 0, 0, 0, time.UTC)

	reservations := []*db.Reservation{
		resv(db.StatusConfirmed, january, 2, 200),
		resv(db.StatusConfirmed, december, 2, 100),
	}

	got := Compute(nil, reservations, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC))

	if got.MonthlyRevenue != 200 {
		t.Errorf("MonthlyRevenue = %v, want 200", got.MonthlyRevenue)
	}
	if got.RevenueTrend != 100 {
		t.Errorf("RevenueTrend = %v, want 100 (December counted as prior month)", got.RevenueTrend)
	}
}

func TestComputeOccupancyRate(t *testing.T) {
	properties := []*db.Property{prop(true)}
	reservations := []*db.Reservation{
		resv(db.StatusConfirmed, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 3, 300),
	}

	got := Compute(properties, reservations, testNow)

	// 3 occupied days over 1 property * 30 assumed days.
	if got.OccupancyRate != 10 {
		t.Errorf("OccupancyRate = %v, want 10", got.OccupancyRate)
	}
}

func TestComputeOccupancyPartialDayRoundsUp(t *testing.T) {
	properties := []*db.Property{prop(true)}
	checkIn := time.Date(2024, time.March, 1, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, time.March, 4, 11, 0, 0, 0, time.UTC) // 2d21h
	reservations := []*db.Reservation{
		{Status: db.StatusConfirmed, CheckIn: checkIn, CheckOut: checkOut, TotalPrice: 300},
	}

	got := Compute(properties, reservations, testNow)

	if got.OccupancyRate != 10 {
		t.Errorf("OccupancyRate = %v, want 10 (2d21h rounds up to 3 days)", got.OccupancyRate)
	}
}

func TestComputeOccupancyUncapped(t *testing.T) {
	properties := []*db.Property{prop(true)}
	reservations := []*db.Reservation{
		resv(db.StatusConfirmed, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 45, 100),
	}

	got := Compute(properties, reservations, testNow)

	if got.OccupancyRate != 150 {
		t.Errorf("OccupancyRate = %v, want 150 (rate is not capped)", got.OccupancyRate)
	}
}

func TestComputeOccupancyZeroActiveProperties(t *testing.T) {
	properties := []*db.Property{prop(false)}
	reservations := []*db.Reservation{
		resv(db.StatusConfirmed, testNow, 5, 100),
	}

	got := Compute(properties, reservations, testNow)

	if got.OccupancyRate != 0 {
		t.Errorf("OccupancyRate = %v, want 0 with no active properties", got.OccupancyRate)
	}
}

func TestComputeOnlyConfirmedCountTowardRevenue(t *testing.T) {
	thisMonth := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	reservations := []*db.Reservation{
		resv(db.StatusPending, thisMonth, 2, 100),
		resv(db.StatusPending, thisMonth, 2, 200),
		resv(db.StatusCancelled, thisMonth, 2, 300),
		resv(db.StatusVisit, thisMonth, 0, 0),
	}

	got := Compute(nil, reservations, testNow)

	if got.TotalRevenue != 0 || got.MonthlyRevenue != 0 {
		t.Errorf("revenue = (%v, %v), want (0, 0) with no confirmed reservations",
			got.TotalRevenue, got.MonthlyRevenue)
	}
	if got.RevenueTrend != 0 || got.ReservationsTrend != 0 {
		t.Errorf("trends = (%v, %v), want (0, 0)", got.RevenueTrend, got.ReservationsTrend)
	}
	if got.PendingReservations != 2 {
		t.Errorf("PendingReservations = %d, want 2", got.PendingReservations)
	}
	if got.TotalReservations != 4 {
		t.Errorf("TotalReservations = %d, want 4", got.TotalReservations)
	}
}

func TestComputeSubsetInvariants(t *testing.T) {
	properties := []*db.Property{prop(true), prop(false), prop(true)}
	reservations := []*db.Reservation{
		resv(db.StatusPending, testNow, 1, 50),
		resv(db.StatusConfirmed, testNow, 2, 120),
		resv(db.StatusCheckedOut, testNow.AddDate(0, -2, 0), 2, 80),
	}

	got := Compute(properties, reservations, testNow)

	if got.ActiveProperties > got.TotalProperties {
		t.Errorf("ActiveProperties %d exceeds TotalProperties %d",
			got.ActiveProperties, got.TotalProperties)
	}
	if got.PendingReservations > got.TotalReservations {
		t.Errorf("PendingReservations %d exceeds TotalReservations %d",
			got.PendingReservations, got.TotalReservations)
	}
	if got.TotalRevenue < got.MonthlyRevenue {
		t.Errorf("TotalRevenue %v below MonthlyRevenue %v",
			got.TotalRevenue, got.MonthlyRevenue)
	}
}

func TestComputeIdempotent(t *testing.T) {
	properties := []*db.Property{prop(true), prop(true)}
	reservations := []*db.Reservation{
		resv(db.StatusConfirmed, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), 4, 420),
		resv(db.StatusConfirmed, time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC), 3, 310),
		resv(db.StatusPending, time.Date(2024, time.March, 25, 0, 0, 0, 0, time.UTC), 2, 180),
	}

	first := Compute(properties, reservations, testNow)
	second := Compute(properties, reservations, testNow)

	if first != second {
		t.Errorf("repeated call diverged: %+v != %+v", first, second)
	}
}
