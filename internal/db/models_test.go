package db

import (
	"testing"
	"time"
)

func TestReservationNights(t *testing.T) {
	base := time.Date(2024, time.June, 1, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkOut time.Time
		want     int
	}{
		{"exact three days", base.AddDate(0, 0, 3), 3},
		{"partial day rounds up", base.Add(50 * time.Hour), 3},
		{"same instant", base, 0},
		{"checkout before checkin", base.Add(-24 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Reservation{CheckIn: base, CheckOut: tt.checkOut}
			if got := r.Nights(); got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReservationStatus(t *testing.T) {
	if !StatusCancelled.IsTerminal() || !StatusCheckedOut.IsTerminal() {
		t.Error("cancelled and checked_out must be terminal")
	}
	if StatusPending.IsTerminal() || StatusConfirmed.IsTerminal() {
		t.Error("pending and confirmed must not be terminal")
	}

	for _, s := range []ReservationStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCheckedIn, StatusCheckedOut, StatusVisit} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if ReservationStatus("booked").Valid() {
		t.Error("unknown status should be invalid")
	}
}
