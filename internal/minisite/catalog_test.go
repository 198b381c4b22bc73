package minisite

import (
	"testing"
	"time"

	"github.com/stayflow/stayflow-backend/internal/db"
)

func catalogFixture() []*db.Property {
	return []*db.Property{
		{ID: "a", Name: "Beach House", City: "Florianópolis", PricePerNight: 450, MaxGuests: 8, IsActive: true},
		{ID: "b", Name: "Studio", City: "São Paulo", PricePerNight: 180, MaxGuests: 2, IsActive: true},
		{ID: "c", Name: "Old Loft", City: "São Paulo", PricePerNight: 220, MaxGuests: 4, IsActive: false},
		{ID: "d", Name: "Cabin", City: "Gramado", PricePerNight: 320, MaxGuests: 5, IsActive: true},
	}
}

func ids(props []*db.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func TestFilterPropertiesExcludesInactive(t *testing.T) {
	got := FilterProperties(catalogFixture(), Filter{})
	if len(got) != 3 {
		t.Fatalf("got %v, want 3 active properties", ids(got))
	}
	for _, p := range got {
		if !p.IsActive {
			t.Errorf("inactive property %s leaked into catalog", p.ID)
		}
	}
}

func TestFilterPropertiesByCity(t *testing.T) {
	got := FilterProperties(catalogFixture(), Filter{City: "são paulo"})
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("city filter: got %v, want [b]", ids(got))
	}
}

func TestFilterPropertiesByPriceRange(t *testing.T) {
	got := FilterProperties(catalogFixture(), Filter{MinPrice: 200, MaxPrice: 400})
	if len(got) != 1 || got[0].ID != "d" {
		t.Errorf("price filter: got %v, want [d]", ids(got))
	}
}

func TestFilterPropertiesByGuests(t *testing.T) {
	got := FilterProperties(catalogFixture(), Filter{Guests: 6})
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("guests filter: got %v, want [a]", ids(got))
	}
}

func TestFilterPropertiesEmptyResult(t *testing.T) {
	got := FilterProperties(catalogFixture(), Filter{City: "Recife"})
	if len(got) != 0 {
		t.Errorf("got %v, want empty slice", ids(got))
	}
	if got == nil {
		t.Error("want non-nil empty slice for JSON rendering")
	}
}

func TestIsAvailable(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
	}
	reservations := []*db.Reservation{
		{Status: db.StatusConfirmed, CheckIn: day(10), CheckOut: day(15)},
		{Status: db.StatusCancelled, CheckIn: day(20), CheckOut: day(25)},
	}

	tests := []struct {
		name     string
		from, to time.Time
		want     bool
	}{
		{"before stay", day(1), day(5), true},
		{"overlaps start", day(8), day(12), false},
		{"inside stay", day(11), day(13), false},
		{"back to back checkout", day(15), day(18), true},
		{"cancelled ignored", day(20), day(25), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailable(reservations, tt.from, tt.to); got != tt.want {
				t.Errorf("IsAvailable(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
