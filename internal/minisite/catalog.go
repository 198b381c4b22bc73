package minisite

import (
	"strings"
	"time"

	"github.com/stayflow/stayflow-backend/internal/db"
)

// Filter narrows a tenant's public catalog. Zero values mean "no
// constraint" for every field.
type Filter struct {
	City     string
	MinPrice float64
	MaxPrice float64
	Guests   int
}

// FilterProperties returns the active properties matching the filter.
// Matching is done in memory over the already-loaded catalog, the same
// way the public listing pages always have.
func FilterProperties(properties []*db.Property, f Filter) []*db.Property {
	out := []*db.Property{}
	for _, p := range properties {
		if !p.IsActive {
			continue
		}
		if f.City != "" && !strings.EqualFold(p.City, f.City) {
			continue
		}
		if f.MinPrice > 0 && p.PricePerNight < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && p.PricePerNight > f.MaxPrice {
			continue
		}
		if f.Guests > 0 && p.MaxGuests < f.Guests {
			continue
		}
		out = append(out, p)
	}
	return out
}

// IsAvailable reports whether the [from, to) window is free of
// overlapping confirmed or checked-in stays.
func IsAvailable(reservations []*db.Reservation, from, to time.Time) bool {
	for _, r := range reservations {
		if r.Status != db.StatusConfirmed && r.Status != db.StatusCheckedIn {
			continue
		}
		if r.CheckIn.Before(to) && r.CheckOut.After(from) {
			return false
		}
	}
	return true
}
