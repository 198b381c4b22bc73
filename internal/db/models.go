package db

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusCancelled  ReservationStatus = "cancelled"
	StatusCheckedIn  ReservationStatus = "checked_in"
	StatusCheckedOut ReservationStatus = "checked_out"
	StatusVisit      ReservationStatus = "visit"
)

// IsTerminal reports whether a reservation can no longer change status.
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCheckedOut
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled,
		StatusCheckedIn, StatusCheckedOut, StatusVisit:
		return true
	}
	return false
}

type DomainStatus string

const (
	DomainUnverified DomainStatus = "unverified"
	DomainVerified   DomainStatus = "verified"
	DomainFailed     DomainStatus = "failed"
)

type Tenant struct {
	ID           string       `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Email        string       `json:"email" db:"email"`
	Slug         string       `json:"slug" db:"slug"`
	CustomDomain string       `json:"custom_domain,omitempty" db:"custom_domain"`
	DomainStatus DomainStatus `json:"domain_status" db:"domain_status"`

	// Plan limits
	MaxProperties int `json:"max_properties" db:"max_properties"`

	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Property struct {
	ID          string `json:"id" db:"id"`
	TenantID    string `json:"-" db:"tenant_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	City        string `json:"city" db:"city"`
	Address     string `json:"address" db:"address"`

	PricePerNight float64 `json:"price_per_night" db:"price_per_night"`
	MaxGuests     int     `json:"max_guests" db:"max_guests"`
	Bedrooms      int     `json:"bedrooms" db:"bedrooms"`

	Amenities JSONB       `json:"amenities" db:"amenities"`
	Photos    StringSlice `json:"photos" db:"photos"`

	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Reservation struct {
	ID         string            `json:"id" db:"id"`
	TenantID   string            `json:"-" db:"tenant_id"`
	PropertyID string            `json:"property_id" db:"property_id"`
	GuestName  string            `json:"guest_name" db:"guest_name"`
	GuestPhone string            `json:"guest_phone,omitempty" db:"guest_phone"`
	Status     ReservationStatus `json:"status" db:"status"`

	CheckIn  time.Time `json:"check_in" db:"check_in"`
	CheckOut time.Time `json:"check_out" db:"check_out"`
	Guests   int       `json:"guests" db:"guests"`

	// Whole currency units, as kept by the booking flows.
	TotalPrice float64 `json:"total_price" db:"total_price"`

	Notes     string    `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Nights is the reservation length in whole days, rounded up.
func (r *Reservation) Nights() int {
	d := r.CheckOut.Sub(r.CheckIn)
	if d <= 0 {
		return 0
	}
	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}

type DomainCheckResult struct {
	Domain       string     `json:"domain"`
	Verified     bool       `json:"verified"`
	ResolvedTo   []string   `json:"resolved_to,omitempty"`
	Registrar    string     `json:"registrar,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	DaysToExpiry int        `json:"days_to_expiry,omitempty"`
	Error        string     `json:"error,omitempty"`
	CheckedAt    time.Time  `json:"checked_at"`
}

// Custom types for PostgreSQL arrays and JSONB
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}
	return json.Unmarshal(value.([]byte), s)
}

type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(map[string]interface{})
		return nil
	}
	return json.Unmarshal(value.([]byte), j)
}
