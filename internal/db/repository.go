package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var ErrNotFound = fmt.Errorf("not found")

type Repository struct {
	db *sqlx.DB
}

func NewConnection(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Ping() error {
	return r.db.Ping()
}

// Tenant operations

func (r *Repository) CreateTenant(t *Tenant, passwordHash string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO tenants (
            id, name, email, slug, custom_domain, domain_status,
            max_properties, is_active, created_at, updated_at
        ) VALUES (
            :id, :name, :email, :slug, :custom_domain, :domain_status,
            :max_properties, :is_active, :created_at, :updated_at
        )`

	if _, err := tx.NamedExec(query, t); err != nil {
		return err
	}

	passwordQuery := `
        INSERT INTO tenant_passwords (tenant_id, password_hash)
        VALUES ($1, $2)`
	if _, err := tx.Exec(passwordQuery, t.ID, passwordHash); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) GetTenant(id string) (*Tenant, error) {
	var t Tenant
	query := `SELECT * FROM tenants WHERE id = $1`
	err := r.db.Get(&t, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) GetTenantBySlug(slug string) (*Tenant, error) {
	var t Tenant
	query := `SELECT * FROM tenants WHERE slug = $1 AND is_active = true`
	err := r.db.Get(&t, query, slug)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) GetTenantByEmail(email string) (*Tenant, string, error) {
	var row struct {
		Tenant
		PasswordHash string `db:"password_hash"`
	}
	query := `
        SELECT t.*, tp.password_hash
        FROM tenants t
        JOIN tenant_passwords tp ON t.id = tp.tenant_id
        WHERE t.email = $1`
	err := r.db.Get(&row, query, email)
	if err == sql.ErrNoRows {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return &row.Tenant, row.PasswordHash, nil
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM tenants WHERE email = $1)`
	err := r.db.Get(&exists, query, email)
	return exists, err
}

func (r *Repository) SlugExists(slug string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM tenants WHERE slug = $1)`
	err := r.db.Get(&exists, query, slug)
	return exists, err
}

func (r *Repository) UpdateTenantDomain(tenantID, customDomain string, status DomainStatus) error {
	query := `
        UPDATE tenants SET
            custom_domain = $1,
            domain_status = $2,
            updated_at = $3
        WHERE id = $4`
	_, err := r.db.Exec(query, customDomain, status, time.Now(), tenantID)
	return err
}

func (r *Repository) GetTenantsWithCustomDomain() ([]*Tenant, error) {
	tenants := []*Tenant{}
	query := `
        SELECT * FROM tenants
        WHERE is_active = true AND custom_domain <> ''`
	err := r.db.Select(&tenants, query)
	return tenants, err
}

func (r *Repository) GetActiveTenantIDs() ([]string, error) {
	ids := []string{}
	query := `SELECT id FROM tenants WHERE is_active = true`
	err := r.db.Select(&ids, query)
	return ids, err
}

// Property operations

func (r *Repository) CreateProperty(p *Property) error {
	query := `
        INSERT INTO properties (
            id, tenant_id, name, description, city, address,
            price_per_night, max_guests, bedrooms, amenities, photos,
            is_active, created_at, updated_at
        ) VALUES (
            :id, :tenant_id, :name, :description, :city, :address,
            :price_per_night, :max_guests, :bedrooms, :amenities, :photos,
            :is_active, :created_at, :updated_at
        )`

	_, err := r.db.NamedExec(query, p)
	return err
}

func (r *Repository) GetProperty(id, tenantID string) (*Property, error) {
	var p Property
	query := `SELECT * FROM properties WHERE id = $1 AND tenant_id = $2`
	err := r.db.Get(&p, query, id, tenantID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetPropertiesByTenant(tenantID string) ([]*Property, error) {
	properties := []*Property{}
	query := `
        SELECT * FROM properties
        WHERE tenant_id = $1
        ORDER BY created_at DESC`
	err := r.db.Select(&properties, query, tenantID)
	return properties, err
}

func (r *Repository) GetActivePropertiesByTenant(tenantID string) ([]*Property, error) {
	properties := []*Property{}
	query := `
        SELECT * FROM properties
        WHERE tenant_id = $1 AND is_active = true
        ORDER BY name`
	err := r.db.Select(&properties, query, tenantID)
	return properties, err
}

func (r *Repository) UpdateProperty(p *Property) error {
	query := `
        UPDATE properties SET
            name = :name,
            description = :description,
            city = :city,
            address = :address,
            price_per_night = :price_per_night,
            max_guests = :max_guests,
            bedrooms = :bedrooms,
            amenities = :amenities,
            photos = :photos,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND tenant_id = :tenant_id`

	_, err := r.db.NamedExec(query, p)
	return err
}

func (r *Repository) DeleteProperty(id, tenantID string) error {
	query := `DELETE FROM properties WHERE id = $1 AND tenant_id = $2`
	_, err := r.db.Exec(query, id, tenantID)
	return err
}

func (r *Repository) CountPropertiesByTenant(tenantID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM properties WHERE tenant_id = $1`
	err := r.db.Get(&count, query, tenantID)
	return count, err
}

// Reservation operations

func (r *Repository) CreateReservation(res *Reservation) error {
	query := `
        INSERT INTO reservations (
            id, tenant_id, property_id, guest_name, guest_phone, status,
            check_in, check_out, guests, total_price, notes,
            created_at, updated_at
        ) VALUES (
            :id, :tenant_id, :property_id, :guest_name, :guest_phone, :status,
            :check_in, :check_out, :guests, :total_price, :notes,
            :created_at, :updated_at
        )`

	_, err := r.db.NamedExec(query, res)
	return err
}

func (r *Repository) GetReservation(id, tenantID string) (*Reservation, error) {
	var res Reservation
	query := `SELECT * FROM reservations WHERE id = $1 AND tenant_id = $2`
	err := r.db.Get(&res, query, id, tenantID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type ReservationFilter struct {
	Status     ReservationStatus
	PropertyID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

func (r *Repository) GetReservationsByTenant(tenantID string, f ReservationFilter) ([]*Reservation, error) {
	reservations := []*Reservation{}

	query := `SELECT * FROM reservations WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.PropertyID != "" {
		args = append(args, f.PropertyID)
		query += fmt.Sprintf(" AND property_id = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND check_in >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND check_in < $%d", len(args))
	}

	query += " ORDER BY check_in DESC"

	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	err := r.db.Select(&reservations, query, args...)
	return reservations, err
}

func (r *Repository) GetAllReservationsByTenant(tenantID string) ([]*Reservation, error) {
	return r.GetReservationsByTenant(tenantID, ReservationFilter{})
}

// GetConfirmedReservationsForProperty returns confirmed stays overlapping
// the [from, to) window, for availability checks.
func (r *Repository) GetConfirmedReservationsForProperty(propertyID string, from, to time.Time) ([]*Reservation, error) {
	reservations := []*Reservation{}
	query := `
        SELECT * FROM reservations
        WHERE property_id = $1
        AND status IN ('confirmed', 'checked_in')
        AND check_in < $3 AND check_out > $2
        ORDER BY check_in`
	err := r.db.Select(&reservations, query, propertyID, from, to)
	return reservations, err
}

func (r *Repository) UpdateReservation(res *Reservation) error {
	query := `
        UPDATE reservations SET
            guest_name = :guest_name,
            guest_phone = :guest_phone,
            status = :status,
            check_in = :check_in,
            check_out = :check_out,
            guests = :guests,
            total_price = :total_price,
            notes = :notes,
            updated_at = :updated_at
        WHERE id = :id AND tenant_id = :tenant_id`

	_, err := r.db.NamedExec(query, res)
	return err
}

func (r *Repository) DeleteReservation(id, tenantID string) error {
	query := `DELETE FROM reservations WHERE id = $1 AND tenant_id = $2`
	_, err := r.db.Exec(query, id, tenantID)
	return err
}

func (r *Repository) BulkInsertReservations(reservations []*Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO reservations (
            id, tenant_id, property_id, guest_name, guest_phone, status,
            check_in, check_out, guests, total_price, notes,
            created_at, updated_at
        ) VALUES (
            :id, :tenant_id, :property_id, :guest_name, :guest_phone, :status,
            :check_in, :check_out, :guests, :total_price, :notes,
            :created_at, :updated_at
        )`

	for _, res := range reservations {
		if _, err := tx.NamedExec(query, res); err != nil {
			return fmt.Errorf("failed to insert reservation %s: %w", res.ID, err)
		}
	}

	return tx.Commit()
}
