package entities

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// RepositoryPort defines persistence operations for tenant entities.
type RepositoryPort interface {
	ListHostels(ctx context.Context) ([]Hostel, error)
	GetHostel(ctx context.Context, id string) (*Hostel, error)
	CreateHostel(ctx context.Context, h Hostel) (*Hostel, error)
	UpdateHostel(ctx context.Context, h Hostel) (*Hostel, error)
	DeleteHostel(ctx context.Context, id string) error

	ListCorporateOffices(ctx context.Context) ([]CorporateOffice, error)
	CreateCorporateOffice(ctx context.Context, o CorporateOffice) (*CorporateOffice, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const hostelColumns = `id, name, address, contact_email, contact_phone, capacity, created_at`

const officeColumns = `id, name, address, contact_email, contact_phone, created_at`

func scanHostel(row pgx.Row) (*Hostel, error) {
	var h Hostel
	if err := row.Scan(&h.ID, &h.Name, &h.Address, &h.ContactEmail, &h.ContactPhone, &h.Capacity, &h.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func scanOffice(row pgx.Row) (*CorporateOffice, error) {
	var o CorporateOffice
	if err := row.Scan(&o.ID, &o.Name, &o.Address, &o.ContactEmail, &o.ContactPhone, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// ListHostels returns all hostels ordered by name.
func (r *Repository) ListHostels(ctx context.Context) ([]Hostel, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+hostelColumns+` FROM hostels ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Hostel
	for rows.Next() {
		h, err := scanHostel(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *h)
	}
	return result, rows.Err()
}

// GetHostel fetches a hostel by id.
func (r *Repository) GetHostel(ctx context.Context, id string) (*Hostel, error) {
	return scanHostel(r.pool.QueryRow(ctx, `SELECT `+hostelColumns+` FROM hostels WHERE id = $1`, id))
}

// CreateHostel inserts a new hostel.
func (r *Repository) CreateHostel(ctx context.Context, h Hostel) (*Hostel, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return scanHostel(r.pool.QueryRow(ctx,
		`INSERT INTO hostels (id, name, address, contact_email, contact_phone, capacity, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())
		 RETURNING `+hostelColumns,
		h.ID, h.Name, h.Address, h.ContactEmail, h.ContactPhone, h.Capacity))
}

// UpdateHostel updates an existing hostel.
func (r *Repository) UpdateHostel(ctx context.Context, h Hostel) (*Hostel, error) {
	return scanHostel(r.pool.QueryRow(ctx,
		`UPDATE hostels SET name = $2, address = $3, contact_email = $4, contact_phone = $5, capacity = $6
		 WHERE id = $1
		 RETURNING `+hostelColumns,
		h.ID, h.Name, h.Address, h.ContactEmail, h.ContactPhone, h.Capacity))
}

// DeleteHostel removes a hostel by id.
func (r *Repository) DeleteHostel(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM hostels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListCorporateOffices returns all corporate offices ordered by name.
func (r *Repository) ListCorporateOffices(ctx context.Context) ([]CorporateOffice, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+officeColumns+` FROM corporate_offices ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []CorporateOffice
	for rows.Next() {
		o, err := scanOffice(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	return result, rows.Err()
}

// CreateCorporateOffice inserts a new corporate office.
func (r *Repository) CreateCorporateOffice(ctx context.Context, o CorporateOffice) (*CorporateOffice, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return scanOffice(r.pool.QueryRow(ctx,
		`INSERT INTO corporate_offices (id, name, address, contact_email, contact_phone, created_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 RETURNING `+officeColumns,
		o.ID, o.Name, o.Address, o.ContactEmail, o.ContactPhone))
}

var _ RepositoryPort = (*Repository)(nil)
