package payments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// RepositoryPort defines persistence operations for payments.
type RepositoryPort interface {
	ListPayments(ctx context.Context) ([]Payment, error)
	ListPaymentsByEntity(ctx context.Context, owner shared.EntityRef) ([]Payment, error)
	CreatePayment(ctx context.Context, p Payment) (*Payment, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const paymentColumns = `id, entity_type, entity_id, amount, status, stripe_payment_id, created_at`

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	var stripeID *string
	if err := row.Scan(&p.ID, &p.EntityType, &p.EntityID, &p.Amount, &p.Status, &stripeID, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if stripeID != nil {
		p.StripePaymentID = *stripeID
	}
	return &p, nil
}

func collectPayments(rows pgx.Rows) ([]Payment, error) {
	defer rows.Close()
	var result []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

// ListPayments returns all payments, newest first.
func (r *Repository) ListPayments(ctx context.Context) ([]Payment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

// ListPaymentsByEntity returns the payments owned by one entity.
func (r *Repository) ListPaymentsByEntity(ctx context.Context, owner shared.EntityRef) ([]Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE entity_type = $1 AND entity_id = $2 ORDER BY created_at DESC`,
		owner.Type, owner.ID)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

// CreatePayment inserts a new payment.
func (r *Repository) CreatePayment(ctx context.Context, p Payment) (*Payment, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	var stripeID *string
	if p.StripePaymentID != "" {
		stripeID = &p.StripePaymentID
	}
	return scanPayment(r.pool.QueryRow(ctx,
		`INSERT INTO payments (id, entity_type, entity_id, amount, status, stripe_payment_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())
		 RETURNING `+paymentColumns,
		p.ID, p.EntityType, p.EntityID, p.Amount, p.Status, stripeID))
}

var _ RepositoryPort = (*Repository)(nil)
