package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// RepositoryPort defines persistence operations for meal prices.
type RepositoryPort interface {
	ListMealPrices(ctx context.Context) ([]MealPrice, error)
	GetMealPrice(ctx context.Context, id string) (*MealPrice, error)
	// GetMealPriceByEntity returns the latest price row for one entity.
	// Historical rows are kept; only the newest is surfaced for editing.
	GetMealPriceByEntity(ctx context.Context, owner shared.EntityRef) (*MealPrice, error)
	CreateMealPrice(ctx context.Context, p MealPrice) (*MealPrice, error)
	UpdateMealPrice(ctx context.Context, p MealPrice, updatedAt time.Time) (*MealPrice, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const priceColumns = `id, entity_type, entity_id, breakfast_price, lunch_price, dinner_price, effective_date, created_at, updated_at`

func scanPrice(row pgx.Row) (*MealPrice, error) {
	var p MealPrice
	if err := row.Scan(&p.ID, &p.EntityType, &p.EntityID,
		&p.BreakfastPrice, &p.LunchPrice, &p.DinnerPrice,
		&p.EffectiveDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListMealPrices returns all price rows, newest first.
func (r *Repository) ListMealPrices(ctx context.Context) ([]MealPrice, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+priceColumns+` FROM meal_prices ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []MealPrice
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

// GetMealPrice fetches a price row by id.
func (r *Repository) GetMealPrice(ctx context.Context, id string) (*MealPrice, error) {
	return scanPrice(r.pool.QueryRow(ctx, `SELECT `+priceColumns+` FROM meal_prices WHERE id = $1`, id))
}

// GetMealPriceByEntity fetches the newest price row for one entity.
func (r *Repository) GetMealPriceByEntity(ctx context.Context, owner shared.EntityRef) (*MealPrice, error) {
	return scanPrice(r.pool.QueryRow(ctx,
		`SELECT `+priceColumns+` FROM meal_prices
		 WHERE entity_type = $1 AND entity_id = $2
		 ORDER BY created_at DESC LIMIT 1`,
		owner.Type, owner.ID))
}

// CreateMealPrice inserts a new price row.
func (r *Repository) CreateMealPrice(ctx context.Context, p MealPrice) (*MealPrice, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return scanPrice(r.pool.QueryRow(ctx,
		`INSERT INTO meal_prices (id, entity_type, entity_id, breakfast_price, lunch_price, dinner_price, effective_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now(), NULL)
		 RETURNING `+priceColumns,
		p.ID, p.EntityType, p.EntityID, p.BreakfastPrice, p.LunchPrice, p.DinnerPrice, p.EffectiveDate))
}

// UpdateMealPrice updates the prices and stamps updated_at, resetting the
// edit window.
func (r *Repository) UpdateMealPrice(ctx context.Context, p MealPrice, updatedAt time.Time) (*MealPrice, error) {
	return scanPrice(r.pool.QueryRow(ctx,
		`UPDATE meal_prices
		 SET breakfast_price = $2, lunch_price = $3, dinner_price = $4, effective_date = $5, updated_at = $6
		 WHERE id = $1
		 RETURNING `+priceColumns,
		p.ID, p.BreakfastPrice, p.LunchPrice, p.DinnerPrice, p.EffectiveDate, updatedAt))
}

var _ RepositoryPort = (*Repository)(nil)
