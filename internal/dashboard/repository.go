package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// Repository computes summaries with aggregate queries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Summarize counts members, today's meals and completed payments for one
// scope, or globally when owner is nil.
func (r *Repository) Summarize(ctx context.Context, owner *shared.EntityRef) (*Summary, error) {
	var summary Summary
	if owner == nil {
		const query = `
			SELECT
				(SELECT count(*) FROM members WHERE is_active),
				(SELECT count(*) FROM meal_records WHERE date::date = current_date),
				(SELECT count(*) FROM payments WHERE status = 'completed'),
				(SELECT coalesce(sum(amount), 0)::text FROM payments WHERE status = 'completed')`
		if err := r.pool.QueryRow(ctx, query).Scan(
			&summary.Members, &summary.MealsServedToday, &summary.PaymentsCompleted, &summary.Revenue); err != nil {
			return nil, err
		}
		return &summary, nil
	}
	const query = `
		SELECT
			(SELECT count(*) FROM members WHERE is_active AND entity_type = $1 AND entity_id = $2),
			(SELECT count(*) FROM meal_records mr
				JOIN members m ON m.id = mr.member_id
				WHERE mr.date::date = current_date AND m.entity_type = $1 AND m.entity_id = $2),
			(SELECT count(*) FROM payments WHERE status = 'completed' AND entity_type = $1 AND entity_id = $2),
			(SELECT coalesce(sum(amount), 0)::text FROM payments WHERE status = 'completed' AND entity_type = $1 AND entity_id = $2)`
	if err := r.pool.QueryRow(ctx, query, owner.Type, owner.ID).Scan(
		&summary.Members, &summary.MealsServedToday, &summary.PaymentsCompleted, &summary.Revenue); err != nil {
		return nil, err
	}
	return &summary, nil
}

var _ RepositoryPort = (*Repository)(nil)
