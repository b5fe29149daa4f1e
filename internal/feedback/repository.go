package feedback

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// RepositoryPort defines persistence operations for feedback.
type RepositoryPort interface {
	ListFeedback(ctx context.Context) ([]Feedback, error)
	CreateFeedback(ctx context.Context, f Feedback) (*Feedback, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const feedbackColumns = `id, user_id, entity_type, entity_id, rating, category, comment, created_at`

func scanFeedback(row pgx.Row) (*Feedback, error) {
	var f Feedback
	var entityType, entityID, comment *string
	if err := row.Scan(&f.ID, &f.UserID, &entityType, &entityID, &f.Rating, &f.Category, &comment, &f.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if entityType != nil {
		f.EntityType = shared.EntityType(*entityType)
	}
	if entityID != nil {
		f.EntityID = *entityID
	}
	if comment != nil {
		f.Comment = *comment
	}
	return &f, nil
}

// ListFeedback returns all feedback, newest first.
func (r *Repository) ListFeedback(ctx context.Context) ([]Feedback, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+feedbackColumns+` FROM feedback ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *f)
	}
	return result, rows.Err()
}

// CreateFeedback inserts a new feedback record.
func (r *Repository) CreateFeedback(ctx context.Context, f Feedback) (*Feedback, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	var entityType, entityID, comment *string
	if f.EntityType != "" {
		s := string(f.EntityType)
		entityType = &s
	}
	if f.EntityID != "" {
		entityID = &f.EntityID
	}
	if f.Comment != "" {
		comment = &f.Comment
	}
	return scanFeedback(r.pool.QueryRow(ctx,
		`INSERT INTO feedback (id, user_id, entity_type, entity_id, rating, category, comment, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		 RETURNING `+feedbackColumns,
		f.ID, f.UserID, entityType, entityID, f.Rating, f.Category, comment))
}

var _ RepositoryPort = (*Repository)(nil)
