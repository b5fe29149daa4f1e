package meals

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// RepositoryPort defines persistence operations for meal records.
type RepositoryPort interface {
	ListRecords(ctx context.Context) ([]Record, error)
	ListRecordsByMember(ctx context.Context, memberID string) ([]Record, error)
	CreateRecord(ctx context.Context, rec Record) (*Record, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const recordColumns = `id, member_id, meal_type, date, created_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	if err := row.Scan(&rec.ID, &rec.MemberID, &rec.MealType, &rec.Date, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func collectRecords(rows pgx.Rows) ([]Record, error) {
	defer rows.Close()
	var result []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	return result, rows.Err()
}

// ListRecords returns all meal records ordered by date descending.
func (r *Repository) ListRecords(ctx context.Context) ([]Record, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+recordColumns+` FROM meal_records ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

// ListRecordsByMember returns the meal records for one member.
func (r *Repository) ListRecordsByMember(ctx context.Context, memberID string) ([]Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recordColumns+` FROM meal_records WHERE member_id = $1 ORDER BY date DESC`, memberID)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

// CreateRecord inserts a new meal record.
func (r *Repository) CreateRecord(ctx context.Context, rec Record) (*Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	return scanRecord(r.pool.QueryRow(ctx,
		`INSERT INTO meal_records (id, member_id, meal_type, date, created_at)
		 VALUES ($1, $2, $3, $4, now())
		 RETURNING `+recordColumns,
		rec.ID, rec.MemberID, rec.MealType, rec.Date))
}

var _ RepositoryPort = (*Repository)(nil)
