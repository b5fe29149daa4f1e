package members

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// RepositoryPort defines persistence operations for members.
type RepositoryPort interface {
	ListMembers(ctx context.Context) ([]Member, error)
	ListMembersByEntity(ctx context.Context, owner shared.EntityRef) ([]Member, error)
	GetMember(ctx context.Context, id string) (*Member, error)
	CreateMember(ctx context.Context, m Member) (*Member, error)
	UpdateMember(ctx context.Context, m Member) (*Member, error)
	DeleteMember(ctx context.Context, id string) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const memberColumns = `id, name, email, phone, entity_type, entity_id, meal_plan_type, is_active, created_at`

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	var phone, mealPlan *string
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &phone, &m.EntityType, &m.EntityID, &mealPlan, &m.IsActive, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if phone != nil {
		m.Phone = *phone
	}
	if mealPlan != nil {
		m.MealPlanType = *mealPlan
	}
	return &m, nil
}

func collectMembers(rows pgx.Rows) ([]Member, error) {
	defer rows.Close()
	var result []Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	return result, rows.Err()
}

// ListMembers returns all members.
func (r *Repository) ListMembers(ctx context.Context) ([]Member, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+memberColumns+` FROM members ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collectMembers(rows)
}

// ListMembersByEntity returns the members owned by one entity.
func (r *Repository) ListMembersByEntity(ctx context.Context, owner shared.EntityRef) ([]Member, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+memberColumns+` FROM members WHERE entity_type = $1 AND entity_id = $2 ORDER BY name`,
		owner.Type, owner.ID)
	if err != nil {
		return nil, err
	}
	return collectMembers(rows)
}

// GetMember fetches a member by id.
func (r *Repository) GetMember(ctx context.Context, id string) (*Member, error) {
	return scanMember(r.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id))
}

// CreateMember inserts a new member.
func (r *Repository) CreateMember(ctx context.Context, m Member) (*Member, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return scanMember(r.pool.QueryRow(ctx,
		`INSERT INTO members (id, name, email, phone, entity_type, entity_id, meal_plan_type, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		 RETURNING `+memberColumns,
		m.ID, m.Name, m.Email, nullable(m.Phone), m.EntityType, m.EntityID, nullable(m.MealPlanType), m.IsActive))
}

// UpdateMember updates an existing member.
func (r *Repository) UpdateMember(ctx context.Context, m Member) (*Member, error) {
	return scanMember(r.pool.QueryRow(ctx,
		`UPDATE members
		 SET name = $2, email = $3, phone = $4, meal_plan_type = $5, is_active = $6
		 WHERE id = $1
		 RETURNING `+memberColumns,
		m.ID, m.Name, m.Email, nullable(m.Phone), nullable(m.MealPlanType), m.IsActive))
}

// DeleteMember removes a member by id.
func (r *Repository) DeleteMember(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ RepositoryPort = (*Repository)(nil)
