package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// RepositoryPort defines persistence operations for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, user User) (*User, error)
	UpdateUser(ctx context.Context, user User) (*User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, email, password_hash, name, role_id, entity_type, entity_id, is_super_admin, member_id, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var user User
	var roleID, entityID, memberID *string
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&roleID, &user.EntityType, &entityID, &user.IsSuperAdmin, &memberID, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if roleID != nil {
		user.RoleID = *roleID
	}
	if entityID != nil {
		user.EntityID = *entityID
	}
	if memberID != nil {
		user.MemberID = *memberID
	}
	return &user, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ListUsers returns all users ordered by creation time.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

// GetUser fetches a user by id.
func (r *Repository) GetUser(ctx context.Context, id string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetUserByEmail fetches a user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// CreateUser inserts a new user.
func (r *Repository) CreateUser(ctx context.Context, user User) (*User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	created, err := scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, name, role_id, entity_type, entity_id, is_super_admin, member_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		 RETURNING `+userColumns,
		user.ID, user.Email, user.PasswordHash, user.Name,
		nullable(user.RoleID), user.EntityType, nullable(user.EntityID),
		user.IsSuperAdmin, nullable(user.MemberID)))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, shared.ErrDuplicate
		}
		return nil, err
	}
	return created, nil
}

// UpdateUser updates an existing user.
func (r *Repository) UpdateUser(ctx context.Context, user User) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE users
		 SET email = $2, password_hash = $3, name = $4, role_id = $5,
		     entity_type = $6, entity_id = $7, member_id = $8
		 WHERE id = $1
		 RETURNING `+userColumns,
		user.ID, user.Email, user.PasswordHash, user.Name,
		nullable(user.RoleID), user.EntityType, nullable(user.EntityID),
		nullable(user.MemberID)))
}

// DeleteUser removes a user by id. Returns ErrNotFound if nothing was deleted.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
