package rbac

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// RepositoryPort defines persistence operations for roles.
type RepositoryPort interface {
	ListRoles(ctx context.Context) ([]Role, error)
	GetRole(ctx context.Context, id string) (*Role, error)
	GetRoleByName(ctx context.Context, name string) (*Role, error)
	CreateRole(ctx context.Context, role Role) (*Role, error)
	UpdateRole(ctx context.Context, role Role) (*Role, error)
	DeleteRole(ctx context.Context, id string) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const roleColumns = `id, name, description, permissions, created_at`

func scanRole(row pgx.Row) (*Role, error) {
	var role Role
	var perms []string
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &perms, &role.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	role.Permissions = make([]shared.Permission, len(perms))
	for i, p := range perms {
		role.Permissions[i] = shared.Permission(p)
	}
	return &role, nil
}

func permissionStrings(perms []shared.Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

// ListRoles returns all roles ordered by name.
func (r *Repository) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, rows.Err()
}

// GetRole fetches a role by id.
func (r *Repository) GetRole(ctx context.Context, id string) (*Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id))
}

// GetRoleByName fetches a role by its unique name.
func (r *Repository) GetRoleByName(ctx context.Context, name string) (*Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE name = $1`, name))
}

// CreateRole inserts a new role.
func (r *Repository) CreateRole(ctx context.Context, role Role) (*Role, error) {
	if role.ID == "" {
		role.ID = uuid.NewString()
	}
	return scanRole(r.pool.QueryRow(ctx,
		`INSERT INTO roles (id, name, description, permissions, created_at)
		 VALUES ($1, $2, $3, $4, now())
		 RETURNING `+roleColumns,
		role.ID, role.Name, role.Description, permissionStrings(role.Permissions)))
}

// UpdateRole updates an existing role.
func (r *Repository) UpdateRole(ctx context.Context, role Role) (*Role, error) {
	return scanRole(r.pool.QueryRow(ctx,
		`UPDATE roles SET name = $2, description = $3, permissions = $4
		 WHERE id = $1
		 RETURNING `+roleColumns,
		role.ID, role.Name, role.Description, permissionStrings(role.Permissions)))
}

// DeleteRole removes a role by id. Returns ErrNotFound if nothing was deleted.
func (r *Repository) DeleteRole(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
