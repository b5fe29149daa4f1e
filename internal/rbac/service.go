package rbac

import (
	"context"
	"fmt"
	"strings"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// Service orchestrates role management.
type Service struct {
	repo RepositoryPort
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListRoles returns all roles.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.repo.ListRoles(ctx)
}

// GetRole fetches a role by id.
func (s *Service) GetRole(ctx context.Context, id string) (*Role, error) {
	return s.repo.GetRole(ctx, id)
}

// GetRoleByName fetches a role by its unique name.
func (s *Service) GetRoleByName(ctx context.Context, name string) (*Role, error) {
	return s.repo.GetRoleByName(ctx, name)
}

// CreateRole validates and inserts a new role. Permission strings are
// checked against the closed vocabulary so resolver and route
// declarations cannot drift apart.
func (s *Service) CreateRole(ctx context.Context, name, description string, perms []shared.Permission) (*Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("rbac: role name required")
	}
	if err := validatePermissions(perms); err != nil {
		return nil, err
	}
	return s.repo.CreateRole(ctx, Role{
		Name:        name,
		Description: strings.TrimSpace(description),
		Permissions: perms,
	})
}

// UpdateRole validates and updates an existing role.
func (s *Service) UpdateRole(ctx context.Context, id, name, description string, perms []shared.Permission) (*Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("rbac: role name required")
	}
	if err := validatePermissions(perms); err != nil {
		return nil, err
	}
	return s.repo.UpdateRole(ctx, Role{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(description),
		Permissions: perms,
	})
}

// DeleteRole removes a role by id.
func (s *Service) DeleteRole(ctx context.Context, id string) error {
	return s.repo.DeleteRole(ctx, id)
}

func validatePermissions(perms []shared.Permission) error {
	for _, p := range perms {
		if !p.Valid() {
			return fmt.Errorf("rbac: unknown permission %q", p)
		}
	}
	return nil
}
