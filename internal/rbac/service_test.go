package rbac

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealdesk/mealdesk/internal/shared"
)

type mockRoleRepository struct {
	roles map[string]*Role

	createError error
}

func newMockRoleRepository() *mockRoleRepository {
	return &mockRoleRepository{roles: make(map[string]*Role)}
}

func (m *mockRoleRepository) ListRoles(ctx context.Context) ([]Role, error) {
	result := make([]Role, 0, len(m.roles))
	for _, r := range m.roles {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRoleRepository) GetRole(ctx context.Context, id string) (*Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *mockRoleRepository) GetRoleByName(ctx context.Context, name string) (*Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			copied := *r
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockRoleRepository) CreateRole(ctx context.Context, role Role) (*Role, error) {
	if m.createError != nil {
		return nil, m.createError
	}
	role.ID = uuid.NewString()
	m.roles[role.ID] = &role
	copied := role
	return &copied, nil
}

func (m *mockRoleRepository) UpdateRole(ctx context.Context, role Role) (*Role, error) {
	if _, ok := m.roles[role.ID]; !ok {
		return nil, shared.ErrNotFound
	}
	m.roles[role.ID] = &role
	copied := role
	return &copied, nil
}

func (m *mockRoleRepository) DeleteRole(ctx context.Context, id string) error {
	if _, ok := m.roles[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.roles, id)
	return nil
}

func TestCreateRole(t *testing.T) {
	svc := NewService(newMockRoleRepository())
	ctx := context.Background()

	t.Run("valid permissions accepted", func(t *testing.T) {
		role, err := svc.CreateRole(ctx, "Hostel Owner", "Hostel management access",
			[]shared.Permission{shared.PermManageMembers, shared.PermViewReports, shared.PermManagePayments})
		require.NoError(t, err)
		assert.NotEmpty(t, role.ID)
		assert.True(t, role.HasPermission(shared.PermManageMembers))
		assert.False(t, role.HasPermission(shared.PermManageUsers))
	})

	t.Run("unknown permission rejected", func(t *testing.T) {
		_, err := svc.CreateRole(ctx, "Custom", "",
			[]shared.Permission{shared.PermViewReports, "Launch Rockets"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Launch Rockets")
	})

	t.Run("wildcard is not grantable through roles", func(t *testing.T) {
		_, err := svc.CreateRole(ctx, "God Mode", "", []shared.Permission{shared.PermAll})
		assert.Error(t, err)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := svc.CreateRole(ctx, "   ", "", nil)
		assert.Error(t, err)
	})
}

func TestUpdateRole(t *testing.T) {
	repo := newMockRoleRepository()
	svc := NewService(repo)
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, "Corporate Admin", "", []shared.Permission{shared.PermManageMembers})
	require.NoError(t, err)

	t.Run("replaces permission set", func(t *testing.T) {
		updated, err := svc.UpdateRole(ctx, role.ID, "Corporate Admin", "office access",
			[]shared.Permission{shared.PermManageMembers, shared.PermViewReports})
		require.NoError(t, err)
		assert.Len(t, updated.Permissions, 2)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.UpdateRole(ctx, "missing", "X", "", nil)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("invalid permission rejected before write", func(t *testing.T) {
		_, err := svc.UpdateRole(ctx, role.ID, "Corporate Admin", "", []shared.Permission{"Nope"})
		require.Error(t, err)
		stored, _ := repo.GetRole(ctx, role.ID)
		assert.Len(t, stored.Permissions, 2)
	})
}
