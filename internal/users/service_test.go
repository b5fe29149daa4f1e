package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mealdesk/mealdesk/internal/shared"
	_ "github.com/mealdesk/mealdesk/testing"
)

type mockRepository struct {
	users map[string]*User
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[string]*User)}
}

func (m *mockRepository) ListUsers(ctx context.Context) ([]User, error) {
	result := make([]User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockRepository) GetUser(ctx context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockRepository) CreateUser(ctx context.Context, user User) (*User, error) {
	m.users[user.ID] = &user
	copied := user
	return &copied, nil
}

func (m *mockRepository) UpdateUser(ctx context.Context, user User) (*User, error) {
	if _, ok := m.users[user.ID]; !ok {
		return nil, shared.ErrNotFound
	}
	m.users[user.ID] = &user
	copied := user
	return &copied, nil
}

func (m *mockRepository) DeleteUser(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func seedUsers(repo *mockRepository) {
	repo.users["root"] = &User{ID: "root", Email: "admin@mealdesk.local", IsSuperAdmin: true}
	repo.users["u1"] = &User{ID: "u1", Email: "john@sunrise.com", Name: "John Smith", RoleID: "r1"}
}

func manageUsersActor() *shared.Principal {
	return &shared.Principal{
		UserID:      "u9",
		RoleID:      "r-admin",
		Permissions: []shared.Permission{shared.PermManageUsers},
	}
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("patch applies only supplied fields", func(t *testing.T) {
		repo := newMockRepository()
		seedUsers(repo)
		svc := NewService(repo)

		name := "Johnny Smith"
		updated, err := svc.UpdateUser(ctx, manageUsersActor(), "u1", UpdateInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Johnny Smith", updated.Name)
		assert.Equal(t, "john@sunrise.com", updated.Email)
		assert.Equal(t, "r1", updated.RoleID)
	})

	t.Run("password patch stores a hash", func(t *testing.T) {
		repo := newMockRepository()
		seedUsers(repo)
		svc := NewService(repo)

		password := "newpassword1"
		updated, err := svc.UpdateUser(ctx, manageUsersActor(), "u1", UpdateInput{Password: &password})
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(password)))
	})

	t.Run("super admin target shielded even with Manage Users", func(t *testing.T) {
		repo := newMockRepository()
		seedUsers(repo)
		svc := NewService(repo)

		name := "Hijacked"
		_, err := svc.UpdateUser(ctx, manageUsersActor(), "root", UpdateInput{Name: &name})
		assert.ErrorIs(t, err, shared.ErrSuperAdminProtected)
		assert.Equal(t, "admin@mealdesk.local", repo.users["root"].Email)
	})

	t.Run("super admin may modify super admin", func(t *testing.T) {
		repo := newMockRepository()
		seedUsers(repo)
		svc := NewService(repo)

		actor := &shared.Principal{UserID: "root", IsSuperAdmin: true}
		name := "Renamed Admin"
		updated, err := svc.UpdateUser(ctx, actor, "root", UpdateInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Renamed Admin", updated.Name)
	})

	t.Run("unknown target", func(t *testing.T) {
		svc := NewService(newMockRepository())
		_, err := svc.UpdateUser(ctx, manageUsersActor(), "ghost", UpdateInput{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("regular target deleted", func(t *testing.T) {
		repo := newMockRepository()
		seedUsers(repo)
		svc := NewService(repo)

		require.NoError(t, svc.DeleteUser(ctx, manageUsersActor(), "u1"))
		_, err := repo.GetUser(ctx, "u1")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("super admin target shielded", func(t *testing.T) {
		repo := newMockRepository()
		seedUsers(repo)
		svc := NewService(repo)

		err := svc.DeleteUser(ctx, manageUsersActor(), "root")
		assert.ErrorIs(t, err, shared.ErrSuperAdminProtected)
		_, getErr := repo.GetUser(ctx, "root")
		assert.NoError(t, getErr)
	})
}
