package members

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealdesk/mealdesk/internal/shared"
)

type mockRepository struct {
	members map[string]*Member
	nextID  int
}

func newMockRepository() *mockRepository {
	return &mockRepository{members: make(map[string]*Member), nextID: 1}
}

func (m *mockRepository) ListMembers(ctx context.Context) ([]Member, error) {
	result := make([]Member, 0, len(m.members))
	for _, member := range m.members {
		result = append(result, *member)
	}
	return result, nil
}

func (m *mockRepository) ListMembersByEntity(ctx context.Context, owner shared.EntityRef) ([]Member, error) {
	result := []Member{}
	for _, member := range m.members {
		if member.EntityType == owner.Type && member.EntityID == owner.ID {
			result = append(result, *member)
		}
	}
	return result, nil
}

func (m *mockRepository) GetMember(ctx context.Context, id string) (*Member, error) {
	member, ok := m.members[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *member
	return &copied, nil
}

func (m *mockRepository) CreateMember(ctx context.Context, member Member) (*Member, error) {
	member.ID = "m" + string(rune('0'+m.nextID))
	m.nextID++
	m.members[member.ID] = &member
	copied := member
	return &copied, nil
}

func (m *mockRepository) UpdateMember(ctx context.Context, member Member) (*Member, error) {
	if _, ok := m.members[member.ID]; !ok {
		return nil, shared.ErrNotFound
	}
	m.members[member.ID] = &member
	copied := member
	return &copied, nil
}

func (m *mockRepository) DeleteMember(ctx context.Context, id string) error {
	if _, ok := m.members[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.members, id)
	return nil
}

func hostelOwner(id string) *shared.Principal {
	return &shared.Principal{
		UserID:      "owner-" + id,
		RoleID:      "r1",
		Entity:      shared.EntityRef{Type: shared.EntityHostel, ID: id},
		Permissions: []shared.Permission{shared.PermManageMembers},
	}
}

func seedMembers(repo *mockRepository) {
	repo.members["m-h1"] = &Member{ID: "m-h1", Name: "Alice Cooper", EntityType: shared.EntityHostel, EntityID: "h1", IsActive: true}
	repo.members["m-h2"] = &Member{ID: "m-h2", Name: "Charlie Lee", EntityType: shared.EntityHostel, EntityID: "h2", IsActive: true}
	repo.members["m-c1"] = &Member{ID: "m-c1", Name: "Ethan Hunt", EntityType: shared.EntityCorporate, EntityID: "c1", IsActive: true}
}

func TestListMembers(t *testing.T) {
	repo := newMockRepository()
	seedMembers(repo)
	svc := NewService(repo)
	ctx := context.Background()

	t.Run("scoped actor sees only own entity", func(t *testing.T) {
		list, err := svc.ListMembers(ctx, hostelOwner("h1"))
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Alice Cooper", list[0].Name)
	})

	t.Run("foreign rows are filtered, not erred", func(t *testing.T) {
		list, err := svc.ListMembers(ctx, hostelOwner("h9"))
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("super admin sees all entities", func(t *testing.T) {
		list, err := svc.ListMembers(ctx, &shared.Principal{IsSuperAdmin: true})
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})
}

func TestCreateMemberStampsEntity(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	created, err := svc.CreateMember(context.Background(), hostelOwner("h1"), Member{
		Name:       "Bob Martin",
		EntityType: shared.EntityCorporate,
		EntityID:   "spoofed",
		IsActive:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, shared.EntityHostel, created.EntityType)
	assert.Equal(t, "h1", created.EntityID)
}

func TestUpdateMemberOwnership(t *testing.T) {
	repo := newMockRepository()
	seedMembers(repo)
	svc := NewService(repo)
	ctx := context.Background()

	t.Run("own entity allowed", func(t *testing.T) {
		updated, err := svc.UpdateMember(ctx, hostelOwner("h1"), Member{
			ID: "m-h1", Name: "Alice C.", EntityType: shared.EntityHostel, EntityID: "h1", IsActive: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice C.", updated.Name)
	})

	t.Run("foreign entity denied explicitly", func(t *testing.T) {
		_, err := svc.UpdateMember(ctx, hostelOwner("h1"), Member{ID: "m-h2", Name: "Hijack"})
		assert.ErrorIs(t, err, shared.ErrEntityMismatch)
		assert.Equal(t, "Charlie Lee", repo.members["m-h2"].Name)
	})

	t.Run("missing record reported before ownership", func(t *testing.T) {
		_, err := svc.UpdateMember(ctx, hostelOwner("h1"), Member{ID: "ghost"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDeleteMemberOwnership(t *testing.T) {
	repo := newMockRepository()
	seedMembers(repo)
	svc := NewService(repo)
	ctx := context.Background()

	t.Run("foreign entity denied", func(t *testing.T) {
		err := svc.DeleteMember(ctx, hostelOwner("h1"), "m-c1")
		assert.ErrorIs(t, err, shared.ErrEntityMismatch)
	})

	t.Run("super admin deletes anywhere", func(t *testing.T) {
		err := svc.DeleteMember(ctx, &shared.Principal{IsSuperAdmin: true}, "m-c1")
		require.NoError(t, err)
	})
}
