package members

import (
	"context"

	"github.com/mealdesk/mealdesk/internal/rbac"
	"github.com/mealdesk/mealdesk/internal/shared"
)

// Service applies entity scoping on top of member persistence.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListMembers narrows the result set to the actor's entity for scoped
// actors; super admins and unbound actors see everything.
func (s *Service) ListMembers(ctx context.Context, actor *shared.Principal) ([]Member, error) {
	if owner, scoped := rbac.NarrowScope(actor); scoped {
		return s.repo.ListMembersByEntity(ctx, owner)
	}
	return s.repo.ListMembers(ctx)
}

// CreateMember stamps the actor's entity on the new record so scoped
// actors cannot create members for foreign tenants.
func (s *Service) CreateMember(ctx context.Context, actor *shared.Principal, m Member) (*Member, error) {
	if actor != nil && actor.Entity.Bound() {
		m.EntityType = actor.Entity.Type
		m.EntityID = actor.Entity.ID
	}
	return s.repo.CreateMember(ctx, m)
}

// UpdateMember loads the stored record first and enforces ownership
// before writing.
func (s *Service) UpdateMember(ctx context.Context, actor *shared.Principal, m Member) (*Member, error) {
	existing, err := s.repo.GetMember(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	if err := rbac.CheckOwnership(actor, existing.EntityRef()); err != nil {
		return nil, err
	}
	return s.repo.UpdateMember(ctx, m)
}

// DeleteMember enforces ownership before removal.
func (s *Service) DeleteMember(ctx context.Context, actor *shared.Principal, id string) error {
	existing, err := s.repo.GetMember(ctx, id)
	if err != nil {
		return err
	}
	if err := rbac.CheckOwnership(actor, existing.EntityRef()); err != nil {
		return err
	}
	return s.repo.DeleteMember(ctx, id)
}
