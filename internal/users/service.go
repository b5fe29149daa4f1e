package users

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// bcryptCost matches the cost used when the accounts were first seeded.
const bcryptCost = 10

// UpdateInput carries the mutable user fields. Nil pointers leave the
// stored value untouched.
type UpdateInput struct {
	Email      *string
	Name       *string
	Password   *string
	RoleID     *string
	EntityType *shared.EntityType
	EntityID   *string
}

// Service handles user management rules.
type Service struct {
	repo RepositoryPort
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// GetUser fetches a user by id.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

// UpdateUser applies a patch to the target user. Super-admin accounts may
// only be touched by another super admin, regardless of the actor's
// permission grants; the target is loaded first so the shield runs before
// any write.
func (s *Service) UpdateUser(ctx context.Context, actor *shared.Principal, id string, patch UpdateInput) (*User, error) {
	target, err := s.guardTarget(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if patch.Email != nil {
		target.Email = *patch.Email
	}
	if patch.Name != nil {
		target.Name = *patch.Name
	}
	if patch.RoleID != nil {
		target.RoleID = *patch.RoleID
	}
	if patch.EntityType != nil {
		target.EntityType = *patch.EntityType
	}
	if patch.EntityID != nil {
		target.EntityID = *patch.EntityID
	}
	if patch.Password != nil {
		hash, err := HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = hash
	}
	return s.repo.UpdateUser(ctx, *target)
}

// DeleteUser removes the target user, honouring the super-admin shield.
func (s *Service) DeleteUser(ctx context.Context, actor *shared.Principal, id string) error {
	if _, err := s.guardTarget(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.DeleteUser(ctx, id)
}

func (s *Service) guardTarget(ctx context.Context, actor *shared.Principal, id string) (*User, error) {
	target, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if target.IsSuperAdmin && (actor == nil || !actor.IsSuperAdmin) {
		return nil, shared.ErrSuperAdminProtected
	}
	return target, nil
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("users: hash password: %w", err)
	}
	return string(hash), nil
}
