package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mealdesk/mealdesk/internal/entities"
	"github.com/mealdesk/mealdesk/internal/rbac"
	"github.com/mealdesk/mealdesk/internal/shared"
	"github.com/mealdesk/mealdesk/internal/users"
)

// Default role names assigned at registration by entity type.
const (
	roleHostelOwner    = "Hostel Owner"
	roleCorporateAdmin = "Corporate Admin"
)

// UserStore is the user persistence surface registration and login need.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*users.User, error)
	CreateUser(ctx context.Context, user users.User) (*users.User, error)
}

// RoleStore resolves default roles by name.
type RoleStore interface {
	GetRoleByName(ctx context.Context, name string) (*rbac.Role, error)
}

// EntityStore creates the tenant entity during self-registration.
type EntityStore interface {
	CreateHostel(ctx context.Context, h entities.Hostel) (*entities.Hostel, error)
	CreateCorporateOffice(ctx context.Context, o entities.CorporateOffice) (*entities.CorporateOffice, error)
}

// WelcomeMailer queues the greeting mail after registration. A nil
// mailer disables the mail without failing the flow.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, to, name string) error
}

// Service wraps authentication business rules.
type Service struct {
	users    UserStore
	roles    RoleStore
	entities EntityStore
	tokens   *TokenService
	mailer   WelcomeMailer
}

// NewService constructs a new Service.
func NewService(userStore UserStore, roleStore RoleStore, entityStore EntityStore, tokens *TokenService, mailer WelcomeMailer) *Service {
	return &Service{users: userStore, roles: roleStore, entities: entityStore, tokens: tokens, mailer: mailer}
}

// EntityData carries the tenant details supplied at registration.
type EntityData struct {
	Name         string
	Address      string
	ContactPhone string
	Capacity     int
}

// RegisterInput is the self-registration request.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	EntityType shared.EntityType
	EntityName string
	EntityData *EntityData
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*users.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, "", shared.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Register creates the tenant entity when details are supplied, assigns
// the default role for the entity type and creates the account. Missing
// default roles are tolerated; the account simply starts roleless.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*users.User, string, error) {
	if _, err := s.users.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, "", fmt.Errorf("%w: email already registered", shared.ErrDuplicate)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, "", err
	}

	entityID, err := s.createEntity(ctx, input)
	if err != nil {
		return nil, "", err
	}

	roleID, err := s.defaultRoleID(ctx, input.EntityType)
	if err != nil {
		return nil, "", err
	}

	hash, err := users.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.CreateUser(ctx, users.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		RoleID:       roleID,
		EntityType:   input.EntityType,
		EntityID:     entityID,
	})
	if err != nil {
		return nil, "", err
	}

	if s.mailer != nil {
		// Registration already committed; the mail is best effort.
		_ = s.mailer.SendWelcome(ctx, user.Email, user.Name)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) createEntity(ctx context.Context, input RegisterInput) (string, error) {
	if input.EntityData == nil {
		return "", nil
	}
	name := input.EntityName
	if name == "" {
		name = input.EntityData.Name
	}
	switch input.EntityType {
	case shared.EntityHostel:
		hostel, err := s.entities.CreateHostel(ctx, entities.Hostel{
			Name:         name,
			Address:      input.EntityData.Address,
			ContactEmail: input.Email,
			ContactPhone: input.EntityData.ContactPhone,
			Capacity:     input.EntityData.Capacity,
		})
		if err != nil {
			return "", err
		}
		return hostel.ID, nil
	case shared.EntityCorporate:
		office, err := s.entities.CreateCorporateOffice(ctx, entities.CorporateOffice{
			Name:         name,
			Address:      input.EntityData.Address,
			ContactEmail: input.Email,
			ContactPhone: input.EntityData.ContactPhone,
		})
		if err != nil {
			return "", err
		}
		return office.ID, nil
	default:
		return "", nil
	}
}

func (s *Service) defaultRoleID(ctx context.Context, entityType shared.EntityType) (string, error) {
	var roleName string
	switch entityType {
	case shared.EntityHostel:
		roleName = roleHostelOwner
	case shared.EntityCorporate:
		roleName = roleCorporateAdmin
	default:
		return "", nil
	}
	role, err := s.roles.GetRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return role.ID, nil
}
