package users

import (
	"time"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// User represents a user account.
type User struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	Name         string            `json:"name"`
	PasswordHash string            `json:"-"`
	RoleID       string            `json:"roleId,omitempty"`
	EntityType   shared.EntityType `json:"entityType"`
	EntityID     string            `json:"entityId,omitempty"`
	IsSuperAdmin bool              `json:"isSuperAdmin"`
	MemberID     string            `json:"memberId,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// EntityRef returns the user's tenant binding.
func (u *User) EntityRef() shared.EntityRef {
	return shared.EntityRef{Type: u.EntityType, ID: u.EntityID}
}
