package rbac

import (
	"time"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// Role represents a named permission grouping.
type Role struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Permissions []shared.Permission `json:"permissions"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// HasPermission reports whether the role grants perm.
func (r *Role) HasPermission(perm shared.Permission) bool {
	if r == nil {
		return false
	}
	for _, p := range r.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
