package members

import (
	"time"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// Member is a person fed by a tenant entity.
type Member struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone,omitempty"`
	EntityType   shared.EntityType `json:"entityType"`
	EntityID     string            `json:"entityId"`
	MealPlanType string            `json:"mealPlanType,omitempty"`
	IsActive     bool              `json:"isActive"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// EntityRef returns the member's owner tag.
func (m *Member) EntityRef() shared.EntityRef {
	return shared.EntityRef{Type: m.EntityType, ID: m.EntityID}
}
