package feedback

import (
	"time"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// Feedback is a rating left by a user, optionally tagged with the
// user's entity.
type Feedback struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	EntityType shared.EntityType `json:"entityType,omitempty"`
	EntityID   string            `json:"entityId,omitempty"`
	Rating     int               `json:"rating"`
	Category   string            `json:"category"`
	Comment    string            `json:"comment,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}
