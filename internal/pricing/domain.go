package pricing

import (
	"time"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// MealPrice is the per-entity price sheet for the three daily meals.
// Prices are carried as decimal strings and round-trip Postgres numeric
// columns without loss.
type MealPrice struct {
	ID             string            `json:"id"`
	EntityType     shared.EntityType `json:"entityType"`
	EntityID       string            `json:"entityId"`
	BreakfastPrice string            `json:"breakfastPrice"`
	LunchPrice     string            `json:"lunchPrice"`
	DinnerPrice    string            `json:"dinnerPrice"`
	EffectiveDate  time.Time         `json:"effectiveDate"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      *time.Time        `json:"updatedAt,omitempty"`
}

// EntityRef returns the record's owner tag.
func (p *MealPrice) EntityRef() shared.EntityRef {
	return shared.EntityRef{Type: p.EntityType, ID: p.EntityID}
}

// LastChange is the timestamp the edit window is measured from.
func (p *MealPrice) LastChange() time.Time {
	return lastChange(p.CreatedAt, p.UpdatedAt)
}
