package payments

import (
	"time"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// Payment records one payment made by a tenant entity. Amounts are
// decimal strings; gateway integration is out of scope so the gateway
// reference is an opaque passthrough.
type Payment struct {
	ID              string            `json:"id"`
	EntityType      shared.EntityType `json:"entityType"`
	EntityID        string            `json:"entityId"`
	Amount          string            `json:"amount"`
	Status          string            `json:"status"`
	StripePaymentID string            `json:"stripePaymentId,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// EntityRef returns the payment's owner tag.
func (p *Payment) EntityRef() shared.EntityRef {
	return shared.EntityRef{Type: p.EntityType, ID: p.EntityID}
}
