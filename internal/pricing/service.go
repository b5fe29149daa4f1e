package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mealdesk/mealdesk/internal/rbac"
	"github.com/mealdesk/mealdesk/internal/shared"
)

// Service enforces entity scoping and the edit window on meal prices.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService constructs a Service using wall-clock time.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceWithClock constructs a Service with an injected clock.
func NewServiceWithClock(repo RepositoryPort, now func() time.Time) *Service {
	return &Service{repo: repo, now: now}
}

// UpdateResult is the mutation response: the stored record plus the
// fresh remaining edit time so callers can render a countdown.
type UpdateResult struct {
	*MealPrice
	RemainingEditTime int64 `json:"remainingEditTime"`
}

// PricesForActor returns the actor's own current price sheet for
// entity-bound actors, or every sheet for unbound ones. A bound actor
// with no sheet yet gets an empty result, not an error.
func (s *Service) PricesForActor(ctx context.Context, actor *shared.Principal) ([]MealPrice, error) {
	if owner, scoped := rbac.NarrowScope(actor); scoped {
		price, err := s.repo.GetMealPriceByEntity(ctx, owner)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return []MealPrice{*price}, nil
	}
	return s.repo.ListMealPrices(ctx)
}

// CreateMealPrice stamps the actor's entity on the new sheet.
func (s *Service) CreateMealPrice(ctx context.Context, actor *shared.Principal, p MealPrice) (*MealPrice, error) {
	if actor != nil && actor.Entity.Bound() {
		p.EntityType = actor.Entity.Type
		p.EntityID = actor.Entity.ID
	}
	return s.repo.CreateMealPrice(ctx, p)
}

// UpdateMealPrice enforces ownership, then the edit window, then writes.
// The window is measured from the later of creation and last update;
// writing resets it, so the result reports the full window again.
func (s *Service) UpdateMealPrice(ctx context.Context, actor *shared.Principal, p MealPrice) (*UpdateResult, error) {
	existing, err := s.repo.GetMealPrice(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if err := rbac.CheckOwnership(actor, existing.EntityRef()); err != nil {
		return nil, err
	}

	now := s.now()
	if !Editable(now, existing.LastChange()) {
		return nil, fmt.Errorf("%w: cannot edit meal prices more than %v after last update",
			shared.ErrEditWindowExpired, EditWindow)
	}

	updated, err := s.repo.UpdateMealPrice(ctx, p, now)
	if err != nil {
		return nil, err
	}
	return &UpdateResult{
		MealPrice:         updated,
		RemainingEditTime: Remaining(now, updated.LastChange()).Milliseconds(),
	}, nil
}
