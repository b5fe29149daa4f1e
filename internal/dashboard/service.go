package dashboard

import (
	"context"
	"strconv"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mealdesk/mealdesk/internal/rbac"
	"github.com/mealdesk/mealdesk/internal/shared"
)

// Summary is the landing-page stat block, computed per entity scope.
type Summary struct {
	Members           int64  `json:"members"`
	MealsServedToday  int64  `json:"mealsServedToday"`
	PaymentsCompleted int64  `json:"paymentsCompleted"`
	Revenue           string `json:"revenue"`
	RevenueDisplay    string `json:"revenueDisplay"`
}

// RepositoryPort computes summaries straight from storage. The owner is
// nil for a global (super admin or unbound actor) summary.
type RepositoryPort interface {
	Summarize(ctx context.Context, owner *shared.EntityRef) (*Summary, error)
}

// Service serves cached dashboard summaries. Concurrent misses for the
// same key collapse into one storage query.
type Service struct {
	repo    RepositoryPort
	cache   *Cache
	group   singleflight.Group
	printer *message.Printer
}

// NewService constructs a Service.
func NewService(repo RepositoryPort, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache, printer: message.NewPrinter(language.English)}
}

// SummaryForActor returns the stat block for the actor's scope.
func (s *Service) SummaryForActor(ctx context.Context, actor *shared.Principal) (*Summary, error) {
	var owner *shared.EntityRef
	if ref, scoped := rbac.NarrowScope(actor); scoped {
		owner = &ref
	}
	return s.summary(ctx, owner)
}

// Warm pre-populates the cache for one scope; used by the background
// warmup task.
func (s *Service) Warm(ctx context.Context, owner *shared.EntityRef) error {
	_, err := s.summary(ctx, owner)
	return err
}

// Invalidate drops all cached summaries.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) summary(ctx context.Context, owner *shared.EntityRef) (*Summary, error) {
	key, err := s.cache.BuildKey(ctx, keyParts(owner)...)
	if err != nil {
		return nil, err
	}
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		var summary Summary
		err := s.cache.FetchJSON(ctx, key, &summary, func(ctx context.Context) (interface{}, error) {
			loaded, err := s.repo.Summarize(ctx, owner)
			if err != nil {
				return nil, err
			}
			loaded.RevenueDisplay = s.displayRevenue(loaded.Revenue)
			return loaded, nil
		})
		if err != nil {
			return nil, err
		}
		return &summary, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Summary), nil
}

func (s *Service) displayRevenue(raw string) string {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	return s.printer.Sprintf("%.2f", value)
}

func keyParts(owner *shared.EntityRef) []string {
	if owner == nil {
		return []string{"dashboard", "summary", "all"}
	}
	return []string{"dashboard", "summary", string(owner.Type), owner.ID}
}
