package dashboard

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealdesk/mealdesk/internal/shared"
	_ "github.com/mealdesk/mealdesk/testing"
)

type mockSummaryRepository struct {
	calls     int
	summaries map[string]*Summary
}

func newMockSummaryRepository() *mockSummaryRepository {
	return &mockSummaryRepository{summaries: make(map[string]*Summary)}
}

func (m *mockSummaryRepository) Summarize(ctx context.Context, owner *shared.EntityRef) (*Summary, error) {
	m.calls++
	key := "all"
	if owner != nil {
		key = owner.ID
	}
	s, ok := m.summaries[key]
	if !ok {
		return &Summary{}, nil
	}
	copied := *s
	return &copied, nil
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, 5*time.Minute)
}

func TestSummaryForActorScoping(t *testing.T) {
	repo := newMockSummaryRepository()
	repo.summaries["all"] = &Summary{Members: 6, MealsServedToday: 10, PaymentsCompleted: 3, Revenue: "8500.00"}
	repo.summaries["h1"] = &Summary{Members: 2, MealsServedToday: 5, PaymentsCompleted: 1, Revenue: "1500.00"}

	svc := NewService(repo, newTestCache(t))
	ctx := context.Background()

	t.Run("bound actor gets own scope", func(t *testing.T) {
		actor := &shared.Principal{
			UserID: "u1",
			Entity: shared.EntityRef{Type: shared.EntityHostel, ID: "h1"},
		}
		summary, err := svc.SummaryForActor(ctx, actor)
		require.NoError(t, err)
		assert.Equal(t, int64(2), summary.Members)
		assert.Equal(t, "1,500.00", summary.RevenueDisplay)
	})

	t.Run("super admin gets the global block", func(t *testing.T) {
		summary, err := svc.SummaryForActor(ctx, &shared.Principal{IsSuperAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, int64(6), summary.Members)
		assert.Equal(t, "8,500.00", summary.RevenueDisplay)
	})
}

func TestSummaryCaching(t *testing.T) {
	repo := newMockSummaryRepository()
	repo.summaries["all"] = &Summary{Members: 6, Revenue: "0"}

	svc := NewService(repo, newTestCache(t))
	ctx := context.Background()
	admin := &shared.Principal{IsSuperAdmin: true}

	_, err := svc.SummaryForActor(ctx, admin)
	require.NoError(t, err)
	_, err = svc.SummaryForActor(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	// Invalidation bumps the version, forcing a fresh load.
	require.NoError(t, svc.Invalidate(ctx))
	_, err = svc.SummaryForActor(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestSummaryWithoutRedis(t *testing.T) {
	repo := newMockSummaryRepository()
	repo.summaries["all"] = &Summary{Members: 6, Revenue: "12.5"}

	svc := NewService(repo, NewCache(nil, time.Minute))
	ctx := context.Background()
	admin := &shared.Principal{IsSuperAdmin: true}

	summary, err := svc.SummaryForActor(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(6), summary.Members)
	assert.Equal(t, "12.50", summary.RevenueDisplay)

	// Without a cache every read hits storage.
	_, err = svc.SummaryForActor(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}
