package meals

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealdesk/mealdesk/internal/rbac"
	"github.com/mealdesk/mealdesk/internal/shared"
	_ "github.com/mealdesk/mealdesk/testing"
)

type mockRepository struct {
	records []Record
}

func (m *mockRepository) ListRecords(ctx context.Context) ([]Record, error) {
	return m.records, nil
}

func (m *mockRepository) ListRecordsByMember(ctx context.Context, memberID string) ([]Record, error) {
	result := []Record{}
	for _, rec := range m.records {
		if rec.MemberID == memberID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (m *mockRepository) CreateRecord(ctx context.Context, rec Record) (*Record, error) {
	rec.ID = "rec-new"
	m.records = append(m.records, rec)
	copied := rec
	return &copied, nil
}

func newMealsRouter(repo RepositoryPort) http.Handler {
	h := NewHandler(slog.Default(), repo, rbac.Middleware{Logger: slog.Default()})
	r := chi.NewRouter()
	r.Route("/api/meals", h.MountRoutes)
	return r
}

func actorWith(perms ...shared.Permission) *shared.Principal {
	return &shared.Principal{UserID: "u1", RoleID: "r1", Permissions: perms}
}

func do(router http.Handler, method, target, body string, actor *shared.Principal) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req = req.WithContext(shared.ContextWithPrincipal(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMealRoutesGating(t *testing.T) {
	repo := &mockRepository{records: []Record{
		{ID: "r1", MemberID: "m1", MealType: "breakfast", Date: time.Now()},
		{ID: "r2", MemberID: "m2", MealType: "lunch", Date: time.Now()},
	}}
	router := newMealsRouter(repo)

	t.Run("any of the view permissions opens the list", func(t *testing.T) {
		for _, perm := range []shared.Permission{shared.PermManageMembers, shared.PermViewOwnMeals, shared.PermViewAllData} {
			rec := do(router, http.MethodGet, "/api/meals", "", actorWith(perm))
			assert.Equal(t, http.StatusOK, rec.Code, string(perm))
		}
	})

	t.Run("unrelated permission denied", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/meals", "", actorWith(shared.PermManagePayments))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("member filter", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/meals/member/m1", "", actorWith(shared.PermViewOwnMeals))
		require.Equal(t, http.StatusOK, rec.Code)
		var list []Record
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, "m1", list[0].MemberID)
	})

	t.Run("recording needs member management", func(t *testing.T) {
		body := `{"memberId":"m1","mealType":"dinner","date":"2026-03-01T18:00:00Z"}`
		rec := do(router, http.MethodPost, "/api/meals", body, actorWith(shared.PermViewOwnMeals))
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = do(router, http.MethodPost, "/api/meals", body, actorWith(shared.PermManageMembers))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown meal type rejected", func(t *testing.T) {
		body := `{"memberId":"m1","mealType":"brunch","date":"2026-03-01T11:00:00Z"}`
		rec := do(router, http.MethodPost, "/api/meals", body, actorWith(shared.PermManageMembers))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
