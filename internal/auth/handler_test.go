package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealdesk/mealdesk/internal/shared"
	"github.com/mealdesk/mealdesk/internal/users"
	_ "github.com/mealdesk/mealdesk/testing"
)

// GetUser lets the service-layer user store double as the identity
// middleware's directory in handler tests.
func (m *mockUserStore) GetUser(ctx context.Context, id string) (*users.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func newAuthRouter(t *testing.T) (http.Handler, *mockUserStore) {
	t.Helper()
	svc, userStore, _, _, _ := newTestService(t)
	mw := Middleware{
		Logger: slog.Default(),
		Tokens: svc.tokens,
		Users:  userStore,
		Roles:  &mockRoleDirectory{roles: nil},
	}
	h := NewHandler(slog.Default(), svc, mw)
	r := chi.NewRouter()
	r.Route("/api/auth", h.MountRoutes)
	return r, userStore
}

func postJSON(router http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newAuthRouter(t)

	t.Run("hostel registration returns user and token", func(t *testing.T) {
		body := `{
			"name": "John Smith",
			"email": "john@sunrise.com",
			"password": "hostel123",
			"entityType": "Hostel",
			"entityName": "Sunrise Hostel",
			"entityData": {"address": "123 Main St", "capacity": 50}
		}`
		rec := postJSON(router, "/api/auth/register", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var session struct {
			User  users.User `json:"user"`
			Token string     `json:"token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
		assert.Equal(t, "john@sunrise.com", session.User.Email)
		assert.Equal(t, "role-hostel", session.User.RoleID)
		assert.NotEmpty(t, session.Token)
		assert.NotContains(t, rec.Body.String(), "passwordHash")
	})

	t.Run("duplicate registration rejected", func(t *testing.T) {
		body := `{"name":"John","email":"john@sunrise.com","password":"hostel123","entityType":"Hostel"}`
		rec := postJSON(router, "/api/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "already registered")
	})

	t.Run("short password rejected", func(t *testing.T) {
		body := `{"name":"X","email":"x@y.z","password":"short","entityType":"Hostel"}`
		rec := postJSON(router, "/api/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	router, userStore := newAuthRouter(t)

	hash, err := users.HashPassword("hostel123")
	require.NoError(t, err)
	userStore.byEmail["john@sunrise.com"] = &users.User{
		ID: "u1", Email: "john@sunrise.com", PasswordHash: hash,
	}

	t.Run("valid login", func(t *testing.T) {
		rec := postJSON(router, "/api/auth/login", `{"email":"john@sunrise.com","password":"hostel123"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"token"`)
	})

	t.Run("wrong password yields 401", func(t *testing.T) {
		rec := postJSON(router, "/api/auth/login", `{"email":"john@sunrise.com","password":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid credentials")
	})
}

func TestMeEndpoint(t *testing.T) {
	router, userStore := newAuthRouter(t)

	hash, err := users.HashPassword("hostel123")
	require.NoError(t, err)
	userStore.byEmail["john@sunrise.com"] = &users.User{
		ID: "u1", Email: "john@sunrise.com", Name: "John Smith", PasswordHash: hash,
	}

	login := postJSON(router, "/api/auth/login", `{"email":"john@sunrise.com","password":"hostel123"}`)
	require.Equal(t, http.StatusOK, login.Code)
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &session))

	t.Run("with token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+session.Token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "John Smith")
	})

	t.Run("without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
