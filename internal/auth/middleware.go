package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mealdesk/mealdesk/internal/platform/httpx"
	"github.com/mealdesk/mealdesk/internal/rbac"
	"github.com/mealdesk/mealdesk/internal/shared"
	"github.com/mealdesk/mealdesk/internal/users"
)

// UserDirectory is the storage surface the identity resolver depends on.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*users.User, error)
}

// RoleDirectory resolves the actor's role alongside the user, once per
// request.
type RoleDirectory interface {
	GetRole(ctx context.Context, id string) (*rbac.Role, error)
}

// Middleware wires the credential and identity guards in front of
// handlers.
type Middleware struct {
	Logger *slog.Logger
	Tokens *TokenService
	Users  UserDirectory
	Roles  RoleDirectory
}

// RequireToken verifies the bearer credential and stores the verified
// user id in the request context. Absent and malformed values are
// indistinguishable from invalid tokens.
func (m Middleware) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			httpx.RespondError(w, shared.ErrUnauthenticated)
			return
		}
		userID, err := m.Tokens.Verify(raw)
		if err != nil {
			httpx.RespondError(w, shared.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithUserID(r.Context(), userID)))
	})
}

// ResolvePrincipal loads the user behind the verified id and, when
// present, its role, and attaches the derived principal to the request
// context. A token for a now-deleted user fails exactly like a bad
// token. Storage failures deny; a guard that cannot decide never allows.
func (m Middleware) ResolvePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := shared.UserIDFromContext(r.Context())
		if !ok {
			httpx.RespondError(w, shared.ErrUnauthenticated)
			return
		}
		user, err := m.Users.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				httpx.RespondError(w, shared.ErrUnauthenticated)
				return
			}
			if m.Logger != nil {
				m.Logger.Error("resolve principal", slog.Any("error", err))
			}
			httpx.RespondError(w, shared.ErrCheckFailed)
			return
		}

		principal := &shared.Principal{
			UserID:       user.ID,
			Email:        user.Email,
			Name:         user.Name,
			RoleID:       user.RoleID,
			Entity:       user.EntityRef(),
			IsSuperAdmin: user.IsSuperAdmin,
		}
		if user.IsSuperAdmin {
			principal.Permissions = []shared.Permission{shared.PermAll}
		} else if user.RoleID != "" {
			role, err := m.Roles.GetRole(r.Context(), user.RoleID)
			switch {
			case err == nil:
				principal.Permissions = role.Permissions
			case errors.Is(err, shared.ErrNotFound):
				principal.RoleMissing = true
			default:
				if m.Logger != nil {
					m.Logger.Error("resolve role", slog.Any("error", err))
				}
				httpx.RespondError(w, shared.ErrCheckFailed)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), principal)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}
