package rbac

import (
	"log/slog"
	"net/http"

	"github.com/mealdesk/mealdesk/internal/platform/httpx"
	"github.com/mealdesk/mealdesk/internal/shared"
)

// Middleware wires per-route permission gates. It runs strictly after the
// identity middleware so the principal, including its resolved role, is
// already in the request context; the gate itself performs no lookups.
type Middleware struct {
	Logger *slog.Logger

	// Denials, when set, counts denied requests by reason.
	Denials func(reason string)
}

// RequireAny ensures the current principal holds at least one of the
// required permissions. An empty list only requires authentication. The
// gate short-circuits before the handler runs.
func (m Middleware) RequireAny(perms ...shared.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := shared.PrincipalFromContext(r.Context())
			if err := AuthorizeAny(principal, perms...); err != nil {
				reason := shared.UserSafeMessage(err)
				if m.Logger != nil {
					m.Logger.Warn("permission denied",
						slog.String("path", r.URL.Path),
						slog.String("reason", reason))
				}
				if m.Denials != nil {
					m.Denials(reason)
				}
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
