package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mealdesk/mealdesk/internal/platform/httpx"
	"github.com/mealdesk/mealdesk/internal/shared"
)

// Handler exposes the dashboard summary endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers dashboard routes. Any authenticated user gets a
// summary narrowed to their own scope.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.getSummary)
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	actor := shared.PrincipalFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}
	summary, err := h.service.SummaryForActor(r.Context(), actor)
	if err != nil {
		h.logger.Error("dashboard summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}
