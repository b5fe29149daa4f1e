package feedback

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mealdesk/mealdesk/internal/platform/httpx"
	"github.com/mealdesk/mealdesk/internal/rbac"
	"github.com/mealdesk/mealdesk/internal/shared"
)

// Handler exposes feedback endpoints.
type Handler struct {
	logger    *slog.Logger
	repo      RepositoryPort
	rbac      rbac.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, repo RepositoryPort, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, repo: repo, rbac: rbac, validator: validator.New()}
}

// MountRoutes registers feedback routes. Any authenticated user may
// submit; listing needs Manage Feedback.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.createFeedback)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermManageFeedback))
		r.Get("/", h.listFeedback)
	})
}

type feedbackForm struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Category string `json:"category" validate:"required"`
	Comment  string `json:"comment"`
}

func (h *Handler) listFeedback(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListFeedback(r.Context())
	if err != nil {
		h.logger.Error("list feedback", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) createFeedback(w http.ResponseWriter, r *http.Request) {
	actor := shared.PrincipalFromContext(r.Context())
	if actor == nil {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}
	var form feedbackForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	created, err := h.repo.CreateFeedback(r.Context(), Feedback{
		UserID:     actor.UserID,
		EntityType: actor.Entity.Type,
		EntityID:   actor.Entity.ID,
		Rating:     form.Rating,
		Category:   form.Category,
		Comment:    form.Comment,
	})
	if err != nil {
		h.logger.Error("create feedback", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, created)
}
