package meals

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mealdesk/mealdesk/internal/platform/httpx"
	"github.com/mealdesk/mealdesk/internal/rbac"
	"github.com/mealdesk/mealdesk/internal/shared"
)

// Handler exposes meal record endpoints.
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

// MountRoutes registers meal record routes. Viewing meals is reachable by
// a union of roles: member managers, members viewing their own meals and
// report-wide viewers.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermManageMembers, shared.PermViewOwnMeals, shared.PermViewAllData))
		r.Get("/", h.listRecords)
		r.Get("/member/{memberId}", h.listByMember)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermManageMembers))
		r.Post("/", h.createRecord)
	})
}

type recordForm struct {
	MemberID string    `json:"memberId" validate:"required"`
	MealType string    `json:"mealType" validate:"required,oneof=breakfast lunch dinner"`
	Date     time.Time `json:"date" validate:"required"`
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.ListRecords(r.Context())
	if err != nil {
		h.logger.Error("list meal records", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, records)
}

func (h *Handler) listByMember(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.ListRecordsByMember(r.Context(), chi.URLParam(r, "memberId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, records)
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	var form recordForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	record, err := h.repo.CreateRecord(r.Context(), Record{
		MemberID: form.MemberID,
		MealType: form.MealType,
		Date:     form.Date,
	})
	if err != nil {
		h.logger.Error("create meal record", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, record)
}
