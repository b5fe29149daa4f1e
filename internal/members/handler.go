package members

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mealdesk/mealdesk/internal/platform/httpx"
	"github.com/mealdesk/mealdesk/internal/rbac"
	"github.com/mealdesk/mealdesk/internal/shared"
)

// Handler exposes member endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	rbac      rbac.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac, validator: validator.New()}
}

// MountRoutes registers member routes, all gated on Manage Members.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.rbac.RequireAny(shared.PermManageMembers))
	r.Get("/", h.listMembers)
	r.Post("/", h.createMember)
	r.Put("/{id}", h.updateMember)
	r.Delete("/{id}", h.deleteMember)
}

type memberForm struct {
	Name         string            `json:"name" validate:"required"`
	Email        string            `json:"email" validate:"required,email"`
	Phone        string            `json:"phone"`
	EntityType   shared.EntityType `json:"entityType"`
	EntityID     string            `json:"entityId"`
	MealPlanType string            `json:"mealPlanType"`
	IsActive     *bool             `json:"isActive"`
}

func (f memberForm) active() bool {
	if f.IsActive == nil {
		return true
	}
	return *f.IsActive
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListMembers(r.Context(), shared.PrincipalFromContext(r.Context()))
	if err != nil {
		h.logger.Error("list members", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) createMember(w http.ResponseWriter, r *http.Request) {
	var form memberForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	member, err := h.service.CreateMember(r.Context(), shared.PrincipalFromContext(r.Context()), Member{
		Name:         form.Name,
		Email:        form.Email,
		Phone:        form.Phone,
		EntityType:   form.EntityType,
		EntityID:     form.EntityID,
		MealPlanType: form.MealPlanType,
		IsActive:     form.active(),
	})
	if err != nil {
		h.logger.Error("create member", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) updateMember(w http.ResponseWriter, r *http.Request) {
	var form memberForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	member, err := h.service.UpdateMember(r.Context(), shared.PrincipalFromContext(r.Context()), Member{
		ID:           chi.URLParam(r, "id"),
		Name:         form.Name,
		Email:        form.Email,
		Phone:        form.Phone,
		MealPlanType: form.MealPlanType,
		IsActive:     form.active(),
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) deleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMember(r.Context(), shared.PrincipalFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
