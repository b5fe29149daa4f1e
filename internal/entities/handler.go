package entities

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mealdesk/mealdesk/internal/platform/httpx"
	"github.com/mealdesk/mealdesk/internal/rbac"
	"github.com/mealdesk/mealdesk/internal/shared"
)

// Handler exposes hostel and corporate office endpoints.
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

// MountHostelRoutes registers hostel routes.
func (h *Handler) MountHostelRoutes(r chi.Router) {
	r.Use(h.rbac.RequireAny(shared.PermManageHostels))
	r.Get("/", h.listHostels)
	r.Post("/", h.createHostel)
	r.Put("/{id}", h.updateHostel)
	r.Delete("/{id}", h.deleteHostel)
}

// MountCorporateRoutes registers corporate office routes. Gated on the
// same permission as hostels.
func (h *Handler) MountCorporateRoutes(r chi.Router) {
	r.Use(h.rbac.RequireAny(shared.PermManageHostels))
	r.Get("/", h.listOffices)
	r.Post("/", h.createOffice)
}

type hostelForm struct {
	Name         string `json:"name" validate:"required"`
	Address      string `json:"address" validate:"required"`
	ContactEmail string `json:"contactEmail" validate:"required,email"`
	ContactPhone string `json:"contactPhone" validate:"required"`
	Capacity     int    `json:"capacity" validate:"required,min=1"`
}

type officeForm struct {
	Name         string `json:"name" validate:"required"`
	Address      string `json:"address" validate:"required"`
	ContactEmail string `json:"contactEmail" validate:"required,email"`
	ContactPhone string `json:"contactPhone" validate:"required"`
}

func (h *Handler) listHostels(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListHostels(r.Context())
	if err != nil {
		h.logger.Error("list hostels", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) createHostel(w http.ResponseWriter, r *http.Request) {
	var form hostelForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	hostel, err := h.service.CreateHostel(r.Context(), Hostel{
		Name:         form.Name,
		Address:      form.Address,
		ContactEmail: form.ContactEmail,
		ContactPhone: form.ContactPhone,
		Capacity:     form.Capacity,
	})
	if err != nil {
		h.logger.Error("create hostel", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, hostel)
}

func (h *Handler) updateHostel(w http.ResponseWriter, r *http.Request) {
	var form hostelForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	hostel, err := h.service.UpdateHostel(r.Context(), Hostel{
		ID:           chi.URLParam(r, "id"),
		Name:         form.Name,
		Address:      form.Address,
		ContactEmail: form.ContactEmail,
		ContactPhone: form.ContactPhone,
		Capacity:     form.Capacity,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, hostel)
}

func (h *Handler) deleteHostel(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHostel(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) listOffices(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListCorporateOffices(r.Context())
	if err != nil {
		h.logger.Error("list corporate offices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) createOffice(w http.ResponseWriter, r *http.Request) {
	var form officeForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	office, err := h.service.CreateCorporateOffice(r.Context(), CorporateOffice{
		Name:         form.Name,
		Address:      form.Address,
		ContactEmail: form.ContactEmail,
		ContactPhone: form.ContactPhone,
	})
	if err != nil {
		h.logger.Error("create corporate office", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, office)
}
