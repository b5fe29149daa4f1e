package payments

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mealdesk/mealdesk/internal/platform/httpx"
	"github.com/mealdesk/mealdesk/internal/rbac"
	"github.com/mealdesk/mealdesk/internal/shared"
)

// Handler exposes payment endpoints.
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

// MountRoutes registers payment routes, gated on Manage Payments.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.rbac.RequireAny(shared.PermManagePayments))
	r.Get("/", h.listPayments)
	r.Post("/", h.createPayment)
}

type paymentForm struct {
	EntityType      shared.EntityType `json:"entityType"`
	EntityID        string            `json:"entityId"`
	Amount          string            `json:"amount" validate:"required"`
	Status          string            `json:"status" validate:"required,oneof=pending completed failed refunded"`
	StripePaymentID string            `json:"stripePaymentId"`
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	actor := shared.PrincipalFromContext(r.Context())
	var (
		list []Payment
		err  error
	)
	if owner, scoped := rbac.NarrowScope(actor); scoped {
		list, err = h.repo.ListPaymentsByEntity(r.Context(), owner)
	} else {
		list, err = h.repo.ListPayments(r.Context())
	}
	if err != nil {
		h.logger.Error("list payments", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var form paymentForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	payment := Payment{
		EntityType:      form.EntityType,
		EntityID:        form.EntityID,
		Amount:          form.Amount,
		Status:          form.Status,
		StripePaymentID: form.StripePaymentID,
	}
	// Scoped actors pay for their own entity only.
	if actor := shared.PrincipalFromContext(r.Context()); actor != nil && actor.Entity.Bound() {
		payment.EntityType = actor.Entity.Type
		payment.EntityID = actor.Entity.ID
	}
	created, err := h.repo.CreatePayment(r.Context(), payment)
	if err != nil {
		h.logger.Error("create payment", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, created)
}
