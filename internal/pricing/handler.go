package pricing

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mealdesk/mealdesk/internal/platform/httpx"
	"github.com/mealdesk/mealdesk/internal/shared"
)

// Handler exposes meal price endpoints. Routes only require a valid
// token; isolation happens through entity scoping inside the service.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers meal price routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listPrices)
	r.Post("/", h.createPrice)
	r.Put("/{id}", h.updatePrice)
}

type priceForm struct {
	BreakfastPrice string    `json:"breakfastPrice" validate:"required"`
	LunchPrice     string    `json:"lunchPrice" validate:"required"`
	DinnerPrice    string    `json:"dinnerPrice" validate:"required"`
	EffectiveDate  time.Time `json:"effectiveDate" validate:"required"`
}

func (h *Handler) listPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.service.PricesForActor(r.Context(), shared.PrincipalFromContext(r.Context()))
	if err != nil {
		h.logger.Error("list meal prices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, prices)
}

func (h *Handler) createPrice(w http.ResponseWriter, r *http.Request) {
	var form priceForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	price, err := h.service.CreateMealPrice(r.Context(), shared.PrincipalFromContext(r.Context()), MealPrice{
		BreakfastPrice: form.BreakfastPrice,
		LunchPrice:     form.LunchPrice,
		DinnerPrice:    form.DinnerPrice,
		EffectiveDate:  form.EffectiveDate,
	})
	if err != nil {
		h.logger.Error("create meal price", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, price)
}

func (h *Handler) updatePrice(w http.ResponseWriter, r *http.Request) {
	var form priceForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	result, err := h.service.UpdateMealPrice(r.Context(), shared.PrincipalFromContext(r.Context()), MealPrice{
		ID:             chi.URLParam(r, "id"),
		BreakfastPrice: form.BreakfastPrice,
		LunchPrice:     form.LunchPrice,
		DinnerPrice:    form.DinnerPrice,
		EffectiveDate:  form.EffectiveDate,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
