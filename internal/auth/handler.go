package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mealdesk/mealdesk/internal/platform/httpx"
	"github.com/mealdesk/mealdesk/internal/shared"
	"github.com/mealdesk/mealdesk/internal/users"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	mw        Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw Middleware) *Handler {
	return &Handler{logger: logger, service: service, mw: mw, validator: validator.New()}
}

// MountRoutes registers auth routes. Register and login are the only
// public endpoints in the API.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequireToken, h.mw.ResolvePrincipal)
		r.Get("/me", h.handleMe)
	})
}

type registerForm struct {
	Name       string            `json:"name" validate:"required"`
	Email      string            `json:"email" validate:"required,email"`
	Password   string            `json:"password" validate:"required,min=8"`
	EntityType shared.EntityType `json:"entityType" validate:"required"`
	EntityName string            `json:"entityName"`
	EntityData *entityDataForm   `json:"entityData"`
}

type entityDataForm struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactPhone string `json:"contactPhone"`
	Capacity     int    `json:"capacity"`
}

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var form registerForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	input := RegisterInput{
		Name:       form.Name,
		Email:      form.Email,
		Password:   form.Password,
		EntityType: form.EntityType,
		EntityName: form.EntityName,
	}
	if form.EntityData != nil {
		input.EntityData = &EntityData{
			Name:         form.EntityData.Name,
			Address:      form.EntityData.Address,
			ContactPhone: form.EntityData.ContactPhone,
			Capacity:     form.EntityData.Capacity,
		}
	}

	user, token, err := h.service.Register(r.Context(), input)
	if err != nil {
		if errors.Is(err, shared.ErrDuplicate) {
			httpx.Problem(w, http.StatusBadRequest, "Duplicate", "email already registered")
			return
		}
		h.logger.Error("register", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse{User: user, Token: token})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	user, token, err := h.service.Authenticate(r.Context(), form.Email, form.Password)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse{User: user, Token: token})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}
	user, err := h.mw.Users.GetUser(r.Context(), principal.UserID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
