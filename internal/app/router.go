package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/mealdesk/mealdesk/internal/auth"
	"github.com/mealdesk/mealdesk/internal/dashboard"
	"github.com/mealdesk/mealdesk/internal/entities"
	"github.com/mealdesk/mealdesk/internal/feedback"
	"github.com/mealdesk/mealdesk/internal/meals"
	"github.com/mealdesk/mealdesk/internal/members"
	"github.com/mealdesk/mealdesk/internal/observability"
	"github.com/mealdesk/mealdesk/internal/payments"
	"github.com/mealdesk/mealdesk/internal/pricing"
	"github.com/mealdesk/mealdesk/internal/rbac"
	"github.com/mealdesk/mealdesk/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthHandler      *auth.Handler
	AuthMiddleware   auth.Middleware
	UsersHandler     *users.Handler
	RolesHandler     *rbac.Handler
	EntitiesHandler  *entities.Handler
	MembersHandler   *members.Handler
	MealsHandler     *meals.Handler
	PricingHandler   *pricing.Handler
	PaymentsHandler  *payments.Handler
	FeedbackHandler  *feedback.Handler
	DashboardHandler *dashboard.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with MealDesk defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Use(httprate.Limit(20, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		params.AuthHandler.MountRoutes(r)
	})

	// Everything below resolves the caller's identity and role once, up
	// front. Route gates then check the cached principal only.
	r.Group(func(r chi.Router) {
		r.Use(params.AuthMiddleware.RequireToken, params.AuthMiddleware.ResolvePrincipal)

		r.Route("/api/users", params.UsersHandler.MountRoutes)
		r.Route("/api/roles", params.RolesHandler.MountRoutes)
		r.Route("/api/hostels", params.EntitiesHandler.MountHostelRoutes)
		r.Route("/api/corporate-offices", params.EntitiesHandler.MountCorporateRoutes)
		r.Route("/api/members", params.MembersHandler.MountRoutes)
		r.Route("/api/meals", params.MealsHandler.MountRoutes)
		r.Route("/api/meal-prices", params.PricingHandler.MountRoutes)
		r.Route("/api/payments", params.PaymentsHandler.MountRoutes)
		r.Route("/api/feedback", params.FeedbackHandler.MountRoutes)
		r.Route("/api/dashboard", params.DashboardHandler.MountRoutes)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
