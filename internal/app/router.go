package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/taskhive/taskhive/internal/audit"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/facts"
	"github.com/taskhive/taskhive/internal/observability"
	"github.com/taskhive/taskhive/internal/tasks"
	"github.com/taskhive/taskhive/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger       *slog.Logger
	Config       *Config
	Metrics      *observability.Metrics
	AuthHandler  *auth.Handler
	UsersHandler *users.Handler
	TasksHandler *tasks.Handler
	FactsHandler *facts.Handler
	AuditHandler *audit.Handler
}

// NewRouter constructs the chi.Router with TaskHive defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	// Credential endpoints carry a per-IP rate limit; everything else
	// relies on bearer authentication inside the handlers.
	r.Route("/auth", func(r chi.Router) {
		if params.Config != nil && params.Config.AuthRateLimit > 0 {
			r.Use(httprate.LimitByIP(params.Config.AuthRateLimit, params.Config.AuthRateWindow))
		}
		params.AuthHandler.MountRoutes(r)
	})

	r.Route("/users", params.UsersHandler.MountRoutes)
	r.Route("/tasks", params.TasksHandler.MountRoutes)
	r.Route("/facts", params.FactsHandler.MountRoutes)
	if params.AuditHandler != nil {
		r.Route("/audit", params.AuditHandler.MountRoutes)
	}

	return r
}
