package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/smauel/access/internal/assignments"
	"github.com/smauel/access/internal/grants"
	"github.com/smauel/access/internal/observability"
	"github.com/smauel/access/internal/permissions"
	"github.com/smauel/access/internal/roles"
	"github.com/smauel/access/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	PermissionsHandler *permissions.Handler
	RolesHandler       *roles.Handler
	GrantsHandler      *grants.Handler
	AssignmentsHandler *assignments.Handler
	UsersHandler       *users.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with service defaults.
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

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		permissions.MountRoutes(api, params.PermissionsHandler)
		roles.MountRoutes(api, params.RolesHandler)
		grants.MountRoutes(api, params.GrantsHandler)
		assignments.MountRoutes(api, params.AssignmentsHandler)
		users.MountRoutes(api, params.UsersHandler)
	})

	return r
}
