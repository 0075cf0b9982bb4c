package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"inmoportal/internal/agent"
	"inmoportal/internal/handlers"
	"inmoportal/internal/mail"
	"inmoportal/internal/ratelimit"
	"inmoportal/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine      agent.Engine
	Projects    storage.ProjectStore
	Leads       storage.LeadStore
	Mailer      mail.Sender
	Limiter     *ratelimit.Limiter
	DB          *sql.DB
	SiteBaseURL string

	ModelConfigured bool
	MailConfigured  bool
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	agentHandler := handlers.NewAgentHandler(deps.Engine, deps.Limiter)
	projectsHandler := handlers.NewProjectsHandler(deps.Projects, deps.SiteBaseURL)
	contactHandler := handlers.NewContactHandler(deps.Leads, deps.Mailer, deps.Limiter)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.ModelConfigured, deps.MailConfigured)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/agent", agentHandler)
		r.Get("/projects", projectsHandler.List)
		r.Get("/projects/{slug}", projectsHandler.Detail)
		r.Method(http.MethodPost, "/contact", contactHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
