package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/gtg/internal/app"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	app     *app.App
	log     *slog.Logger
	apiKey  string
	devMode bool
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(application *app.App, apiKey string, devMode bool, log *slog.Logger) *Server {
	s := &Server{
		app:     application,
		log:     log,
		apiKey:  apiKey,
		devMode: devMode,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Read endpoints (no auth — tsnet handles access)
		r.Get("/today", s.handleToday)
		r.Get("/reminder", s.handleReminder)
		r.Get("/config", s.handleGetConfig)
		r.Get("/stats", s.handleStats)
		r.Get("/maxreps", s.handleMaxReps)
		r.Get("/export", s.handleExport)

		// Mutating endpoints (API key required when configured)
		r.Group(func(r chi.Router) {
			if s.apiKey != "" {
				r.Use(APIKeyAuth(s.apiKey))
			}
			r.Post("/today/sets", s.handleAddSet)
			r.Delete("/today/sets/{index}", s.handleRemoveSet)
			r.Post("/reminder/dismiss", s.handleDismissReminder)
			r.Put("/config", s.handlePutConfig)
			r.Put("/maxreps", s.handlePutMaxReps)
			r.Post("/import", s.handleImport)
			r.Post("/reset", s.handleReset)
		})

		// Clock override, only reachable in dev mode
		if s.devMode {
			r.Put("/devclock", s.handleSetMockDate)
			r.Delete("/devclock", s.handleClearMockDate)
		}
	})
}

// MountMCP attaches the MCP transport handler at /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}
