// Package http assembles the chi router and its middleware stack.
package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/nba-edge-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-edge-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-edge-service/internal/http/requestutil"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
)

const corsMaxAge = 300

// RouterOptions configures the middleware stack. Admin is mounted only when non-nil.
type RouterOptions struct {
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	CORSOrigins []string
	Admin       *handlers.AdminHandler
}

// NewRouter registers HTTP routes on a chi router.
func NewRouter(handler *handlers.Handler, opts RouterOptions) nethttp.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging(opts.Logger, opts.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins(opts.CORSOrigins),
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestutil.HeaderRequestID},
		ExposedHeaders: []string{requestutil.HeaderRequestID, "Retry-After"},
		MaxAge:         corsMaxAge,
	}))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.Route("/schedule", func(r chi.Router) {
		r.Get("/", handler.Schedule)
		r.Get("/days", handler.ScheduleDays)
	})
	r.Get("/results", handler.Results)

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", handler.Teams)
		r.Get("/resolve", handler.ResolveTeam)
		r.Get("/{code}/upcoming", handler.Upcoming)
		r.Get("/{code}/form", handler.Form)
	})

	r.Get("/edge", handler.Edge)
	r.Get("/verdicts", handler.Verdicts)

	if opts.Admin != nil {
		r.Post("/admin/snapshots/refresh", opts.Admin.RefreshSnapshots)
	}

	return r
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
