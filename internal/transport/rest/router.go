package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/timeline-backend/internal/config"
	"github.com/heartmarshall/timeline-backend/internal/timeline"
	"github.com/heartmarshall/timeline-backend/internal/transport/middleware"
)

// Handlers groups the endpoint handlers served by the router.
type Handlers struct {
	Events   *EventHandler
	Timeline *TimelineHandler
	Health   *HealthHandler
}

// RouterOptions configures the middleware stack.
// Writes wraps mutating routes only; nil leaves them unwrapped.
type RouterOptions struct {
	CORS   config.CORSConfig
	Writes middleware.Middleware
}

// NewRouter registers every route and wraps the mux in the request-id,
// logging, recovery and CORS middleware, outermost first.
func NewRouter(h Handlers, opts RouterOptions, logger *slog.Logger) http.Handler {
	writes := middleware.Chain(opts.Writes)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /api/events", h.Events.List)
	mux.HandleFunc("GET /api/events/{tag}", h.Events.Detail)
	mux.HandleFunc("GET "+timeline.DetailPath, h.Events.DetailByQuery)
	mux.Handle("POST /api/events", writes(http.HandlerFunc(h.Events.Create)))
	mux.Handle("PATCH /api/events/{id}", writes(http.HandlerFunc(h.Events.Update)))
	mux.Handle("DELETE /api/events/{id}", writes(http.HandlerFunc(h.Events.Delete)))
	mux.Handle("POST /api/events/{tag}/relations", writes(http.HandlerFunc(h.Events.Link)))

	mux.HandleFunc("GET /api/facets", h.Timeline.Facets)
	mux.HandleFunc("GET /api/timeline", h.Timeline.Chart)
	mux.HandleFunc("GET /api/timeline.svg", h.Timeline.SVG)

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(opts.CORS),
	)(mux)
}
