package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aims-ops/aims-console/internal/api/handlers"
	"github.com/aims-ops/aims-console/internal/proxy"
	"github.com/aims-ops/aims-console/internal/services"
	"github.com/aims-ops/aims-console/internal/websocket"
)

// NewRouter creates and configures a new Chi router. Gateway-local routes
// (/ws, /events) are registered first; everything else falls through to
// the upstream forwarder.
func NewRouter(forwarder *proxy.Forwarder, hub *websocket.Hub, eventService services.EventServiceProvider, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	wsHandler := handlers.NewWebSocketHandler(hub)
	eventHandler := handlers.NewEventHandler(eventService)

	r.Get("/ws", wsHandler.Serve)
	r.Get("/events", eventHandler.Recent)

	// Everything under /api is relayed to the backend verbatim, with the
	// /api prefix dropped: /api/hosts becomes <upstream>/hosts.
	r.Handle("/api/*", http.StripPrefix("/api", forwarder))

	return r
}
