/*
Package handler provides the HTTP handlers and routing setup for the Plaza
presence server.

This file defines the main Router, applying middleware (logging, CORS,
IP-based rate limiting, identity extraction) before delegating to the room
handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"plaza/internal/pkg/auth/jwt"
	"plaza/internal/pkg/limiter"
	"plaza/internal/pkg/logx"
	"plaza/internal/pkg/resp"
)

// Transport-level write limits per IP. Position reports arrive about once
// per second from a well-behaved client plus bursts when several tabs
// share an address; message sends are further gated per sender by the
// room cooldown.
const (
	PositionRate  = 5.0
	PositionBurst = 10
	MessageRate   = 1.0
	MessageBurst  = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the server.
func Router(deps *AppDeps) http.Handler {
	positionLimiter := limiter.NewIPRateLimiter(rate.Limit(PositionRate), PositionBurst)
	messageLimiter := limiter.NewIPRateLimiter(rate.Limit(MessageRate), MessageBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Plaza Presence Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/room", func(rm chi.Router) {
			rm.Get("/positions", HandleListPositions(deps))
			rm.Get("/messages", HandleListMessages(deps))

			rm.With(positionLimiter.Middleware).Post("/position", HandleReportPosition(deps))
			rm.With(messageLimiter.Middleware).Post("/message", HandleSendMessage(deps))
		})
	})

	return r
}
