package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/taskcrew/taskcrew/internal/api/handler"
	"github.com/taskcrew/taskcrew/internal/api/middleware"
	"github.com/taskcrew/taskcrew/internal/bot"
	"github.com/taskcrew/taskcrew/internal/notify"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Engine     *bot.Engine
	Dispatcher notify.Dispatcher
	DBPinger   handler.DBPinger
	Version    string
	// TransportSecretHash gates /commands behind a shared secret when set.
	TransportSecretHash string
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	commandHandler := handler.NewCommandHandler(deps.Engine, deps.Dispatcher)
	r.Group(func(r chi.Router) {
		if deps.TransportSecretHash != "" {
			r.Use(middleware.TransportAuth(deps.TransportSecretHash))
		}
		r.Post("/commands", commandHandler.Handle)
	})

	return r
}
