// Package api assembles the HTTP router and the per-route check chains.
// Chain order is fixed: token, admin claim, object-id syntax, body schema.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rogalski/gamedex/internal/auth"
	"github.com/rogalski/gamedex/internal/developers"
	"github.com/rogalski/gamedex/internal/games"
	"github.com/rogalski/gamedex/internal/middleware"
	"github.com/rogalski/gamedex/internal/players"
	"github.com/rogalski/gamedex/internal/users"
	"github.com/rogalski/gamedex/internal/validate"
)

// Handlers bundles the resource handlers the router mounts.
type Handlers struct {
	Players    *players.Handler
	Games      *games.Handler
	Developers *developers.Handler
	Users      *users.Handler
	Auth       *auth.Handler
}

// New builds the full router. Recoverer is the single top-level handler that
// turns unhandled failures into a generic 500.
func New(issuer *auth.Issuer, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", middleware.TokenHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	token := middleware.RequireToken(issuer)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/players", func(r chi.Router) {
		r.Get("/", h.Players.List)
		r.With(middleware.ValidateBody(validate.Player)).Post("/", h.Players.Create)

		r.Route("/myAccount", func(r chi.Router) {
			r.Use(token)
			r.Get("/", h.Players.GetMyAccount)
			r.With(middleware.ValidateBody(validate.PlayerUpdate)).Put("/", h.Players.UpdateMyAccount)
			r.With(middleware.RequireAdmin).Delete("/", h.Players.DeleteMyAccount)
		})

		r.Route("/{id}", func(r chi.Router) {
			r.With(middleware.ValidateObjectID).Get("/", h.Players.Get)
			r.With(token, middleware.ValidateObjectID,
				middleware.ValidateBody(validate.PlayerUpdate)).Put("/", h.Players.Update)
			r.With(token, middleware.RequireAdmin,
				middleware.ValidateObjectID).Delete("/", h.Players.Delete)
		})
	})

	r.Route("/api/games", func(r chi.Router) {
		r.Get("/", h.Games.List)
		r.With(token, middleware.ValidateBody(validate.Game)).Post("/", h.Games.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.With(middleware.ValidateObjectID).Get("/", h.Games.Get)
			r.With(token, middleware.ValidateObjectID,
				middleware.ValidateBody(validate.Game)).Put("/", h.Games.Update)
			r.With(token, middleware.RequireAdmin,
				middleware.ValidateObjectID).Delete("/", h.Games.Delete)
		})
	})

	r.Route("/api/developers", func(r chi.Router) {
		r.Get("/", h.Developers.List)
		r.Get("/sort/{field}", h.Developers.ListSorted)
		r.With(token, middleware.ValidateBody(validate.Developer)).Post("/", h.Developers.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.With(middleware.ValidateObjectID).Get("/", h.Developers.Get)
			r.With(token, middleware.ValidateObjectID,
				middleware.ValidateBody(validate.Developer)).Put("/", h.Developers.Update)
			r.With(token, middleware.RequireAdmin,
				middleware.ValidateObjectID).Delete("/", h.Developers.Delete)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.With(middleware.ValidateBody(validate.User)).Post("/", h.Users.Create)
		r.With(token).Get("/me", h.Users.Me)
	})

	r.Post("/api/auth", h.Auth.Login)

	return r
}
