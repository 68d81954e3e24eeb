package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/frahmantamala/trackit/internal/affectation"
	"github.com/frahmantamala/trackit/internal/auth"
	"github.com/frahmantamala/trackit/internal/core/locale"
	"github.com/frahmantamala/trackit/internal/dashboard"
	"github.com/frahmantamala/trackit/internal/incident"
	"github.com/frahmantamala/trackit/internal/inventaire"
	"github.com/frahmantamala/trackit/internal/materiel"
	"github.com/frahmantamala/trackit/internal/navigation"
	"github.com/frahmantamala/trackit/internal/notification"
	"github.com/frahmantamala/trackit/internal/personne"
	"github.com/frahmantamala/trackit/internal/position"
	"github.com/frahmantamala/trackit/internal/salle"
	"github.com/frahmantamala/trackit/internal/transport"
	"github.com/frahmantamala/trackit/internal/transport/middleware"
	"github.com/frahmantamala/trackit/internal/transport/swagger"
	"github.com/frahmantamala/trackit/internal/user"
)

// ConsolePrefix is where the console API is mounted.
const ConsolePrefix = "/console"

// Handlers groups everything the router mounts. Nil handlers are skipped.
type Handlers struct {
	Base         *transport.BaseHandler
	Auth         *auth.Handler
	Navigation   *navigation.Handler
	Notification *notification.Handler
	Dashboard    *dashboard.Handler
	Materiel     *materiel.Handler
	Affectation  *affectation.Handler
	Position     *position.Handler
	Salle        *salle.Handler
	Personne     *personne.Handler
	User         *user.Handler
	Incident     *incident.Handler
	Inventaire   *inventaire.Handler
	Health       *HealthHandler
}

type Options struct {
	Bundle         *locale.Bundle
	AllowedOrigins []string
	MetricsPath    string
	OpenAPI        []byte
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts Options, logger *slog.Logger) {
	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.Locale(opts.Bundle))
	router.Use(middleware.RecoveryMiddleware(logger, h.Base))
	router.Use(middleware.LoggingMiddleware(logger))

	if opts.OpenAPI != nil {
		router.Get(swagger.DocumentPath, swagger.Document(opts.OpenAPI))
		router.Handle("/swagger/*", swagger.Handler())
	}
	if opts.MetricsPath != "" {
		router.Handle(opts.MetricsPath, promhttp.Handler())
	}

	if h.Health != nil {
		router.Get("/health", h.Health.healthCheckHandler)
		router.Get("/ping", h.Health.pingHandler)
	}

	router.Route(ConsolePrefix, func(r chi.Router) {
		if h.Auth == nil {
			return
		}

		r.Post("/login", h.Auth.Login)
		if h.Navigation != nil {
			r.With(h.Auth.OptionalSession).Get("/guard", h.Navigation.Guard)
		}

		// Protected routes that require a console session
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.SessionMiddleware)

			pr.Post("/logout", h.Auth.Logout)
			pr.Get("/me", h.Auth.Me)
			pr.Put("/locale", h.Auth.SetLocale)

			if h.Notification != nil {
				pr.Get("/toasts", h.Notification.GetToasts)
			}
			if h.Navigation != nil {
				pr.Get("/sidebar", h.Navigation.Sidebar)
			}
			if h.Dashboard != nil {
				pr.Get("/dashboard", h.Dashboard.GetDashboard)
			}

			if h.Materiel != nil {
				pr.Route("/materiels", h.Materiel.Routes)
			}
			if h.Affectation != nil {
				pr.Route("/affectations", h.Affectation.Routes)
			}
			if h.Position != nil {
				pr.Route("/positions", h.Position.Routes)
			}
			if h.Salle != nil {
				pr.Route("/salles", h.Salle.Routes)
			}
			if h.Personne != nil {
				pr.Route("/personnes", h.Personne.Routes)
			}
			if h.Incident != nil {
				pr.Route("/incidents", h.Incident.Routes)
			}
			if h.Inventaire != nil {
				pr.Route("/inventaires", h.Inventaire.Routes)
			}

			// Administration, admin role only
			if h.User != nil {
				pr.Group(func(ar chi.Router) {
					ar.Use(middleware.RequireAdmin(h.Base))
					ar.Route("/utilisateurs", h.User.Routes)
				})
			}
		})
	})
}

// Walk lists every mounted route as "METHOD path".
func Walk(router chi.Routes, fn func(method, route string)) error {
	return chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		fn(method, route)
		return nil
	})
}
