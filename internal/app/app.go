// Package app wires the console: one event bus, one backend client, the
// page cache and every resource service and handler on top of them.
package app

import (
	"fmt"
	"log/slog"

	"github.com/go-chi/chi"
	"gorm.io/gorm"

	"github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/affectation"
	"github.com/frahmantamala/trackit/internal/apiclient"
	"github.com/frahmantamala/trackit/internal/auth"
	"github.com/frahmantamala/trackit/internal/core/common/validation"
	"github.com/frahmantamala/trackit/internal/core/crud"
	"github.com/frahmantamala/trackit/internal/core/events"
	"github.com/frahmantamala/trackit/internal/core/locale"
	"github.com/frahmantamala/trackit/internal/core/pagecache"
	"github.com/frahmantamala/trackit/internal/dashboard"
	"github.com/frahmantamala/trackit/internal/incident"
	"github.com/frahmantamala/trackit/internal/inventaire"
	"github.com/frahmantamala/trackit/internal/materiel"
	"github.com/frahmantamala/trackit/internal/navigation"
	"github.com/frahmantamala/trackit/internal/notification"
	"github.com/frahmantamala/trackit/internal/personne"
	"github.com/frahmantamala/trackit/internal/position"
	"github.com/frahmantamala/trackit/internal/salle"
	"github.com/frahmantamala/trackit/internal/session"
	sessionPostgres "github.com/frahmantamala/trackit/internal/session/postgres"
	"github.com/frahmantamala/trackit/internal/transport"
	"github.com/frahmantamala/trackit/internal/transport/rest"
	"github.com/frahmantamala/trackit/internal/user"
)

type App struct {
	Config   *internal.Config
	Logger   *slog.Logger
	Bus      *events.EventBus
	Bundle   *locale.Bundle
	Store    pagecache.Store
	Client   *apiclient.Client
	Sessions *session.Service
	Auth     *auth.Service
	Toasts   *notification.Center

	Materiels    *materiel.Service
	Affectations *affectation.Service
	Positions    *position.Service
	Salles       *salle.Service
	Personnes    *personne.Service
	Utilisateurs *user.Service
	Incidents    *incident.Service
	Inventaires  *inventaire.Service
	Dashboard    *dashboard.Service

	Handlers rest.Handlers
}

// New builds the console on db (the session store) and store (the page
// cache).
func New(cfg *internal.Config, db *gorm.DB, store pagecache.Store, logger *slog.Logger) (*App, error) {
	bundle, err := locale.New(cfg.UI.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	bus := events.NewEventBus(logger)
	client := apiclient.NewClient(apiclient.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	}, bus, logger)
	validator := validation.New(bundle)

	sessions := session.NewService(sessionPostgres.NewSessionRepository(db), bus, cfg.Session.TTL, logger)
	toasts := notification.NewCenter(store, cfg.UI.ToastLimit, logger)

	// a refused token ends the session, which clears its page state and toasts
	bus.Subscribe(events.EventTypeAPIFailed, sessions.HandleAPIFailed)
	notification.NewEventHandler(toasts, store, bundle, logger).Register(bus)

	deps := crud.Deps{
		Client:    client,
		Store:     store,
		PageSize:  cfg.UI.PageSize,
		Validator: validator,
		Publisher: bus,
		Locale:    bundle,
		Logger:    logger,
	}

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Bus:      bus,
		Bundle:   bundle,
		Store:    store,
		Client:   client,
		Sessions: sessions,
		Auth:     auth.NewService(auth.NewBackend(client), sessions, validator, logger),
		Toasts:   toasts,

		Materiels:    materiel.NewService(deps),
		Affectations: affectation.NewService(deps),
		Positions:    position.NewService(deps),
		Salles:       salle.NewService(deps),
		Personnes:    personne.NewService(deps),
		Utilisateurs: user.NewService(deps),
		Incidents:    incident.NewService(deps),
		Inventaires:  inventaire.NewService(deps),
		Dashboard:    dashboard.NewService(client, logger),
	}

	base := transport.NewBaseHandler(logger, bundle, cfg.Session.CookieName)
	a.Handlers = rest.Handlers{
		Base:         base,
		Auth:         auth.NewHandler(base, a.Auth, cfg.Session.Secure),
		Navigation:   navigation.NewHandler(base),
		Notification: notification.NewHandler(base, toasts),
		Dashboard:    dashboard.NewHandler(base, a.Dashboard),
		Materiel:     materiel.NewHandler(base, a.Materiels),
		Affectation:  affectation.NewHandler(base, a.Affectations),
		Position:     position.NewHandler(base, a.Positions),
		Salle:        salle.NewHandler(base, a.Salles),
		Personne:     personne.NewHandler(base, a.Personnes),
		User:         user.NewHandler(base, a.Utilisateurs),
		Incident:     incident.NewHandler(base, a.Incidents),
		Inventaire:   inventaire.NewHandler(base, a.Inventaires),
	}

	return a, nil
}

// Router mounts the console on a fresh chi router.
func (a *App) Router(health *rest.HealthHandler, openAPI []byte) *chi.Mux {
	router := chi.NewRouter()
	h := a.Handlers
	h.Health = health

	metricsPath := ""
	if a.Config.Observability.Metrics.Enabled {
		metricsPath = a.Config.Observability.Metrics.Path
	}
	rest.RegisterAllRoutes(router, h, rest.Options{
		Bundle:         a.Bundle,
		AllowedOrigins: a.Config.Server.Origins(),
		MetricsPath:    metricsPath,
		OpenAPI:        openAPI,
	}, a.Logger)
	return router
}
