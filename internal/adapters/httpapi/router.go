package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/app"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/ports"
)

type Server struct {
	logger   zerolog.Logger
	session  *app.SessionService
	lists    *app.ListService
	settings *app.SettingsService
	bus      ports.EventBus
	// gate et prefetchLimiter sont optionnels et permettent d'appliquer
	// minFetchIntervalMs / maxConcurrentPrefetch à chaud.
	gate            *app.FetchGate
	prefetchLimiter *app.DynamicLimiter
	// onSettingsUpdated est optionnel (ex: ajuster la fenêtre de prefetch).
	onSettingsUpdated func(domain.Settings)
}

func NewServer(logger zerolog.Logger, session *app.SessionService, lists *app.ListService, settings *app.SettingsService, bus ports.EventBus, gate *app.FetchGate, prefetchLimiter *app.DynamicLimiter, onSettingsUpdated func(domain.Settings)) *Server {
	return &Server{
		logger:            logger,
		session:           session,
		lists:             lists,
		settings:          settings,
		bus:               bus,
		gate:              gate,
		prefetchLimiter:   prefetchLimiter,
		onSettingsUpdated: onSettingsUpdated,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultRequestTimeout))
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("request_id", "Request-Id"))
	r.Use(hlog.RemoteAddrHandler("remote_ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(hlog.AccessHandler(accessLogFn))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/version", s.handleVersion)
		r.Get("/openapi.json", s.handleOpenAPI)
		r.Get("/events", s.handleEvents)

		if s.lists != nil {
			NewListsHandler(s.lists).Routes(r)
		}
		if s.session != nil {
			NewSessionHandler(s.session).Routes(r)
		}
		if s.settings != nil {
			NewSettingsHandler(s.settings, s.applySettings).Routes(r)
		}
	})

	return r
}

func (s *Server) applySettings(updated domain.Settings) {
	if s.gate != nil && updated.MinFetchIntervalMs > 0 {
		s.gate.SetInterval(millis(updated.MinFetchIntervalMs))
	}
	if s.prefetchLimiter != nil && updated.MaxConcurrentPrefetch > 0 {
		s.prefetchLimiter.SetLimit(updated.MaxConcurrentPrefetch)
	}
	if s.onSettingsUpdated != nil {
		s.onSettingsUpdated(updated)
	}
}
