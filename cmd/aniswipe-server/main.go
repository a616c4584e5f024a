package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/adapters/httpapi"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/adapters/jikan"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/adapters/memorybus"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/adapters/sqlite"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/app"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/buildinfo"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/config"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	def := config.Default()
	addr := flag.String("addr", def.Addr, "Adresse d'écoute (ex: 127.0.0.1:8080)")
	dbPath := flag.String("db", def.DBPath, "Chemin SQLite (ex: aniswipe.db)")
	jikanURL := flag.String("jikan", def.JikanURL, "Endpoint Jikan (ex: https://api.jikan.moe/v4)")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("app", "aniswipe-server").Logger()
	log.Logger = logger

	logger.Info().Interface("build", buildinfo.Current()).Str("db", *dbPath).Msg("starting")

	ctx := context.Background()
	db, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open db")
	}
	defer func() { _ = db.Close() }()

	bus := memorybus.New()
	settingsRepo := sqlite.NewSettingsRepository(db.SQL)
	settingsSvc := app.NewSettingsService(settingsRepo)
	listsRepo := sqlite.NewListsRepository(db.SQL)
	resolver := jikan.NewClient().WithEndpoint(*jikanURL)

	settings := domain.DefaultSettings()
	if s, err := settingsSvc.Get(ctx); err == nil {
		settings = s
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Porte Jikan partagée premier plan + préchargement ; survit aux resets.
	gate := app.NewFetchGate(time.Duration(settings.MinFetchIntervalMs) * time.Millisecond)
	// Limiteur global du préchargement, ajustable à chaud via les settings.
	prefetchLimiter := app.NewDynamicLimiter(settings.MaxConcurrentPrefetch)
	prefetcher := app.NewPrefetcher(shutdownCtx, logger.With().Str("component", "prefetch").Logger(), prefetchLimiter, settings.PrefetchWindow)
	defer prefetcher.Close()

	sessionOpts := app.DefaultSessionOptions()
	if settings.DecisionCooldownMs > 0 {
		sessionOpts.Cooldown = time.Duration(settings.DecisionCooldownMs) * time.Millisecond
	}
	sessionSvc := app.NewSessionService(shutdownCtx, logger.With().Str("component", "session").Logger(), gate, resolver, prefetcher, bus, sessionOpts)
	listsSvc := app.NewListService(logger.With().Str("component", "lists").Logger(), listsRepo, sessionSvc, settingsSvc)

	// Recharge le dernier export au boot (best-effort).
	if view, err := listsSvc.LoadLatest(ctx); err == nil {
		logger.Info().Str("list_id", view.ListID).Int("entries", view.Total).Msg("latest list reloaded")
	}

	srv := httpapi.NewServer(logger, sessionSvc, listsSvc, settingsSvc, bus, gate, prefetchLimiter, func(updated domain.Settings) {
		if updated.PrefetchWindow > 0 {
			prefetcher.SetWindow(updated.PrefetchWindow)
		}
		if updated.DecisionCooldownMs > 0 {
			sessionSvc.SetCooldown(time.Duration(updated.DecisionCooldownMs) * time.Millisecond)
		}
	})
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", *addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server crashed")
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
	logger.Info().Msg("bye")
}
