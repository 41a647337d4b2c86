package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"nutrition/internal/ai"
	"nutrition/internal/auth"
	"nutrition/internal/badges"
	"nutrition/internal/cache"
	"nutrition/internal/config"
	"nutrition/internal/db"
	"nutrition/internal/diets"
	httpserver "nutrition/internal/http"
	"nutrition/internal/metrics"
	"nutrition/internal/profile"
	"nutrition/internal/supabase"
)

// Application wires together config, backend clients, and the HTTP server.
// Missing Supabase settings do not stop startup; the affected endpoints
// answer 503 instead.
type Application struct {
	cfg    config.Config
	logger zerolog.Logger
	dbPool *db.Pool
	cache  cache.Cache
	srv    *httpserver.Server
}

func NewApplication(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Application, error) {
	a := &Application{cfg: cfg, logger: logger}

	deps := httpserver.Deps{
		AI:      ai.NewChecker(cfg.AIAPIKey, cfg.AIStatusURL),
		Metrics: metrics.New(),
		Logger:  logger,
	}

	pool, err := db.NewPool(ctx, cfg.SupabaseDBURL)
	switch {
	case errors.Is(err, db.ErrNotConfigured):
		logger.Warn().Msg("SUPABASE_DB_URL not set; data endpoints will return 503")
	case err != nil:
		return nil, err
	default:
		a.dbPool = pool
		deps.Badges = badges.NewService(pool)
		deps.Diets = diets.NewService(pool)
		deps.Profiles = profile.NewService(pool)
		deps.Health = pool.Ping
	}

	if cfg.AuthConfigured() {
		verifyCache, err := newVerifyCache(ctx, cfg)
		if err != nil {
			a.Shutdown(ctx)
			return nil, err
		}
		a.cache = verifyCache

		backend := supabase.NewAuthClient(cfg.SupabaseURL, cfg.APIKey())
		deps.Verifier = auth.NewVerifier(backend,
			auth.WithTokenParser(auth.NewTokenParser(cfg.SupabaseJWTSecret)),
			auth.WithCache(verifyCache, cfg.VerifyCacheTTL),
		)
	} else {
		logger.Warn().Msg("SUPABASE_URL or SUPABASE_ANON_KEY not set; authenticated endpoints will return 503")
	}

	a.srv = httpserver.NewServer(cfg, deps)
	return a, nil
}

func newVerifyCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	if cfg.RedisURL == "" {
		return cache.NewMemory(cfg.VerifyCacheTTL), nil
	}
	r, err := cache.NewRedis(cfg.RedisURL, "nutrition")
	if err != nil {
		return nil, err
	}
	if err := r.Ping(ctx); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	return r, nil
}

func (a *Application) Start() error {
	a.logger.Info().
		Str("port", a.cfg.Port).
		Bool("database", a.dbPool != nil).
		Bool("auth", a.cfg.AuthConfigured()).
		Msg("starting HTTP server")
	return a.srv.Start()
}

func (a *Application) Shutdown(ctx context.Context) {
	if a.srv != nil {
		if err := a.srv.Shutdown(ctx); err != nil {
			a.logger.Error().Err(err).Msg("http shutdown")
		}
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.dbPool != nil {
		a.dbPool.Close()
	}
}
