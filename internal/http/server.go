package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"nutrition/internal/ai"
	"nutrition/internal/auth"
	"nutrition/internal/badges"
	"nutrition/internal/config"
	"nutrition/internal/diets"
	"nutrition/internal/metrics"
	"nutrition/internal/profile"
)

// Deps are the collaborators a Server routes to. Nil services disable their
// endpoints with 503.
type Deps struct {
	Verifier *auth.Verifier
	Badges   *badges.Service
	Diets    *diets.Service
	Profiles *profile.Service
	AI       *ai.Checker
	Metrics  *metrics.Metrics
	Logger   zerolog.Logger
	Health   func(ctx context.Context) error
}

type Server struct {
	cfg          config.Config
	router       chi.Router
	httpServer   *http.Server
	deps         Deps
	logger       zerolog.Logger
	secureCookie bool
	limiter      *rateLimiter
}

func NewServer(cfg config.Config, deps Deps) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(hlog.NewHandler(deps.Logger))
	router.Use(requestIDLogField)
	router.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	router.Use(middleware.Recoverer)

	origin := strings.TrimSuffix(cfg.FrontendURL, "/")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	server := &Server{
		cfg:          cfg,
		router:       router,
		deps:         deps,
		logger:       deps.Logger,
		secureCookie: cfg.Production(),
		limiter:      newRateLimiter(cfg.RateLimitRPS),
	}

	router.Use(server.metricsMiddleware)
	server.registerRoutes()
	return server
}

// Logout stays outside the rate limit: it must clear cookies every time.
func (s *Server) registerRoutes() {
	limited := s.rateLimitMiddleware()

	s.router.With(limited).Get("/healthz", s.handleHealth)
	if s.deps.Metrics != nil {
		s.router.With(limited).Handle("/metrics", s.deps.Metrics.Handler())
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(limited)
			r.Get("/auth/status", s.handleAuthStatus)
			r.Get("/ai/status", s.handleAIStatus)

			r.Group(func(r chi.Router) {
				r.Use(s.requireUser)
				r.Get("/badges", s.handleBadges)
				r.Get("/diets", s.handleDiets)
				r.Get("/diets/{dietID}", s.handleDiet)
				r.Get("/profile", s.handleProfile)
			})
		})
	})
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ok"
	if s.deps.Health != nil {
		if err := s.deps.Health(ctx); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("health check failed")
			status = "degraded"
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (s *Server) handleAIStatus(w http.ResponseWriter, r *http.Request) {
	if s.deps.AI == nil {
		s.writeJSON(w, http.StatusOK, ai.Status{Timestamp: time.Now().UTC()})
		return
	}

	st, err := s.deps.AI.Status(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("ai status check failed")
		s.writeJSON(w, http.StatusInternalServerError, map[string]any{
			"available": false,
			"timestamp": st.Timestamp,
			"error":     "Failed to check AI status",
		})
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	if s.deps.Metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.deps.Metrics.ObserveRequest(route, r.Method, status)
	})
}

func (s *Server) rateLimitMiddleware() func(http.Handler) http.Handler {
	if s.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if !s.limiter.Allow(s.rateLimitKey(r), time.Now()) {
				s.writeError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requestIDLogField(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("request_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

// writeError sends a generic message; internal detail belongs in the log.
func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	if msg == "" {
		msg = http.StatusText(code)
	}
	s.writeJSON(w, code, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%s", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
