package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/usermodel/backend/internal/middleware"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterOptions holds everything NewRouter wires together
type RouterOptions struct {
	Logger             *zap.Logger
	AllowedOrigins     []string
	RateLimitPerMinute int
	MaxRequestSize     int64
	// Registerer and Gatherer default to the prometheus default registry when nil
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	DB         Pinger

	Users      UsersService
	Roles      RolesService
	Useremails UseremailsService
}

// NewRouter builds the HTTP router with the middleware chain, health, metrics, docs and API routes
func NewRouter(opts RouterOptions) http.Handler {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.RateLimitPerMinute <= 0 {
		opts.RateLimitPerMinute = 100
	}
	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = 10 * 1024 * 1024 // 10MB
	}

	metrics := middleware.NewMetrics(opts.Registerer)

	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(opts.Logger))
	r.Use(middleware.RecoveryMiddleware(opts.Logger))
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))
	r.Use(httprate.LimitByIP(opts.RateLimitPerMinute, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(opts.MaxRequestSize))
	r.Use(metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if opts.DB != nil {
			if err := opts.DB.PingContext(r.Context()); err != nil {
				opts.Logger.Warn("readiness check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	NewUsersHandler(opts.Users, opts.Logger).RegisterRoutes(r)
	NewRolesHandler(opts.Roles, opts.Logger).RegisterRoutes(r)
	NewUseremailsHandler(opts.Useremails, opts.Logger).RegisterRoutes(r)

	return r
}
