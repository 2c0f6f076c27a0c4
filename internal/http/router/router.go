package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/freightservices/quote-api/internal/auth"
	"github.com/freightservices/quote-api/internal/config"
	"github.com/freightservices/quote-api/internal/database"
	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/http/handler"
	"github.com/freightservices/quote-api/internal/http/middleware"
	"github.com/freightservices/quote-api/internal/metrics"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/freightservices/quote-api/docs" // Import generated swagger docs
)

const healthTimeout = 3 * time.Second

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	db             *gorm.DB
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	quoteHandler   *handler.QuoteHandler
	emailHandler   *handler.EmailHandler
	adminHandler   *handler.AdminHandler
	authHandler    *handler.AuthHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	quoteHandler *handler.QuoteHandler,
	emailHandler *handler.EmailHandler,
	adminHandler *handler.AdminHandler,
	authHandler *handler.AuthHandler,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		quoteHandler:   quoteHandler,
		emailHandler:   emailHandler,
		adminHandler:   adminHandler,
		authHandler:    authHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Liveness probe
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/health/db", rt.databaseHealth)
	r.Get("/health/ready", rt.readiness)

	if rt.cfg.Server.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// JSON quote API, guarded by the shared API token
	r.Route("/api/quote", func(r chi.Router) {
		r.Use(rt.rateLimiter.LimitQuoteAPI)
		r.Use(auth.APITokenMiddleware(rt.cfg.ApiKey.Value, rt.logger))
		r.Post("/", rt.quoteHandler.CreateAPI)
		r.Get("/{quoteId}", rt.quoteHandler.GetAPI)
	})

	// Session routes
	r.Group(func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)

		r.Get("/auth/me", rt.authHandler.Me)
		r.Get("/rate-sets", rt.adminHandler.RateSets)

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", rt.quoteHandler.List)
			r.Post("/new", rt.quoteHandler.CreateFromForm)
			r.Post("/lookup", rt.quoteHandler.Lookup)
			r.Get("/accessorials", rt.quoteHandler.AccessorialOptions)
			r.Get("/{quoteId}", rt.quoteHandler.GetByID)
			r.Get("/{quoteId}/email", rt.emailHandler.BookingRequest)
			r.Get("/{quoteId}/email-volume", rt.emailHandler.VolumeRequest)
			r.Post("/{quoteId}/email-request", rt.emailHandler.CreateRequest)
			r.Post("/{quoteId}/email-self", rt.emailHandler.SendToSelf)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(rt.authMiddleware.RequireRole(domain.UserRoleSuperAdmin))
			r.Post("/caches/invalidate", rt.adminHandler.InvalidateCaches)
		})
	})

	return r
}

// databaseHealth is the readiness probe with pool statistics
func (rt *Router) databaseHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	stats, err := database.HealthCheckWithStats(ctx, rt.db)
	if err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats": map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		},
	})
}

// readiness checks every dependency a quote needs
func (rt *Router) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	checks := map[string]interface{}{}
	healthy := true

	if err := database.Ping(ctx, rt.db); err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		checks["database"] = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
		healthy = false
	} else {
		checks["database"] = map[string]interface{}{"status": "healthy"}
	}

	checks["api_token"] = map[string]interface{}{"configured": rt.cfg.ApiKey.Value != ""}
	checks["places"] = map[string]interface{}{"configured": rt.cfg.Geocoding.GoogleMapsAPIKey != ""}
	checks["mail"] = map[string]interface{}{"enabled": rt.cfg.Mail.Enabled}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
