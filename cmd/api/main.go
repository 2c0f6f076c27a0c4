package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freightservices/quote-api/docs"
	"github.com/freightservices/quote-api/internal/auth"
	"github.com/freightservices/quote-api/internal/config"
	"github.com/freightservices/quote-api/internal/database"
	"github.com/freightservices/quote-api/internal/geo"
	"github.com/freightservices/quote-api/internal/geocode"
	"github.com/freightservices/quote-api/internal/http/handler"
	"github.com/freightservices/quote-api/internal/http/middleware"
	"github.com/freightservices/quote-api/internal/http/router"
	"github.com/freightservices/quote-api/internal/jobs"
	"github.com/freightservices/quote-api/internal/logger"
	"github.com/freightservices/quote-api/internal/mail"
	"github.com/freightservices/quote-api/internal/pricing"
	"github.com/freightservices/quote-api/internal/repository"
	"github.com/freightservices/quote-api/internal/service"
	"go.uber.org/zap"
)

// @title FSI Quote API
// @version 1.0
// @description Freight quote pricing for hotshot and air shipments

// @contact.name API Support
// @contact.email it@freightservices.net

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Shared API token, bare or as a Bearer value

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Basic configuration first, for logging setup
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "quote-api-staging.freightservices.net"
	case "production":
		docs.SwaggerInfo.Host = "quote-api.freightservices.net"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// In staging/production secrets come from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Repositories
	quoteRepo := repository.NewQuoteRepository(db)
	userRepo := repository.NewUserRepository(db)
	emailRequestRepo := repository.NewEmailQuoteRequestRepository(db)
	dispatchRepo := repository.NewEmailDispatchLogRepository(db)
	accessorialRepo := repository.NewAccessorialRepository(db)
	rateRepo := repository.NewRateRepository(db)
	coordRepo := repository.NewZipCoordinateRepository(db)

	// ZIP validation
	places := geocode.NewPlacesClient(cfg.Geocoding.BaseURL, cfg.Geocoding.TimeoutDuration(), log)
	zipValidator, err := geocode.NewZipValidator(places, cfg.Geocoding.GoogleMapsAPIKey, cfg.Geocoding.CacheSize, log)
	if err != nil {
		return fmt.Errorf("failed to create zip validator: %w", err)
	}
	if cfg.Geocoding.GoogleMapsAPIKey == "" {
		log.Warn("Google Maps API key not configured, ZIP codes are checked for format only")
	}

	// Pricing
	distance := geo.NewDistanceCalculator(coordRepo)
	hotshot := pricing.NewHotshotCalculator(rateRepo, distance)
	air := pricing.NewAirCalculator(rateRepo, log)

	// Services
	catalog := service.NewAccessorialCatalog(accessorialRepo, log)
	airTables := service.NewAirTableChecker(rateRepo, log)
	quoteService := service.NewQuoteService(
		quoteRepo,
		userRepo,
		emailRequestRepo,
		dispatchRepo,
		zipValidator,
		catalog,
		airTables,
		hotshot,
		air,
		log,
	)
	quoteService.SetMailSender(mail.NewSMTPSender(&cfg.Mail, log), cfg.Mail)
	log.Info("Quote email", zap.Bool("enabled", cfg.Mail.Enabled), zap.String("smtp_host", cfg.Mail.Host))

	rateSetService := service.NewRateSetService(rateRepo, log)
	cacheService := service.NewCacheService(catalog, airTables, zipValidator, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	quoteHandler := handler.NewQuoteHandler(quoteService, catalog, log)
	emailHandler := handler.NewEmailHandler(quoteService, log)
	adminHandler := handler.NewAdminHandler(rateSetService, cacheService, log)
	authHandler := handler.NewAuthHandler(userRepo, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		quoteHandler,
		emailHandler,
		adminHandler,
		authHandler,
	)

	// Periodic cache refresh picks up reference table edits made outside the API
	var scheduler *jobs.Scheduler
	if cfg.Jobs.CacheRefreshEnabled {
		scheduler = jobs.NewScheduler(log)

		warm := func(ctx context.Context) error {
			_, err := catalog.Get(ctx)
			return err
		}
		if err := jobs.RegisterCacheRefreshJob(scheduler, cacheService, warm, log, cfg.Jobs.CacheRefreshCron); err != nil {
			log.Error("Failed to register cache refresh job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with cache refresh job",
				zap.String("cron_expr", cfg.Jobs.CacheRefreshCron),
			)
		}
	} else {
		log.Info("Cache refresh job disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			stopCtx := scheduler.Stop()
			<-stopCtx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("Error closing database connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
