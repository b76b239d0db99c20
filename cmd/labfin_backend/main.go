package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	portsrepo "github.com/labvitta/labfin/internal/core/ports/repositories"
	"github.com/labvitta/labfin/internal/core/services"
	"github.com/labvitta/labfin/internal/handlers"
	"github.com/labvitta/labfin/internal/middleware"
	"github.com/labvitta/labfin/internal/platform/config"
	"github.com/labvitta/labfin/internal/repositories/memory"
)

// @title LabFin Backend API
// @version 1.0
// @description Financial back-office engine for check lifecycle, payables and visit ledgers.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// In-memory adapters hold the authoritative state for the engine.
	repos := portsrepo.RepositoryProvider{
		CheckRepo:   memory.NewCheckRepository(),
		AccountRepo: memory.NewAccountRepository(),
		LedgerRepo:  memory.NewVisitLedgerRepository(),
	}
	serviceContainer := services.NewServiceContainer(repos)

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Actor", "X-Request-ID")
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	r.Use(middleware.ActorMiddleware(cfg.DefaultActor))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to parse rate limit", slog.String("error", err.Error()))
		os.Exit(1)
	}
	limiterInstance := limiter.New(limitermemory.NewStore(), rate)
	r.Use(middleware.RateLimit(limiterInstance))

	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
