package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/marcuspimenta/bestv/internal/browse"
	"github.com/marcuspimenta/bestv/internal/config"
	"github.com/marcuspimenta/bestv/internal/database"
	"github.com/marcuspimenta/bestv/internal/handler"
	"github.com/marcuspimenta/bestv/internal/logging"
	"github.com/marcuspimenta/bestv/internal/middleware"
	"github.com/marcuspimenta/bestv/internal/repository"
	"github.com/marcuspimenta/bestv/internal/service"
	"github.com/marcuspimenta/bestv/internal/tmdb"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Structured logging
	appLogger, logCloser := logging.New(cfg.Log)
	slog.SetDefault(appLogger)
	defer logCloser.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Connect to PostgreSQL
	db, err := database.NewPostgres(ctx, cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	var rdb *redis.Client
	if client, err := database.NewRedis(ctx, cfg.Redis); err != nil {
		slog.Warn("Redis unavailable, running without cache and rate limiting", "error", err)
	} else {
		rdb = client
		defer rdb.Close()
	}

	// Initialize layers
	tmdbClient := tmdb.NewClient(cfg.TMDB)
	works := repository.NewWorkRepository(tmdbClient, rdb, cfg.Cache)
	favoriteRepo := repository.NewFavoriteRepository(db)

	catalog := service.NewCatalogService(works, favoriteRepo, service.CatalogOptions{
		Region: cfg.TMDB.Region,
		FanOut: cfg.Browse.FanOut,
	})
	favorites := service.NewFavoriteService(favoriteRepo, works, cfg.Browse.FavoritePageLen)
	screens := browse.NewRegistry(catalog, favorites, cfg.Browse)

	checks := map[string]handler.HealthChecker{"postgres": db.PingContext}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "bestv Catalog Service",
		ServerHeader: "Catalog-Service",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middleware.AuthMiddleware("/api/v1/health", "/swagger"))
	app.Use(middleware.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window).Handler())

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// API routes
	api := app.Group("/api/v1")
	api.Get("/health", handler.NewHealthHandler(checks).Health)
	handler.NewCatalogHandler(catalog).Register(api)
	handler.NewFavoriteHandler(favorites).Register(api)
	handler.NewScreenHandler(screens).Register(api)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down catalog service...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting catalog service", "addr", addr, "screens_max", cfg.Browse.MaxScreens)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
