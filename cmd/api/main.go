package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mediaapi/internal/config"
	"mediaapi/internal/database"
	"mediaapi/internal/database/migration"
	handlers "mediaapi/internal/http/handler"
	"mediaapi/internal/http/middleware"
	"mediaapi/internal/otel"
	"mediaapi/internal/repository/postgres"
	"mediaapi/internal/service"
	"mediaapi/internal/storage"
	"mediaapi/internal/transcode"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Tracing is optional: a broken collector must not keep media off the shelf
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Printf("tracing disabled: %v", err)
	} else {
		defer shutdownTracing(context.Background())
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	encoder := transcode.NewFFmpeg(cfg.Transcode.FFmpegPath, time.Duration(cfg.Transcode.TimeoutSec)*time.Second)

	// Initialize repositories and services
	mediaRepo := postgres.NewMediaPostgres(db)
	mediaSvc := service.NewMediaService(objStore, mediaRepo, encoder)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Room for the largest allowed video plus multipart framing.
		BodyLimit: int(service.MaxVideoBytes) + (10 << 20),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, db, mediaSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
