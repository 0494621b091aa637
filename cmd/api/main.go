package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"resume-screener/internal/config"
	"resume-screener/internal/handlers"
	"resume-screener/internal/logger"
	"resume-screener/internal/repositories"
	"resume-screener/internal/services"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Server.LogJSON, cfg.Server.LogDebug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("config loaded", zap.String("env", cfg.Server.Env))

	// Storage for queued documents; session-lifetime only.
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zlog.Fatal("failed to create upload directory", zap.Error(err))
	}

	sessionRepo := repositories.NewSessionRepository()
	queueService := services.NewQueueService(storageService, cfg.Storage.MaxFileSize, zlog)

	screeningClient := services.NewScreeningClient(cfg.Screening.BaseURL, cfg.Screening.Timeout, zlog)
	aggregator := services.NewResultAggregator()
	submitter := services.NewBatchSubmitter(screeningClient, aggregator, zlog)
	comparisonEngine := services.NewComparisonEngine()

	worker := services.NewBatchWorker(submitter, cfg.Worker.Concurrency, cfg.Worker.QueueDepth, zlog)
	worker.Start(context.Background())

	sessionHandler := handlers.NewSessionHandler(sessionRepo, queueService, screeningClient)
	queueHandler := handlers.NewQueueHandler(sessionRepo, queueService)
	batchHandler := handlers.NewBatchHandler(sessionRepo, worker)
	comparisonHandler := handlers.NewComparisonHandler(sessionRepo, comparisonEngine)
	exportHandler := handlers.NewExportHandler(sessionRepo)

	app := fiber.New(fiber.Config{
		AppName:      "Resume Screening Workflow API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * (services.MaxBatchSize + 1),
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	app.Get("/metrics", func(c *fiber.Ctx) error {
		metricsHandler(c.Context())
		return nil
	})

	api.Post("/sessions", sessionHandler.HandleCreateSession)
	api.Get("/sessions/:id", sessionHandler.HandleGetSession)
	api.Delete("/sessions/:id", sessionHandler.HandleDeleteSession)
	api.Post("/sessions/:id/job", sessionHandler.HandleAnalyzeJob)

	api.Post("/sessions/:id/documents", queueHandler.HandleAddDocuments)
	api.Delete("/sessions/:id/documents/:docID", queueHandler.HandleRemoveDocument)
	api.Delete("/sessions/:id/documents", queueHandler.HandleClearQueue)

	api.Post("/sessions/:id/process", batchHandler.HandleStartProcessing)
	api.Get("/sessions/:id/results", batchHandler.HandleGetResults)
	api.Get("/sessions/:id/results/:filename", batchHandler.HandleGetCandidate)

	api.Post("/sessions/:id/comparison", comparisonHandler.HandleOpenComparison)
	api.Get("/sessions/:id/comparison", comparisonHandler.HandleGetComparison)
	api.Delete("/sessions/:id/comparison", comparisonHandler.HandleCloseComparison)
	api.Post("/sessions/:id/comparison/candidates", comparisonHandler.HandleAddCandidate)
	api.Delete("/sessions/:id/comparison/candidates/:filename", comparisonHandler.HandleRemoveCandidate)

	api.Get("/sessions/:id/export", exportHandler.HandleExport)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Screening Workflow API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/sessions",
				"POST /api/v1/sessions/:id/job",
				"POST /api/v1/sessions/:id/documents",
				"POST /api/v1/sessions/:id/process",
				"GET /api/v1/sessions/:id/results",
				"POST /api/v1/sessions/:id/comparison",
				"GET /api/v1/sessions/:id/export",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
