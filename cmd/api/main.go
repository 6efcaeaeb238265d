// @title Quizcraft API
// @version 1.0
// @description Generates multiple-choice quizzes from source text with a language model.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizcraft/internal/adapter"
	"quizcraft/internal/adapter/quizgen"
	"quizcraft/internal/cache"
	"quizcraft/internal/config"
	"quizcraft/internal/database"
	"quizcraft/internal/domain"
	"quizcraft/internal/handler"
	"quizcraft/internal/logger"
	"quizcraft/internal/repository"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"
	"quizcraft/web"

	_ "quizcraft/cmd/api/docs"

	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Connect to database
	db, err := database.Open(ctx, cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err), zap.String("driver", cfg.DB.Driver))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, cfg.DB.Driver); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Rate-limit counters live in Redis when configured, in memory otherwise.
	var counterStore domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		redisAdapter := adapter.NewRedisCacheAdapter(redisClient)
		defer redisAdapter.Close()
		counterStore = redisAdapter
		appLogger.Info("Using Redis for rate limiting", zap.String("address", cfg.Redis.Address))
	} else {
		counterStore = adapter.NewMemoryCache()
		appLogger.Info("Using in-process memory for rate limiting")
	}

	generator, err := quizgen.NewFromConfig(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}
	appLogger.Info("Quiz generator initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model))

	// Initialize services
	quizService := service.NewQuizService(repository.NewQuizDatabaseAdapter(db), generator)
	limiter := service.NewRateLimiter(counterStore, cfg.RateLimit)
	if !limiter.Enabled() {
		appLogger.Warn("Rate limiting is disabled")
	}
	validator := validation.NewValidator(validation.Limits{
		MaxUploadBytes: cfg.Upload.MaxBytes,
		MaxInputChars:  cfg.Input.MaxChars,
	})

	// Initialize handlers
	webHandler := handler.NewWebHandler(quizService, limiter, validator)
	apiHandler := handler.NewAPIHandler(quizService, limiter, validator)
	healthHandler := handler.NewHealthHandler(map[string]handler.Pinger{
		"database": handler.PingFunc(db.PingContext),
		"cache":    counterStore,
	})

	app := handler.NewApp(cfg.Server, web.NewEngine())
	app.Get("/swagger/*", swagger.HandlerDefault)
	handler.RegisterRoutes(app, webHandler, apiHandler, healthHandler)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
