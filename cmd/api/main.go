package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizmaster/internal/adapter"
	"quizmaster/internal/adapter/quizgen"
	"quizmaster/internal/cache"
	"quizmaster/internal/config"
	"quizmaster/internal/domain"
	"quizmaster/internal/handler"
	"quizmaster/internal/logger"
	"quizmaster/internal/middleware"
	"quizmaster/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	// A missing .env file is fine; variables may come from the environment.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Missing credentials are a fatal configuration error: nothing works
	// without the model, so fail here rather than per request.
	completer, err := quizgen.NewGeminiCompleter(cfg.LLM, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create Gemini completer", zap.Error(err))
	}

	provider, err := quizgen.NewGeminiQuestionProvider(completer, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create question provider", zap.Error(err))
	}

	// The question-set cache is optional; without Redis every quiz is a
	// fresh generation.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Question cache enabled", zap.String("redis_address", cfg.Redis.Address))
	} else {
		appLogger.Info("Question cache disabled, REDIS_ADDRESS not set")
	}

	quizService := service.NewQuizService(provider, cacheAdapter, cfg)
	quizHandler := handler.NewQuizHandler(quizService)
	healthHandler := handler.NewHealthHandler(cacheAdapter)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/health", healthHandler.Health)
	api := app.Group("/api")
	quizHandler.RegisterRoutes(api)

	// Graceful shutdown on SIGINT/SIGTERM.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		appLogger.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			appLogger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	address := fmt.Sprintf(":%d", cfg.Server.Port)
	appLogger.Info("Starting server", zap.String("address", address))
	if err := app.Listen(address); err != nil {
		appLogger.Fatal("Server stopped unexpectedly", zap.Error(err))
	}
}
