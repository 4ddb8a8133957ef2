// @title BrainBurst API
// @version 1.0
// @description Diplomacy trivia question bank and quiz API.
// @host localhost:8080
// @BasePath /api
// @schemes http
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"brainburst/internal/adapter"
	"brainburst/internal/adapter/trivia"
	"brainburst/internal/cache"
	"brainburst/internal/config"
	"brainburst/internal/domain"
	"brainburst/internal/handler"
	"brainburst/internal/logger"
	"brainburst/internal/middleware"
	"brainburst/internal/repository"
	"brainburst/internal/service"
	"brainburst/internal/validation"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// The cache is optional; without Redis the trivia proxy hits
	// opentdb.com on every request.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Redis cache initialized")
	} else {
		appLogger.Warn("Redis is not configured. Running without cache.")
	}

	// The bank adapter reloads the file when its mtime changes, so
	// questions added by the refresh pipeline show up without a restart.
	bank := repository.NewBankFileAdapter(cfg.Bank.File)

	quizService := service.NewQuizService(bank, validation.NewValidator())
	triviaProvider := trivia.NewOpenTDBProvider(trivia.DefaultOpenTDBBaseURL, cacheAdapter, cfg.Redis.TTL, appLogger)
	triviaService := service.NewTriviaService(triviaProvider, trivia.NewStaticProvider())

	quizHandler := handler.NewQuizHandler(quizService, triviaService)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	api := app.Group("/api")
	api.Get("/categories", quizHandler.GetCategories)
	api.Get("/quiz/round", quizHandler.GetRound)
	api.Post("/quiz/check", quizHandler.CheckAnswer)
	api.Get("/bank/stats", quizHandler.GetBankStats)
	api.Get("/trivia", quizHandler.GetTrivia)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.AppEnv))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
