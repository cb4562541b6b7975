// @title StudyAid Quiz API
// @version 1.0
// @description Quiz generation and grading API for the StudyAid application.
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

	"studyaid/internal/adapter"
	"studyaid/internal/adapter/quizgen"
	"studyaid/internal/cache"
	"studyaid/internal/config"
	"studyaid/internal/database"
	"studyaid/internal/handler"
	"studyaid/internal/logger"
	"studyaid/internal/middleware"
	"studyaid/internal/repository"
	"studyaid/internal/service"
	"studyaid/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger logs every HTTP request with its duration and status.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
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
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// A missing API key is reported per request, not at startup, so the
	// read endpoints stay available without credentials.
	generator, err := quizgen.NewOpenAIQuizGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Successfully connected to Oracle database")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	courseRepository := repository.NewCourseDatabaseAdapter(db)
	quizRepository := repository.NewQuizDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	generationService := service.NewQuizGenerationService(courseRepository, quizRepository, generator, txManager)
	submissionService := service.NewQuizSubmissionService(quizRepository, txManager, validation.NewValidator(), cacheAdapter)
	readerService := service.NewQuizReaderService(quizRepository, cacheAdapter, cfg.Cache.QuizDetailTTL)

	quizHandler := handler.NewQuizHandler(generationService, submissionService, readerService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")
	apiGroup.Post("/courses/:courseId/quiz", quizHandler.GenerateQuiz)
	apiGroup.Get("/courses/:courseId/quizzes", quizHandler.ListQuizzes)
	apiGroup.Get("/quizzes/:quizId", quizHandler.GetQuiz)
	apiGroup.Post("/quizzes/:quizId/submit", quizHandler.SubmitQuiz)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port))
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
