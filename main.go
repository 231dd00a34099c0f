package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/classroom-intro-service/internal/config"
	"github.com/SAP-F-2025/classroom-intro-service/internal/events"
	"github.com/SAP-F-2025/classroom-intro-service/internal/handlers"
	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
	pgrepo "github.com/SAP-F-2025/classroom-intro-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/classroom-intro-service/internal/services"
	"github.com/SAP-F-2025/classroom-intro-service/internal/sessions"
	"github.com/SAP-F-2025/classroom-intro-service/internal/validator"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey, which the services key their behavior on.
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	repo := pgrepo.NewPostgreSQLRepository(pgrepo.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})

	sessionStore := sessions.NewStore(redisClient, cfg.SessionTTL)

	// In-process event bus: publishes survive only as long as the process,
	// which is all the activity log needs.
	pubSub := events.NewGoChannelPubSub(logger)
	publisher := events.NewWatermillPublisher(pubSub)

	busCtx, stopBus := context.WithCancel(context.Background())
	defer stopBus()
	go func() {
		if err := events.RunActivityLogger(busCtx, pubSub, logger); err != nil {
			logger.Error("Activity logger stopped", "error", err)
		}
	}()

	v := validator.New()
	serviceManager := services.NewServiceManager(db, repo, logger, v, publisher)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router)
	router.LoadHTMLGlob("templates/*.html")

	handlerManager := handlers.NewHandlerManager(serviceManager, sessionStore, v, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.AppPort, "environment", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	stopBus()
	if err := publisher.Close(); err != nil {
		log.Printf("Failed to close event publisher: %v", err)
	}

	if err := repo.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Printf("Failed to close Redis: %v", err)
	}

	logger.Info("Server exited")
}
