package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/estatewave/inquiry-service/internal/cache"
	"github.com/estatewave/inquiry-service/internal/config"
	"github.com/estatewave/inquiry-service/internal/domain"
	"github.com/estatewave/inquiry-service/internal/events"
	"github.com/estatewave/inquiry-service/internal/handler"
	"github.com/estatewave/inquiry-service/internal/hub"
	"github.com/estatewave/inquiry-service/internal/repository"
	"github.com/estatewave/inquiry-service/internal/service"
	"github.com/estatewave/inquiry-service/pkg/database"
	"github.com/estatewave/inquiry-service/pkg/jwt"
	"github.com/estatewave/inquiry-service/pkg/log"
	"github.com/estatewave/inquiry-service/pkg/middleware"
)

func main() {
	configPath := flag.String("config", "./config", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath, "config")
	if err != nil {
		l := log.L()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Init(cfg.Log)
	logger := log.L()
	logger.Info().Str("addr", cfg.Server.Addr()).Msg("starting inquiry service")

	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.AutoMigrate(db,
		&domain.InquiryModel{},
		&domain.InquiryMessageModel{},
		&domain.NotificationModel{},
		&domain.UserModel{},
		&domain.AgentModel{},
		&domain.PropertyModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	var dirCache *cache.RedisDirectoryCache
	if cfg.Cache.Enabled {
		dirCache, err = cache.NewRedisDirectoryCache(cfg.Cache.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer dirCache.Close()
		logger.Info().Str("addr", cfg.Cache.Redis.Address).Msg("directory cache enabled")
	}

	inquiryRepo := repository.NewGormInquiryRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)
	directoryRepo := repository.NewGormDirectoryRepository(db)

	registry := hub.NewRegistry(cfg.Stream.Buffer)
	publisher := events.NewPublisher(registry, notificationRepo)

	inquirySvc := service.NewInquiryService(inquiryRepo, directoryRepo, publisher, dirCache)
	notificationSvc := service.NewNotificationService(notificationRepo)
	listingSvc := service.NewListingService(directoryRepo, publisher, dirCache)

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Duration, cfg.JWT.Issuer)
	auth := middleware.NewAuthMiddleware(tokens)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(log.GinMiddleware(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	handler.NewHTTPHandler(inquirySvc, notificationSvc, listingSvc).RegisterRoutes(api, auth)
	handler.NewStreamHandler(registry, auth, cfg.Websocket, cfg.Stream.IdleTimeout).RegisterRoutes(api)

	server := &http.Server{
		Addr:        cfg.Server.Addr(),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("stopped")
}
