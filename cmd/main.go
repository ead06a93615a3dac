package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	configs "github.com/greenhouse-labs/catalog/config"
	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/internal/handler"
	"github.com/greenhouse-labs/catalog/internal/middleware"
	"github.com/greenhouse-labs/catalog/internal/repository"
	"github.com/greenhouse-labs/catalog/internal/router"
	"github.com/greenhouse-labs/catalog/internal/service"
	"github.com/greenhouse-labs/catalog/pkg/cache"
	"github.com/greenhouse-labs/catalog/pkg/database"
	"github.com/greenhouse-labs/catalog/pkg/logger"
	"github.com/greenhouse-labs/catalog/pkg/metrics"
	"github.com/greenhouse-labs/catalog/pkg/redis"
	"github.com/greenhouse-labs/catalog/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const refreshTokenCleanupInterval = time.Hour

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	if config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validation.RegisterGinValidations(); err != nil {
		logger.GetLogger().Fatal("Failed to register validators", zap.Error(err))
	}

	db, err := database.Open(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if config.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
		}
		if err := database.CreateIndexes(startupCtx, db); err != nil {
			logger.GetLogger().Warn("Failed to create indexes", zap.Error(err))
		}
		logger.GetLogger().Info("Database migrated successfully")
	}

	if err := database.Seed(startupCtx, db, config.Seed); err != nil {
		// Not fatal: the admin may exist under another email.
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
	}

	redisClient, err := redis.NewClient(config)
	if err != nil {
		logger.GetLogger().Warn("Redis unavailable, using in-process cache", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	localCache := cache.NewCache(time.Minute)
	defer localCache.Close()

	metricsStore := metrics.NewMetricsStore()
	if sqlDB, err := db.DB(); err == nil {
		metricsStore.RegisterCollector(collectors.NewDBStatsCollector(sqlDB, config.Database.Driver))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db, metricsStore)
	categoryRepo := repository.NewCategoryRepository(db, metricsStore)
	plantRepo := repository.NewPlantRepository(db, metricsStore)
	favoriteRepo := repository.NewFavoriteRepository(db, metricsStore)

	// Services
	cacheService := service.NewCacheService(redisClient, localCache, config.Redis.CacheTTL)
	jwtService := service.NewJWTService(config.JWT)
	userService := service.NewUserService(userRepo, jwtService, config.Query)
	categoryService := service.NewCategoryService(categoryRepo, plantRepo, cacheService, config.Query)
	plantService := service.NewPlantService(plantRepo, categoryRepo, cacheService, config.Query)
	favoriteService := service.NewFavoriteService(favoriteRepo, plantService, config.Query)

	validationMiddleware, err := middleware.NewValidationMiddleware()
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize validation middleware", zap.Error(err))
	}
	jwtMiddleware := middleware.NewJWTMiddleware(jwtService, userRepo)

	engine := router.NewRouter(
		router.Handlers{
			User:     handler.NewUserHandler(userService),
			Auth:     handler.NewAuthHandler(userService),
			Category: handler.NewCategoryHandler(categoryService),
			Plant:    handler.NewPlantHandler(plantService),
			Favorite: handler.NewFavoriteHandler(favoriteService),
			Health:   handler.NewHealthHandler(db, redisClient, constants.AppVersion),
		},
		validationMiddleware,
		jwtMiddleware,
		metricsStore,
		config,
	).SetupRoutes()

	server := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.GetLogger().Info("Server starting", zap.String("port", config.App.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(refreshTokenCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if _, err := userRepo.CleanupExpiredRefreshTokens(gctx); err != nil {
					logger.GetLogger().Warn("Refresh token cleanup failed", zap.Error(err))
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.GetLogger().Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.App.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.GetLogger().Error("Server stopped with error", zap.Error(err))
		return
	}
	logger.GetLogger().Info("Server stopped")
}
