// file: cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidhub/internal/cache"
	"vidhub/internal/config"
	"vidhub/internal/database"
	"vidhub/internal/media"
	"vidhub/internal/repositories"
	"vidhub/internal/router"
	"vidhub/internal/services"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := initLogger(&cfg.Logging)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting server",
		zap.String("environment", cfg.Server.Environment),
		zap.String("addr", cfg.Server.Addr()),
	)

	db, err := database.NewManager(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	logger.Info("Database ready")

	c := newCache(cfg, logger)
	defer c.Close()

	storage, err := media.New(&cfg.Cloudinary, logger)
	if err != nil {
		logger.Fatal("Failed to initialize media storage", zap.Error(err))
	}

	repos := repositories.NewCollection(db, logger)
	sc := services.NewServiceCollection(repos, c, storage, cfg, logger)
	handler := router.New(sc, db, c, cfg, logger)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	logger.Info("Server stopped")
}

// newCache prefers Redis, falling back to the in-process cache when Redis
// is unreachable or unconfigured.
func newCache(cfg *config.Config, logger *zap.Logger) cache.Cache {
	if cfg.Redis.Addr != "" {
		c, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err == nil {
			return c
		}
		logger.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
	}
	return cache.NewMemoryCache()
}

func initLogger(cfg *config.LoggingConfig) (*zap.Logger, error) {
	if cfg.Development {
		return zap.NewDevelopment()
	}
	zapCfg := zap.NewProductionConfig()
	if level, err := zap.ParseAtomicLevel(cfg.Level); err == nil {
		zapCfg.Level = level
	}
	return zapCfg.Build()
}
