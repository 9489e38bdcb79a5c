package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/folio/internal/cache"
	"github.com/folio/internal/config"
	"github.com/folio/internal/db"
	"github.com/folio/internal/handler"
	"github.com/folio/internal/logging"
	"github.com/folio/internal/router"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

func main() {
	cfg := config.Load()

	log, err := logging.New(cfg.LogLevel, cfg.IsDev())
	if err != nil {
		log, _ = zap.NewProduction()
		log.Warn("invalid LOG_LEVEL, falling back to info", zap.Error(err))
	}
	defer log.Sync()

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	dbLevel := logger.Warn
	if cfg.IsDev() {
		dbLevel = logger.Info
	}
	gdb, err := db.Init(db.Options{
		Driver:   cfg.DatabaseDriver,
		Path:     cfg.DatabasePath,
		DSN:      cfg.DatabaseDSN,
		LogLevel: dbLevel,
	})
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	postOpts := []service.PostServiceOption{service.WithPostLogger(log)}
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rc, err := cache.Connect(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Warn("redis unavailable, post list cache disabled", zap.Error(err))
		} else {
			defer rc.Close()
			postOpts = append(postOpts, service.WithPostCache(rc, cfg.CacheTTL))
			log.Info("post list cache enabled", zap.Duration("ttl", cfg.CacheTTL))
		}
	}

	api := handler.NewAPI(
		service.NewPostService(gdb, postOpts...),
		service.NewContactService(gdb),
		handler.WithLogger(log),
		handler.WithSite(handler.SiteInfo{
			Name:            cfg.SiteName,
			ContactEmail:    cfg.ContactEmail,
			ContactLocation: cfg.ContactLocation,
		}),
	)

	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: router.SetupRouter(router.Options{
			API:            api,
			Logger:         log,
			SessionSecret:  cfg.SessionSecret,
			AllowedOrigins: cfg.AllowedOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("database", cfg.DatabaseDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("server exited")
}
