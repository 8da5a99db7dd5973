// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	bountyRouter "github.com/gitcodegud/backend/internal/bounty/router"
	"github.com/gitcodegud/backend/internal/config"
	"github.com/gitcodegud/backend/internal/database/database"
	"github.com/gitcodegud/backend/internal/database/migrate"
	"github.com/gitcodegud/backend/internal/github"
	"github.com/gitcodegud/backend/internal/health"
	"github.com/gitcodegud/backend/internal/middleware"
	skillRouter "github.com/gitcodegud/backend/internal/skill/router"
	statisticsRouter "github.com/gitcodegud/backend/internal/statistics/router"
	userRouter "github.com/gitcodegud/backend/internal/user/router"
	"github.com/gitcodegud/backend/pkg/logger"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zapLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	db, err := database.New()
	if err != nil {
		zapLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer database.Close(db) //nolint:errcheck

	if err := migrate.Migrate(db); err != nil {
		zapLogger.Fatalw("failed to apply migrations", "error", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Logger(zapLogger))
	r.Use(middleware.Recovery(zapLogger))
	r.Use(middleware.Auth(db))

	ghFactory := github.NewClientFactory(cfg.GitHub, zapLogger)

	healthHandler := health.New(db, zapLogger)
	r.GET("/health", healthHandler.Check)

	userRouter.RegisterRoutes(r, db, cfg.GitHub, ghFactory, zapLogger)
	skillRouter.RegisterRoutes(r, db, ghFactory, zapLogger)
	bountyRouter.RegisterRoutes(r, db, ghFactory, zapLogger)
	statisticsRouter.RegisterRoutes(r, db, zapLogger)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zapLogger.Infow("starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Errorw("forced shutdown", "error", err)
	}
}
