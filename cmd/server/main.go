package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/auth"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/config"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/database"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/handlers"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/logger"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/middleware"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/repository"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var Version = "dev"

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "club-dues")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store, pool := openStore(cfg, log)
	if pool != nil {
		defer pool.Close()
	}

	if cfg.Auth.AdminPasswordHash == "" {
		log.Warn("ADMIN_PASSWORD_HASH not set, login is disabled")
	}

	opts := service.Options{
		DefaultAmount:      cfg.Dues.DefaultAmount,
		RegisterFirstMonth: cfg.Dues.RegisterFirstMonth,
	}

	gin.SetMode(cfg.HTTP.Mode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	handlers.RegisterRoutes(r, handlers.Dependencies{
		Students: service.NewStudentService(store, log, opts),
		Payments: service.NewPaymentService(store, log, opts),
		Admin:    auth.NewAdmin(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash),
		Tokens:   auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL),
		Store:    store,
		Logger:   log,
		Version:  Version,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTP.Port),
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("server starting",
			zap.String("port", cfg.HTTP.Port),
			zap.String("version", Version),
			zap.String("store", store.Name()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("server exited")
}

// openStore connects to Postgres when enabled and falls back to memory when it cannot
func openStore(cfg *config.Config, log *zap.Logger) (repository.Store, *pgxpool.Pool) {
	if !cfg.DBEnabled {
		log.Warn("database disabled, using in-memory store; data is lost on restart")
		return repository.NewMemoryStore(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, database.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		log.Warn("database unavailable, using in-memory store", zap.Error(err))
		return repository.NewMemoryStore(), nil
	}

	if cfg.Database.Migrate {
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			log.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	log.Info("connected to database")
	return repository.NewPostgresStore(pool), pool
}
