package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fmt"

	"github.com/redis/go-redis/v9"

	"serene-banners/internal/adapter/capstore"
	httpadapter "serene-banners/internal/adapter/http"
	"serene-banners/internal/adapter/postgres"
	"serene-banners/internal/adapter/usecase"
	"serene-banners/internal/config"
	"serene-banners/internal/core/domain"
	"serene-banners/internal/core/port"
	"serene-banners/internal/db"
)

// main is the entry point of the banner engine. It loads configuration,
// optionally runs database migrations, initializes the database pool, the
// frequency-cap store and the repositories, then starts the HTTP server.
// On receiving a termination signal it gracefully shuts down the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	// Fail fast if the destination catalog is incomplete: every kind in the
	// closed enum must have a registered handler.
	if err = domain.ValidateCatalog(); err != nil {
		logger.Error("destination catalog invalid", slog.Any("error", err))
		os.Exit(1)
	}

	// Optionally run migrations if configured. We use the Psql sub‑config.
	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.SeedDemo {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo data seeded")
		}
	}

	var caps port.CapStore
	switch cfg.Cap.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err = client.Ping(ctx).Err(); err != nil {
			logger.Error("redis connection error", slog.Any("error", err))
			os.Exit(1)
		}
		defer client.Close()
		caps = capstore.NewRedis(client)
	case "sqlite":
		store, err := capstore.NewSQLite(cfg.Cap.SQLitePath)
		if err != nil {
			logger.Error("cap store error", slog.Any("error", err))
			os.Exit(1)
		}
		defer store.Close()
		caps = store
	default:
		caps = capstore.NewMemory()
	}
	logger.Info("cap store ready", slog.String("driver", cfg.Cap.Driver))

	repo := postgres.NewBannerRepository(pool)
	svc := usecase.NewBannerUseCase(repo, caps, logger)

	handler := httpadapter.NewHandler(svc, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
