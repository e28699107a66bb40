package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rishav-026/Gamified-Coding-platform/internal/bootstrap"
	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/config"
	"github.com/rishav-026/Gamified-Coding-platform/internal/database"
	"github.com/rishav-026/Gamified-Coding-platform/internal/server"
	"github.com/rishav-026/Gamified-Coding-platform/internal/sse"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("codequest: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.LogDir == "" {
		initLogger(cfg)
	} else {
		logFile, err := bootstrap.SetupLogger(cfg)
		if err != nil {
			return err
		}
		defer logFile.Close()
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		// env vars may come from the orchestrator without a schema version
		slog.Warn("Environment validation failed", "error", err)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{
		MaxConns: cfg.DBMaxConns,
		MaxIdle:  cfg.DBMaxConnIdleTime,
		MaxLife:  cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator := database.NewMigrator(pool)
	if err := migrator.Up(ctx); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	_ = migrator.Close()

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(pool)
	hub := sse.NewHub()

	app, err := bootstrap.InitializeServices(ctx, bootstrap.ServiceDependencies{
		Config:       cfg,
		Repositories: repos,
		Catalog:      cat,
		Publisher:    publisher,
		Hub:          hub,
		Clock:        clock.NewReal(),
	})
	if err != nil {
		return err
	}

	closeDiscord, err := bootstrap.RegisterEventHandlers(ctx, bootstrap.EventHandlerDependencies{
		EventBus:            bus,
		UserService:         app.Services.Users,
		LeaderboardService:  app.Services.Leaderboard,
		NotificationService: app.Services.Notifications,
		UserRepository:      repos.User,
		Hub:                 hub,
		Config:              cfg,
	})
	if err != nil {
		return err
	}

	srv := server.NewServer(server.Options{
		Port:        cfg.Port,
		AdminAPIKey: cfg.AdminAPIKey,
		CORSOrigins: cfg.CORSOrigins,
	}, pool, app.Services)

	hub.Start()
	app.ReminderWorker.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
			Server:             srv,
			ReminderWorker:     app.ReminderWorker,
			Hub:                hub,
			CloseDiscord:       closeDiscord,
			ResilientPublisher: publisher,
		})
		return nil
	})

	return g.Wait()
}
