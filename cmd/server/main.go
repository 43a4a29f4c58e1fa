package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/post-engagement-api/internal/api"
	"github.com/post-engagement-api/internal/config"
	"github.com/post-engagement-api/internal/database"
	"github.com/post-engagement-api/internal/repository"
	"github.com/post-engagement-api/internal/service"
	"github.com/post-engagement-api/pkg/logger"
)

const appVersion = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "post-engagement-api",
		Short:        "Posts, comments, replies and engagement reports over HTTP",
		Version:      appVersion,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log)
		},
	}
	cmd.AddCommand(newMigrateCmd())
	return cmd
}

// bootstrap loads configuration and builds the process logger
func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logger.New(cfg.Log), nil
}

func banner(cfg *config.Config) {
	fmt.Printf("%s v%s\n", color.New(color.FgHiCyan).Add(color.Bold).Sprint("Post Engagement API"), appVersion)
	fmt.Printf("  storage %s, listening on :%s\n", color.GreenString(cfg.Storage.Driver), cfg.Server.Port)
}

// store is an opened persistence backend
type store struct {
	repos      *repository.Repositories
	health     api.HealthChecker
	collectors []prometheus.Collector
	close      func()
}

// openStore connects the configured backend and prepares its schema
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		m, err := database.NewMongo(ctx, &cfg.Mongo, log)
		if err != nil {
			return nil, err
		}
		if err := m.EnsureIndexes(ctx); err != nil {
			_ = m.Close(context.Background())
			return nil, err
		}
		return &store{
			repos:  repository.NewMongo(m),
			health: m,
			close:  func() { _ = m.Close(context.Background()) },
		}, nil

	default:
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			db.Close()
			return nil, err
		}
		return &store{
			repos:      repository.New(db),
			health:     db,
			collectors: []prometheus.Collector{db.StatsCollector(cfg.Database.Name)},
			close:      func() { db.Close() },
		}, nil
	}
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	banner(cfg)
	log.Info().Str("storage", cfg.Storage.Driver).Msg("Starting Post Engagement API server...")

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open storage")
		return err
	}
	defer st.close()

	if cfg.Cache.Enabled {
		cached, err := repository.NewCachedUserRepo(st.repos.User, cfg.Cache, log)
		if err != nil {
			return err
		}
		st.repos.User = cached
		log.Info().Int64("max_items", cfg.Cache.MaxItems).Dur("ttl", cfg.Cache.TTL).Msg("User cache enabled")
	}

	services := service.NewServices(st.repos, cfg, log)
	router := api.NewRouter(services, cfg, log, st.health, st.collectors...)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		log.Error().Err(err).Msg("Server failed")
		return err
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
