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

	"github.com/spf13/cobra"
	_ "github.com/usermodel/backend/docs"
	"github.com/usermodel/backend/internal/database"
	"github.com/usermodel/backend/internal/handlers"
	"github.com/usermodel/backend/internal/logger"
	"github.com/usermodel/backend/internal/seed"
	"go.uber.org/zap"
)

func newServeCommand() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runServer(ctx, skipMigrations)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on start")
	return cmd
}

func runServer(ctx context.Context, skipMigrations bool) error {
	a, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Logger.Info("Starting usermodel service")

	if !skipMigrations {
		if err := database.MigrateUp(ctx, a.cfg.MigrationDSN(), a.cfg.Migrations.Path, logger.Logger); err != nil {
			return err
		}
	}

	svc := newServices(a.db, logger.Logger)

	if a.cfg.SeedData {
		if _, err := seed.NewSeeder(svc.roles, svc.users, logger.Logger).Run(ctx); err != nil {
			return err
		}
	}

	router := handlers.NewRouter(handlers.RouterOptions{
		Logger:             logger.Logger,
		AllowedOrigins:     a.cfg.CORS.AllowedOrigins,
		RateLimitPerMinute: a.cfg.Server.RateLimitPerMinute,
		MaxRequestSize:     a.cfg.Server.MaxRequestSize,
		DB:                 a.db,
		Users:              svc.users,
		Roles:              svc.roles,
		Useremails:         svc.useremails,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", a.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-quit:
	case <-ctx.Done():
	}

	logger.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Logger.Info("Server exited")
	return nil
}
