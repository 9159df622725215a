package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/usermodel/backend/internal/config"
	"github.com/usermodel/backend/internal/database"
	"github.com/usermodel/backend/internal/handlers"
	"github.com/usermodel/backend/internal/logger"
	"github.com/usermodel/backend/internal/repositories"
	"github.com/usermodel/backend/internal/services"
	"go.uber.org/zap"
)

// @title Usermodel API
// @version 1.0
// @description API for managing users, their roles and emails

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:2019
// @BasePath /
func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "usermodel",
		Short:         "User, role and email management service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newSeedCommand())
	return cmd
}

// app holds what every command needs once configuration is loaded
type app struct {
	cfg *config.Config
	db  *sql.DB
}

// loadConfig loads configuration and initializes the logger
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// setup loads configuration, initializes the logger and connects the application pool
func setup(ctx context.Context) (*app, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		logger.Sync()
		return nil, nil, err
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Logger.Warn("failed to close database", zap.Error(err))
		}
		logger.Sync()
	}
	return &app{cfg: cfg, db: db}, cleanup, nil
}

// serviceSet is the wired service layer
type serviceSet struct {
	users      handlers.UsersService
	roles      handlers.RolesService
	useremails handlers.UseremailsService
}

// newServices wires repositories into services
func newServices(db *sql.DB, log *zap.Logger) serviceSet {
	userRepo := repositories.NewUserRepository(db, log)
	roleService := services.NewRoleService(repositories.NewRoleRepository(db, log), log)

	return serviceSet{
		users:      services.NewUserService(userRepo, roleService, log),
		roles:      roleService,
		useremails: services.NewUseremailService(repositories.NewUseremailRepository(db, log), userRepo, log),
	}
}
