// Package database opens the MySQL connection pool and applies schema migrations
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// MigrationsTable keeps this service's migration history apart from other schemas in the same database
const MigrationsTable = "usermodel_schema_migrations"

// Connect opens a MySQL connection pool and checks it is reachable
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// MigrateUp applies every pending migration found at path.
// It runs over its own connection opened from dsn, which must allow multi-statement queries.
func MigrateUp(ctx context.Context, dsn, path string, logger *zap.Logger) error {
	return withMigrate(ctx, dsn, path, logger, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return nil
	})
}

// MigrateDown rolls back the given number of migrations over its own connection opened from dsn
func MigrateDown(ctx context.Context, dsn, path string, steps int, logger *zap.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	return withMigrate(ctx, dsn, path, logger, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to roll back migrations: %w", err)
		}
		return nil
	})
}

// withMigrate opens a short-lived connection for run and closes it afterwards
func withMigrate(ctx context.Context, dsn, path string, logger *zap.Logger, run func(*migrate.Migrate) error) error {
	db, err := Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect for migrations: %w", err)
	}
	defer db.Close()

	m, err := newMigrate(db, path)
	if err != nil {
		return err
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("failed to close migrate instance", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	if err := run(m); err != nil {
		return err
	}

	logVersion(m, logger)
	return nil
}

func newMigrate(db *sql.DB, path string) (*migrate.Migrate, error) {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: MigrationsTable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(ResolveMigrationsPath(path), "mysql", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// ResolveMigrationsPath falls back to the parent directory when the relative
// file source does not exist, so the binary also works when started from cmd/
func ResolveMigrationsPath(path string) string {
	dir, ok := strings.CutPrefix(path, "file://")
	if !ok || strings.HasPrefix(dir, "/") {
		return path
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		parent := "../" + dir
		if _, err := os.Stat(parent); err == nil {
			return "file://" + parent
		}
	}
	return path
}

func logVersion(m *migrate.Migrate, logger *zap.Logger) {
	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("database schema is empty")
			return
		}
		logger.Warn("failed to read schema version", zap.Error(err))
		return
	}
	logger.Info("database schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
}
