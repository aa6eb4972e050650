package migration

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Runner applies schema migrations from a file source against postgres.
type Runner struct {
	migrationsPath string
	databaseURL    string
	logger         *slog.Logger
}

// NewRunner creates a new migration runner
func NewRunner(migrationsPath, databaseURL string, logger *slog.Logger) *Runner {
	return &Runner{
		migrationsPath: migrationsPath,
		databaseURL:    databaseURL,
		logger:         logger,
	}
}

// Up runs all pending migrations
func (r *Runner) Up() error {
	m, err := migrate.New("file://"+r.migrationsPath, r.databaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info("no new migrations to run")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	r.logger.Info("migrations completed", "version", version, "dirty", dirty)
	return nil
}

// Down rolls back the last applied migration
func (r *Runner) Down() error {
	m, err := migrate.New("file://"+r.migrationsPath, r.databaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	r.logger.Info("rolled back one migration")
	return nil
}
