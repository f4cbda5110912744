package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var dialects = map[string]string{
	"sqlite": "sqlite3",
	"pgx":    "postgres",
}

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

func getDialect(driver string) string {
	dialect, ok := dialects[driver]
	if ok {
		return dialect
	}
	return driver
}

// withGoose runs fn with goose configured for driver and the embedded migrations.
func withGoose(driver string, fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	err := goose.SetDialect(getDialect(driver))
	if err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	return fn()
}

// RunMigrations applies every pending migration.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	return withGoose(driver, func() error {
		before, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("failed to read migration version: %w", err)
		}

		err = goose.UpContext(ctx, db, ".")
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		after, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("failed to read migration version: %w", err)
		}
		if after != before {
			slog.Info("migrations applied", "from", before, "to", after)
		}
		return nil
	})
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(ctx context.Context, db *sql.DB, driver string) error {
	return withGoose(driver, func() error {
		err := goose.DownContext(ctx, db, ".")
		if err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		slog.Info("rolled back one migration")
		return nil
	})
}

// Version returns the currently applied migration version.
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	var version int64
	err := withGoose(driver, func() error {
		var err error
		version, err = goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("failed to read migration version: %w", err)
		}
		return nil
	})
	return version, err
}

// Latest returns the highest migration version shipped with the binary.
func Latest() (int64, error) {
	migrations, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return 0, err
	}

	var latest int64
	for _, name := range migrations {
		version, err := goose.NumericComponent(name)
		if err != nil {
			return 0, fmt.Errorf("bad migration file name %q: %w", name, err)
		}
		latest = max(latest, version)
	}
	return latest, nil
}
