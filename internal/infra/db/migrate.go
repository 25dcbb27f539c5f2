package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embedMigrations embed.FS

// goose keeps its dialect and base FS in package state.
var gooseMu sync.Mutex

func gooseDialect(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "postgres", nil
	case DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func withGoose(driver string, fn func(dir string) error) error {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return fn(path.Join("migrations", driver))
}

// MigrateUp applies every pending migration for driver.
func MigrateUp(ctx context.Context, db *sql.DB, driver string) error {
	return withGoose(driver, func(dir string) error {
		if err := goose.UpContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		return nil
	})
}

// MigrateDown rolls the schema back to version 0.
// Use with caution: this drops the todos table and all of its rows.
func MigrateDown(ctx context.Context, db *sql.DB, driver string) error {
	return withGoose(driver, func(dir string) error {
		if err := goose.DownToContext(ctx, db, dir, 0); err != nil {
			return fmt.Errorf("failed to roll back migrations: %w", err)
		}
		return nil
	})
}
