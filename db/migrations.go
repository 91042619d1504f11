package db

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies all pending migrations for the given dialect. Safe to call
// on every start; applied versions are tracked by goose.
func Migrate(database *sql.DB, dialect string) error {
	gooseDialect := "sqlite3"
	if dialect == DialectPostgres {
		gooseDialect = "postgres"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}
	goose.SetBaseFS(migrationsFS)

	slog.Info("running database migrations", "dialect", dialect)
	if err := goose.Up(database, "migrations/"+dialect); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations complete")
	return nil
}
