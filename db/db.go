package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported dialects. The store uses the dialect to pick placeholder syntax.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Open returns a database connection and the dialect it speaks. When
// DATABASE_URL is set, the connection goes to Postgres via pgx; otherwise a
// SQLite file at DB_PATH (default "./data/contacts.db") is opened with WAL
// mode and foreign keys enabled.
func Open() (*sql.DB, string, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		database, err := sql.Open("pgx", url)
		if err != nil {
			return nil, "", fmt.Errorf("opening postgres database: %w", err)
		}
		if err := database.Ping(); err != nil {
			return nil, "", fmt.Errorf("pinging postgres database: %w", err)
		}
		slog.Info("database connected", "dialect", DialectPostgres)
		return database, DialectPostgres, nil
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/contacts.db"
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, "", fmt.Errorf("creating db directory: %w", err)
	}

	database, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, "", fmt.Errorf("opening database: %w", err)
	}

	// Verify connection
	if err := database.Ping(); err != nil {
		return nil, "", fmt.Errorf("pinging database: %w", err)
	}

	slog.Info("database connected", "dialect", DialectSQLite, "path", dbPath)
	return database, DialectSQLite, nil
}
