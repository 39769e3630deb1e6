// Package storage opens the local SQLite database that stands in for the
// browser's persistent storage and brings its schema up to date.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/AleeDe/nafaverse/internal/client/migrations"
	"github.com/AleeDe/nafaverse/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// RunMigrations applies every pending embedded migration.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// InitDatabase opens (creating if needed) the database at path and migrates
// it. An in-memory path yields a single-connection pool so every query sees
// the same database.
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if filex.IsInMemory(path) {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// dsn adds a busy timeout to file databases so concurrent CLI processes
// sharing one file wait instead of failing with SQLITE_BUSY.
func dsn(path string) string {
	if path == "" {
		return ":memory:"
	}
	if filex.IsInMemory(path) || strings.Contains(path, "_pragma=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)"
}
