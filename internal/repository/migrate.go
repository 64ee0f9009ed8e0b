package repository

import (
	"database/sql"
	"fmt"

	"address-registry/migrations"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// Migrate applies all pending schema migrations to the database at dsn
func Migrate(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("repository: failed to open database: %w", err)
	}
	defer db.Close()

	return RunMigrations(db)
}

// RunMigrations executes all pending database migrations
func RunMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.MigrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("repository: failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("repository: failed to run migrations: %w", err)
	}

	return nil
}
