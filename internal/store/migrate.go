package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

// CreateTables applies the star schema migrations for the configured driver.
// It uses its own connection, which is closed before returning.
func CreateTables(ctx context.Context, config Config) error {
	d, err := dialectFor(config.Driver)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, d, config)
	if err != nil {
		return err
	}

	var driver database.Driver
	switch d.driver {
	case DriverPostgres:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	default:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	}
	if err != nil {
		db.Close()
		return fmt.Errorf("initialising migrate driver: %w", err)
	}

	source, err := iofs.New(migrations, d.migrations)
	if err != nil {
		db.Close()
		return fmt.Errorf("loading embedded migrations: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, d.driver, driver)
	if err != nil {
		source.Close()
		db.Close()
		return fmt.Errorf("creating migrator: %w", err)
	}
	// Closes the source, the migrate driver and db.
	defer migrator.Close()

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// hasTables reports whether every table of the schema has been created.
func hasTables(ctx context.Context, db *sql.DB) bool {
	for _, table := range Tables {
		if _, err := db.ExecContext(ctx, "SELECT 1 FROM "+table+" LIMIT 1"); err != nil {
			return false
		}
	}
	return true
}
