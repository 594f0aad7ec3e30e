package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/at-ishikawa/imjang/internal/config"
	"github.com/at-ishikawa/imjang/schemas"
)

// Migrate applies all pending schema migrations for the configured driver.
// It opens and closes its own connection.
func Migrate(cfg config.DatabaseConfig) error {
	db, err := Open(cfg)
	if err != nil {
		return err
	}

	source, err := iofs.New(schemas.Migrations, "migrations/"+db.DriverName())
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("load migrations: %w", err)
	}

	var m *migrate.Migrate
	switch db.DriverName() {
	case DriverSQLite:
		driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
		if err != nil {
			_ = db.Close()
			return fmt.Errorf("create sqlite migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", source, DriverSQLite, driver)
		if err != nil {
			_ = db.Close()
			return fmt.Errorf("create migrator: %w", err)
		}
	default:
		driver, err := migratemysql.WithInstance(db.DB, &migratemysql.Config{})
		if err != nil {
			_ = db.Close()
			return fmt.Errorf("create mysql migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", source, DriverMySQL, driver)
		if err != nil {
			_ = db.Close()
			return fmt.Errorf("create migrator: %w", err)
		}
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			slog.Warn("close migrator", "source_error", srcErr, "database_error", dbErr)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	slog.Info("database migrated", "driver", db.DriverName(), "version", version, "dirty", dirty)
	return nil
}
