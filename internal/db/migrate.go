package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// The gateway shares its database with nothing else, but keeps its own history
// table so it never collides with another service's migrations.
const migrationsTable = "storefront_gateway_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

type migrationLog struct{ *log.Logger }

func (migrationLog) Verbose() bool { return false }

func migrationSource() (source.Driver, error) {
	return iofs.New(migrationsFS, "migrations")
}

// RunMigrations brings tracking_watch and consumed_event_checkpoint up to the latest
// embedded version. A dirty schema is reported, never forced.
func RunMigrations(dsn string, logger *log.Logger) error {
	sqlDB, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer sqlDB.Close()

	m, err := newMigrator(sqlDB, logger)
	if err != nil {
		return err
	}

	from, err := schemaVersion(m)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up from version %d: %w", from, err)
	}
	to, err := schemaVersion(m)
	if err != nil {
		return err
	}

	if from == to {
		logger.Printf("migrations: schema already at version %d", to)
	} else {
		logger.Printf("migrations: schema moved from version %d to %d", from, to)
	}
	return nil
}

func newMigrator(sqlDB *sql.DB, logger *log.Logger) (*migrate.Migrate, error) {
	src, err := migrationSource()
	if err != nil {
		return nil, fmt.Errorf("load embedded migrations: %w", err)
	}
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	m.Log = migrationLog{logger}
	m.LockTimeout = 30 * time.Second
	return m, nil
}

// schemaVersion is 0 on an empty database.
func schemaVersion(m *migrate.Migrate) (uint, error) {
	v, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("read schema version: %w", err)
	case dirty:
		return v, fmt.Errorf("schema version %d is dirty: repair it by hand, then force the version", v)
	}
	return v, nil
}
