package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type migrator interface {
	Up() error
	Down() error
}

// newMigrator builds a golang-migrate instance over the embedded SQL files.
// The returned close func releases the dedicated connection.
var newMigrator = func(dsn string) (migrator, func() error, error) {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, err
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return m, sqlDB.Close, nil
}

// CreateSchema brings the users table up to date. PostgreSQL runs the
// embedded migrations; SQLite is migrated from the record definition.
func CreateSchema(ctx context.Context, db *gorm.DB, dsn string) error {
	if DialectOf(dsn) == DialectPostgres {
		return runMigrations(dsn, migrator.Up)
	}
	if err := db.WithContext(ctx).AutoMigrate(&userRecord{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// DropSchema removes the users table.
func DropSchema(ctx context.Context, db *gorm.DB, dsn string) error {
	if DialectOf(dsn) == DialectPostgres {
		return runMigrations(dsn, migrator.Down)
	}
	if err := db.WithContext(ctx).Migrator().DropTable(&userRecord{}); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	return nil
}

func runMigrations(dsn string, step func(migrator) error) error {
	m, closeFn, err := newMigrator(dsn)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer closeFn()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
