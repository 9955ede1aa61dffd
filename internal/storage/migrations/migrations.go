package migrations

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var files embed.FS

// Status reports the schema version before and after a migration run.
type Status struct {
	PreMigrationVersion  uint
	PostMigrationVersion uint
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(files, ".")
	if err != nil {
		return nil, err
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, err
	}
	return migrate.NewWithInstance("iofs", source, "postgres", driver)
}

func version(m *migrate.Migrate) (uint, error) {
	v, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	return v, err
}

// Up applies every pending migration.
func Up(db *sql.DB) (Status, error) {
	return run(db, func(m *migrate.Migrate) error { return m.Up() })
}

// Down rolls back the given number of migrations.
func Down(db *sql.DB, steps int) (Status, error) {
	return run(db, func(m *migrate.Migrate) error { return m.Steps(-steps) })
}

// Version returns the current schema version, zero when nothing is applied.
func Version(db *sql.DB) (uint, error) {
	m, err := newMigrate(db)
	if err != nil {
		return 0, err
	}
	return version(m)
}

func run(db *sql.DB, step func(*migrate.Migrate) error) (Status, error) {
	var status Status
	m, err := newMigrate(db)
	if err != nil {
		return status, err
	}

	status.PreMigrationVersion, err = version(m)
	if err != nil {
		return status, err
	}

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return status, err
	}

	status.PostMigrationVersion, err = version(m)
	return status, err
}
