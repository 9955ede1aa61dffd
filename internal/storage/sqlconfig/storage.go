package sqlconfig

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/resell-server/internal/config"
	"github.com/carson-networks/resell-server/internal/storage"
)

// ConnectionString builds the lib/pq DSN from the environment config.
func ConnectionString(env *config.Config) string {
	return "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"
}

// Open connects to postgres and verifies the connection.
func Open(ctx context.Context, env *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", ConnectionString(env))
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return db, nil
}

type writerFactory struct {
	db bob.DB
}

// BeginWrite opens a read-committed transaction. Row locks taken with
// FindByIDForUpdate serialize concurrent writers on the same row.
func (f writerFactory) BeginWrite(ctx context.Context) (*storage.Writer, error) {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return storage.NewWriter(tx, NewItemsTable(tx), NewUsersTable(tx), NewTransactionsTable(tx)), nil
}

// NewStorage creates the postgres-backed storage.
func NewStorage(db *sql.DB) *storage.Storage {
	exec := bob.NewDB(db)
	return storage.NewStorage(
		NewItemsTable(exec),
		NewUsersTable(exec),
		NewTransactionsTable(exec),
		writerFactory{db: exec},
		db.Close,
	)
}
