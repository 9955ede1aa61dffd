package storage

import (
	"context"
)

// WriterFactory opens a new write transaction.
type WriterFactory interface {
	BeginWrite(ctx context.Context) (*Writer, error)
}

// Storage is the persistence boundary consumed by the service and operator layers.
// Reads go straight to the tables; writes go through Write.
type Storage struct {
	Items        IItemTable
	Users        IUserTable
	Transactions ITransactionTable

	writers WriterFactory
	closer  func() error
}

func NewStorage(items IItemTable, users IUserTable, transactions ITransactionTable, writers WriterFactory, closer func() error) *Storage {
	return &Storage{
		Items:        items,
		Users:        users,
		Transactions: transactions,
		writers:      writers,
		closer:       closer,
	}
}

// Write begins a transaction. The caller must Commit or Rollback the returned Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.writers.BeginWrite(ctx)
}

func (s *Storage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
