package storage

import (
	"context"
)

// Tx is the storage transaction a Writer commits or rolls back.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer bundles the table writers bound to one storage transaction.
// Every effect made through a Writer becomes visible at Commit, or not at all.
type Writer struct {
	tx           Tx
	Items        IItemWriter
	Users        IUserWriter
	Transactions ITransactionWriter
}

func NewWriter(tx Tx, items IItemWriter, users IUserWriter, transactions ITransactionWriter) *Writer {
	return &Writer{
		tx:           tx,
		Items:        items,
		Users:        users,
		Transactions: transactions,
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
