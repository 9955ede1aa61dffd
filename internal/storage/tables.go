package storage

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("storage: not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("storage: duplicate")
)

// IItemTable defines the read operations on items.
// This abstraction allows swapping the implementation (postgres, memory) without changing callers.
type IItemTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// Search returns one page of matches and the total number of matches.
	Search(ctx context.Context, query *ItemQuery) ([]*Item, int64, error)
}

// IItemWriter defines item operations available inside a write transaction.
type IItemWriter interface {
	IItemTable
	// FindByIDForUpdate reads the item and holds its row lock until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Item, error)
	Insert(ctx context.Context, create *ItemCreate) (*Item, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, details *ItemDetails) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status ItemStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// IUserTable defines the read operations on users.
type IUserTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// IUserWriter defines user operations available inside a write transaction.
type IUserWriter interface {
	IUserTable
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*User, error)
	Insert(ctx context.Context, create *UserCreate) (*User, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

// ITransactionTable defines the read operations on the ledger.
type ITransactionTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindByItemID(ctx context.Context, itemID uuid.UUID) (*Transaction, error)
	// List returns up to filter.Limit+1 rows so callers can detect a next page.
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}

// ITransactionWriter defines ledger operations available inside a write transaction.
// Ledger entries are append-only, there is no update or delete.
type ITransactionWriter interface {
	ITransactionTable
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
}
