package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/resell-server/internal/storage"
)

// Transaction represents a ledger entry in the service layer.
type Transaction struct {
	ID         uuid.UUID
	BuyerID    uuid.UUID
	SellerID   uuid.UUID
	ItemID     uuid.UUID
	Amount     decimal.Decimal
	Commission decimal.Decimal
	CreatedAt  time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

func transactionFromStorage(row *storage.Transaction) Transaction {
	return Transaction{
		ID:         row.ID,
		BuyerID:    row.BuyerID,
		SellerID:   row.SellerID,
		ItemID:     row.ItemID,
		Amount:     row.Amount,
		Commission: row.Commission,
		CreatedAt:  row.CreatedAt,
	}
}
