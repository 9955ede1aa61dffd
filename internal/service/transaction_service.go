package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/resell-server/internal/market"
	"github.com/carson-networks/resell-server/internal/operator/actions"
	"github.com/carson-networks/resell-server/internal/storage"
)

const defaultLimit = 20

// TransactionService purchases items and reads the ledger.
type TransactionService struct {
	storage           *storage.Storage
	operator          actionProcessor
	cache             cachePurger
	commission        *market.CommissionCalculator
	allowSelfPurchase bool
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	store *storage.Storage,
	op actionProcessor,
	cache cachePurger,
	commission *market.CommissionCalculator,
	allowSelfPurchase bool,
) *TransactionService {
	return &TransactionService{
		storage:           store,
		operator:          op,
		cache:             cache,
		commission:        commission,
		allowSelfPurchase: allowSelfPurchase,
	}
}

// Purchase sells the item to buyerUsername and returns the ledger entry.
func (s *TransactionService) Purchase(ctx context.Context, itemID uuid.UUID, buyerUsername string) (*Transaction, error) {
	action := &actions.PurchaseItem{
		ItemID:            itemID,
		BuyerUsername:     buyerUsername,
		Commission:        s.commission,
		AllowSelfPurchase: s.allowSelfPurchase,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		// A ctx error does not mean nothing happened: once a worker has taken
		// the action it commits or rolls back regardless of the caller. The
		// item may be SOLD, so the cached feed is dropped all the same.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.cache.Purge()
		}
		return nil, err
	}
	s.cache.Purge()

	tx := transactionFromStorage(action.Result)
	return &tx, nil
}

// GetTransactionForItem returns the ledger entry of a sold item.
func (s *TransactionService) GetTransactionForItem(ctx context.Context, itemID uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, readError(err, "transaction for item "+itemID.String())
	}
	tx := transactionFromStorage(row)
	return &tx, nil
}

// ListTransactions returns a page of the user's ledger entries, as buyer or
// seller, newest first, using cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, username string, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	user, err := s.storage.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, readError(err, "user "+username)
	}

	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}
	if limit < 1 {
		limit = defaultLimit
	}

	filter := &storage.TransactionFilter{
		UserID:          &user.ID,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = transactionFromStorage(row)
	}

	return convertedTransactions, nextCursor, nil
}
