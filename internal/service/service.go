package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carson-networks/resell-server/internal/market"
	"github.com/carson-networks/resell-server/internal/operator/actions"
	"github.com/carson-networks/resell-server/internal/storage"
)

// actionProcessor runs a write action in its own storage transaction.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Options are the tunables of the service layer.
type Options struct {
	Commission        *market.CommissionCalculator
	AllowSelfPurchase bool
	FeedCacheSize     int
	FeedCacheTTL      time.Duration
}

// Service holds all business logic services.
type Service struct {
	Listing     *ListingService
	Search      *SearchService
	Transaction *TransactionService
	User        *UserService
}

// NewService creates a new Service with the given storage and operator.
func NewService(store *storage.Storage, op actionProcessor, opts Options) *Service {
	search := NewSearchService(store, opts.FeedCacheSize, opts.FeedCacheTTL)
	return &Service{
		Listing:     NewListingService(store, op, search),
		Search:      search,
		Transaction: NewTransactionService(store, op, search, opts.Commission, opts.AllowSelfPurchase),
		User:        NewUserService(store, op),
	}
}

// readError maps storage sentinels on the read path onto market errors.
func readError(err error, what string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, market.ErrNotFound)
	}
	return err
}
