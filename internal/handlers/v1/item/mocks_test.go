package item

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/resell-server/internal/service"
)

type mockListingService struct {
	mock.Mock
}

func (m *mockListingService) CreateListing(ctx context.Context, sellerUsername string, listing service.NewListing) (*service.Item, error) {
	args := m.Called(ctx, sellerUsername, listing)
	item, _ := args.Get(0).(*service.Item)
	return item, args.Error(1)
}

func (m *mockListingService) GetItem(ctx context.Context, id uuid.UUID) (*service.Item, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*service.Item)
	return item, args.Error(1)
}

func (m *mockListingService) UpdateListing(ctx context.Context, id uuid.UUID, username string, details service.ListingDetails) (*service.Item, error) {
	args := m.Called(ctx, id, username, details)
	item, _ := args.Get(0).(*service.Item)
	return item, args.Error(1)
}

func (m *mockListingService) DeleteListing(ctx context.Context, id uuid.UUID, username string) error {
	args := m.Called(ctx, id, username)
	return args.Error(0)
}

type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) Purchase(ctx context.Context, itemID uuid.UUID, buyerUsername string) (*service.Transaction, error) {
	args := m.Called(ctx, itemID, buyerUsername)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) GetTransactionForItem(ctx context.Context, itemID uuid.UUID) (*service.Transaction, error) {
	args := m.Called(ctx, itemID)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

// newTestAPI registers every item endpoint against a humatest API.
func newTestAPI(t *testing.T, listings *mockListingService, transactions *mockTransactionService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateItemHandler(listings).Register(api)
	NewGetItemHandler(listings).Register(api)
	NewUpdateItemHandler(listings).Register(api)
	NewDeleteItemHandler(listings).Register(api)
	NewPurchaseItemHandler(transactions).Register(api)
	NewGetItemTransactionHandler(transactions).Register(api)
	return api
}
