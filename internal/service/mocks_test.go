package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/resell-server/internal/operator/actions"
	"github.com/carson-networks/resell-server/internal/storage"
)

type mockTransactionTable struct {
	mock.Mock
}

func (m *mockTransactionTable) FindByID(ctx context.Context, id uuid.UUID) (*storage.Transaction, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*storage.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionTable) FindByItemID(ctx context.Context, itemID uuid.UUID) (*storage.Transaction, error) {
	args := m.Called(ctx, itemID)
	row, _ := args.Get(0).(*storage.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionTable) List(ctx context.Context, filter *storage.TransactionFilter) ([]*storage.Transaction, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*storage.Transaction)
	return rows, args.Error(1)
}

type mockUserTable struct {
	mock.Mock
}

func (m *mockUserTable) FindByID(ctx context.Context, id uuid.UUID) (*storage.User, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*storage.User)
	return row, args.Error(1)
}

func (m *mockUserTable) FindByUsername(ctx context.Context, username string) (*storage.User, error) {
	args := m.Called(ctx, username)
	row, _ := args.Get(0).(*storage.User)
	return row, args.Error(1)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	return m.Called(ctx, action).Error(0)
}

type countingPurger struct {
	purges int
}

func (c *countingPurger) Purge() {
	c.purges++
}
