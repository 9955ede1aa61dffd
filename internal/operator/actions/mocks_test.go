package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/resell-server/internal/storage"
)

type mockItems struct {
	mock.Mock
}

func (m *mockItems) FindByID(ctx context.Context, id uuid.UUID) (*storage.Item, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*storage.Item)
	return item, args.Error(1)
}

func (m *mockItems) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*storage.Item, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*storage.Item)
	return item, args.Error(1)
}

func (m *mockItems) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockItems) Search(ctx context.Context, query *storage.ItemQuery) ([]*storage.Item, int64, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]*storage.Item)
	total, _ := args.Get(1).(int64)
	return items, total, args.Error(2)
}

func (m *mockItems) Insert(ctx context.Context, create *storage.ItemCreate) (*storage.Item, error) {
	args := m.Called(ctx, create)
	item, _ := args.Get(0).(*storage.Item)
	return item, args.Error(1)
}

func (m *mockItems) UpdateDetails(ctx context.Context, id uuid.UUID, details *storage.ItemDetails) error {
	return m.Called(ctx, id, details).Error(0)
}

func (m *mockItems) UpdateStatus(ctx context.Context, id uuid.UUID, status storage.ItemStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockItems) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) FindByID(ctx context.Context, id uuid.UUID) (*storage.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*storage.User)
	return user, args.Error(1)
}

func (m *mockUsers) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*storage.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*storage.User)
	return user, args.Error(1)
}

func (m *mockUsers) FindByUsername(ctx context.Context, username string) (*storage.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*storage.User)
	return user, args.Error(1)
}

func (m *mockUsers) Insert(ctx context.Context, create *storage.UserCreate) (*storage.User, error) {
	args := m.Called(ctx, create)
	user, _ := args.Get(0).(*storage.User)
	return user, args.Error(1)
}

func (m *mockUsers) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return m.Called(ctx, id, balance).Error(0)
}

type mockTransactions struct {
	mock.Mock
}

func (m *mockTransactions) FindByID(ctx context.Context, id uuid.UUID) (*storage.Transaction, error) {
	args := m.Called(ctx, id)
	tr, _ := args.Get(0).(*storage.Transaction)
	return tr, args.Error(1)
}

func (m *mockTransactions) FindByItemID(ctx context.Context, itemID uuid.UUID) (*storage.Transaction, error) {
	args := m.Called(ctx, itemID)
	tr, _ := args.Get(0).(*storage.Transaction)
	return tr, args.Error(1)
}

func (m *mockTransactions) List(ctx context.Context, filter *storage.TransactionFilter) ([]*storage.Transaction, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*storage.Transaction)
	return rows, args.Error(1)
}

func (m *mockTransactions) Insert(ctx context.Context, create *storage.TransactionCreate) (*storage.Transaction, error) {
	args := m.Called(ctx, create)
	tr, _ := args.Get(0).(*storage.Transaction)
	return tr, args.Error(1)
}

type mockWriter struct {
	items        *mockItems
	users        *mockUsers
	transactions *mockTransactions
	writer       *storage.Writer
}

// newMockWriter returns a Writer whose tables are mocks. Perform never
// commits, so the Tx is left nil.
func newMockWriter() *mockWriter {
	m := &mockWriter{
		items:        &mockItems{},
		users:        &mockUsers{},
		transactions: &mockTransactions{},
	}
	m.writer = storage.NewWriter(nil, m.items, m.users, m.transactions)
	return m
}

// assertNoWrites fails if any mutating table method was called.
func (m *mockWriter) assertNoWrites(t mock.TestingT) {
	m.items.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	m.items.AssertNotCalled(t, "UpdateDetails", mock.Anything, mock.Anything, mock.Anything)
	m.items.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	m.items.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	m.users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	m.users.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
	m.transactions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}
