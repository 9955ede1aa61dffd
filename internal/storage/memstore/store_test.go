package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/resell-server/internal/storage"
)

func begin(t *testing.T, s *storage.Storage) *storage.Writer {
	t.Helper()
	w, err := s.Write(context.Background())
	require.NoError(t, err)
	return w
}

func insertUser(t *testing.T, s *storage.Storage, username string) *storage.User {
	t.Helper()
	w := begin(t, s)
	user, err := w.Users.Insert(context.Background(), &storage.UserCreate{Username: username, Email: username + "@example.com"})
	require.NoError(t, err)
	require.NoError(t, w.Commit())
	return user
}

func insertItem(t *testing.T, s *storage.Storage, seller *storage.User, name, price string, listedAt time.Time) *storage.Item {
	t.Helper()
	w := begin(t, s)
	item, err := w.Items.Insert(context.Background(), &storage.ItemCreate{
		Name:        name,
		Brand:       "Acme",
		Category:    storage.CategoryTops,
		SubCategory: storage.SubCategoryShirts,
		Condition:   storage.ConditionGood,
		Size:        "M",
		Price:       decimal.RequireFromString(price),
		SellerID:    seller.ID,
		ListedAt:    listedAt,
	})
	require.NoError(t, err)
	require.NoError(t, w.Commit())
	return item
}

// -- transaction tests --

func TestRollbackDiscardsWrites(t *testing.T) {
	s := New()
	seller := insertUser(t, s, "bob")

	w := begin(t, s)
	item, err := w.Items.Insert(context.Background(), &storage.ItemCreate{
		Name:     "Oxford shirt",
		Price:    decimal.RequireFromString("20"),
		SellerID: seller.ID,
	})
	require.NoError(t, err)
	require.NoError(t, w.Users.UpdateBalance(context.Background(), seller.ID, decimal.RequireFromString("99")))
	require.NoError(t, w.Rollback())

	_, err = s.Items.FindByID(context.Background(), item.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	reloaded, err := s.Users.FindByID(context.Background(), seller.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Balance.IsZero())
}

func TestStagedWritesInvisibleUntilCommit(t *testing.T) {
	s := New()
	seller := insertUser(t, s, "bob")
	item := insertItem(t, s, seller, "Oxford shirt", "20", time.Time{})

	w := begin(t, s)
	require.NoError(t, w.Items.UpdateStatus(context.Background(), item.ID, storage.ItemStatusSold))

	outside, err := s.Items.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.ItemStatusAvailable, outside.Status)

	inside, err := w.Items.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.ItemStatusSold, inside.Status)

	require.NoError(t, w.Commit())
	committed, err := s.Items.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.ItemStatusSold, committed.Status)
}

func TestSecondWriterWaits(t *testing.T) {
	s := New()
	w := begin(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := s.Write(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, w.Commit())
	next := begin(t, s)
	require.NoError(t, next.Rollback())
}

func TestDuplicateUsername(t *testing.T) {
	s := New()
	insertUser(t, s, "bob")

	w := begin(t, s)
	defer func() { _ = w.Rollback() }()
	_, err := w.Users.Insert(context.Background(), &storage.UserCreate{Username: "bob", Email: "other@example.com"})
	assert.ErrorIs(t, err, storage.ErrDuplicate)
}

func TestInsertItemUnknownSeller(t *testing.T) {
	s := New()
	w := begin(t, s)
	defer func() { _ = w.Rollback() }()

	_, err := w.Items.Insert(context.Background(), &storage.ItemCreate{Name: "Ghost", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// -- search tests --

func TestSearchOrdersAndPages(t *testing.T) {
	s := New()
	seller := insertUser(t, s, "bob")
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	oldest := insertItem(t, s, seller, "Old shirt", "30", base)
	middle := insertItem(t, s, seller, "Mid shirt", "10", base.Add(time.Hour))
	newest := insertItem(t, s, seller, "New shirt", "20", base.Add(2*time.Hour))

	items, total, err := s.Items.Search(context.Background(), &storage.ItemQuery{Sort: storage.SortListedAtDesc, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	assert.Equal(t, newest.ID, items[0].ID)
	assert.Equal(t, middle.ID, items[1].ID)
	assert.Equal(t, "bob", items[0].SellerUsername)

	items, _, err = s.Items.Search(context.Background(), &storage.ItemQuery{Sort: storage.SortPriceAsc, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, oldest.ID, items[0].ID)
}

func TestSearchPredicates(t *testing.T) {
	s := New()
	seller := insertUser(t, s, "bob")
	insertItem(t, s, seller, "Linen SHIRT", "15", time.Time{})
	insertItem(t, s, seller, "Wool sweater", "40", time.Time{})

	items, total, err := s.Items.Search(context.Background(), &storage.ItemQuery{
		Predicates: []storage.Predicate{
			{Field: storage.FieldName, Operator: storage.OpContainsFold, Value: "shirt"},
			{Field: storage.FieldSize, Operator: storage.OpEqualsFold, Value: "m"},
			{Field: storage.FieldPrice, Operator: storage.OpLessOrEqual, Value: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Linen SHIRT", items[0].Name)
}

func TestMatchesUnknownOperator(t *testing.T) {
	item := &storage.Item{Name: "x"}
	assert.False(t, matches(item, storage.Predicate{Field: storage.FieldName, Operator: storage.Operator(99), Value: "x"}))
}

// -- ledger tests --

func TestTransactionsListForUser(t *testing.T) {
	s := New()
	seller := insertUser(t, s, "bob")
	buyer := insertUser(t, s, "alice")
	bystander := insertUser(t, s, "carol")
	item := insertItem(t, s, seller, "Oxford shirt", "20", time.Time{})

	w := begin(t, s)
	_, err := w.Transactions.Insert(context.Background(), &storage.TransactionCreate{
		BuyerID:    buyer.ID,
		SellerID:   seller.ID,
		ItemID:     item.ID,
		Amount:     decimal.NewFromInt(20),
		Commission: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	_, err = w.Transactions.Insert(context.Background(), &storage.TransactionCreate{
		BuyerID:    buyer.ID,
		SellerID:   seller.ID,
		ItemID:     item.ID,
		Amount:     decimal.NewFromInt(20),
		Commission: decimal.NewFromInt(2),
	})
	assert.ErrorIs(t, err, storage.ErrDuplicate)
	require.NoError(t, w.Commit())

	for _, u := range []*storage.User{seller, buyer} {
		userID := u.ID
		rows, err := s.Transactions.List(context.Background(), &storage.TransactionFilter{UserID: &userID, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	}
	rows, err := s.Transactions.List(context.Background(), &storage.TransactionFilter{UserID: &bystander.ID, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
