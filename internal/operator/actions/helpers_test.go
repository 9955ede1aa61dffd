package actions

import (
	"context"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/resell-server/internal/market"
	"github.com/carson-networks/resell-server/internal/storage"
	"github.com/carson-networks/resell-server/internal/storage/memstore"
)

// perform runs action in its own transaction the way the operator does.
func perform(t *testing.T, s *storage.Storage, action IAction) error {
	t.Helper()
	writer, err := s.Write(context.Background())
	require.NoError(t, err)

	if err := action.Perform(context.Background(), writer); err != nil {
		require.NoError(t, writer.Rollback())
		return err
	}
	require.NoError(t, writer.Commit())
	return nil
}

func registerUser(t *testing.T, s *storage.Storage, username string) *storage.User {
	t.Helper()
	action := &RegisterUser{User: storage.UserCreate{Username: username, Email: username + "@example.com"}}
	require.NoError(t, perform(t, s, action))
	return action.Result
}

func listItem(t *testing.T, s *storage.Storage, seller string, price string) *storage.Item {
	t.Helper()
	action := &CreateListing{
		SellerUsername: seller,
		Listing: storage.ItemCreate{
			Name:        "Pleated trousers",
			Brand:       "Acme",
			Category:    storage.CategoryBottoms,
			SubCategory: storage.SubCategoryTrousers,
			Condition:   storage.ConditionGood,
			Size:        "M",
			Price:       decimal.RequireFromString(price),
		},
	}
	require.NoError(t, perform(t, s, action))
	return action.Result
}

func defaultCommission(t *testing.T) *market.CommissionCalculator {
	t.Helper()
	calc, err := market.NewCommissionCalculator(market.DefaultCommissionRate)
	require.NoError(t, err)
	return calc
}

// ledger returns every ledger entry in the store.
func ledger(t *testing.T, s *storage.Storage) []*storage.Transaction {
	t.Helper()
	rows, err := s.Transactions.List(context.Background(), &storage.TransactionFilter{})
	require.NoError(t, err)
	return rows
}

func balanceOf(t *testing.T, s *storage.Storage, id uuid.UUID) decimal.Decimal {
	t.Helper()
	user, err := s.Users.FindByID(context.Background(), id)
	require.NoError(t, err, spew.Sdump(id))
	return user.Balance
}

// marketplace is a memstore with seller "bob" and buyer "alice".
type marketplace struct {
	store  *storage.Storage
	seller *storage.User
	buyer  *storage.User
}

func newMarketplace(t *testing.T) *marketplace {
	t.Helper()
	s := memstore.New()
	return &marketplace{
		store:  s,
		seller: registerUser(t, s, "bob"),
		buyer:  registerUser(t, s, "alice"),
	}
}
