package memstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/resell-server/internal/storage"
)

var errNoTransaction = errors.New("memstore: write outside of a transaction")

var (
	_ storage.IItemWriter        = (*itemView)(nil)
	_ storage.IUserWriter        = (*userView)(nil)
	_ storage.ITransactionWriter = (*transactionView)(nil)
)

// -- lookups shared by the views. tx may be nil for committed-only reads. --

func lookupItem(s *Store, tx *memTx, id uuid.UUID) (storage.Item, bool) {
	if tx != nil {
		if _, gone := tx.deletedItems[id]; gone {
			return storage.Item{}, false
		}
		if item, ok := tx.items[id]; ok {
			return item, true
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

func lookupUser(s *Store, tx *memTx, id uuid.UUID) (storage.User, bool) {
	if tx != nil {
		if user, ok := tx.users[id]; ok {
			return user, true
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	return user, ok
}

func allItems(s *Store, tx *memTx) []storage.Item {
	s.mu.RLock()
	merged := make(map[uuid.UUID]storage.Item, len(s.items))
	for id, item := range s.items {
		merged[id] = item
	}
	s.mu.RUnlock()

	if tx != nil {
		for id := range tx.deletedItems {
			delete(merged, id)
		}
		for id, item := range tx.items {
			merged[id] = item
		}
	}

	out := make([]storage.Item, 0, len(merged))
	for _, item := range merged {
		out = append(out, item)
	}
	return out
}

func allUsers(s *Store, tx *memTx) []storage.User {
	s.mu.RLock()
	merged := make(map[uuid.UUID]storage.User, len(s.users))
	for id, user := range s.users {
		merged[id] = user
	}
	s.mu.RUnlock()

	if tx != nil {
		for id, user := range tx.users {
			merged[id] = user
		}
	}

	out := make([]storage.User, 0, len(merged))
	for _, user := range merged {
		out = append(out, user)
	}
	return out
}

func allTransactions(s *Store, tx *memTx) []storage.Transaction {
	s.mu.RLock()
	out := make([]storage.Transaction, 0, len(s.transactions))
	for _, tr := range s.transactions {
		out = append(out, tr)
	}
	s.mu.RUnlock()

	if tx != nil {
		for _, tr := range tx.transactions {
			out = append(out, tr)
		}
	}
	return out
}

// -- items --

type itemView struct {
	store *Store
	tx    *memTx
}

func (v *itemView) withSeller(item storage.Item) *storage.Item {
	if seller, ok := lookupUser(v.store, v.tx, item.SellerID); ok {
		item.SellerUsername = seller.Username
	}
	return &item
}

func (v *itemView) FindByID(_ context.Context, id uuid.UUID) (*storage.Item, error) {
	item, ok := lookupItem(v.store, v.tx, id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return v.withSeller(item), nil
}

// FindByIDForUpdate needs no row lock: the writer already holds the store's write slot.
func (v *itemView) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*storage.Item, error) {
	if v.tx == nil {
		return nil, errNoTransaction
	}
	return v.FindByID(ctx, id)
}

func (v *itemView) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := lookupItem(v.store, v.tx, id)
	return ok, nil
}

func (v *itemView) Search(_ context.Context, query *storage.ItemQuery) ([]*storage.Item, int64, error) {
	if query == nil {
		query = &storage.ItemQuery{}
	}

	var matched []storage.Item
	for _, item := range allItems(v.store, v.tx) {
		if matchesAll(&item, query.Predicates) {
			matched = append(matched, item)
		}
	}
	sortItems(matched, query.Sort)

	total := int64(len(matched))
	start := min(max(query.Offset, 0), len(matched))
	end := len(matched)
	if query.Limit > 0 {
		end = min(start+query.Limit, len(matched))
	}

	page := matched[start:end]
	if len(page) == 0 {
		return nil, total, nil
	}
	result := make([]*storage.Item, len(page))
	for i, item := range page {
		result[i] = v.withSeller(item)
	}
	return result, total, nil
}

func (v *itemView) Insert(ctx context.Context, create *storage.ItemCreate) (*storage.Item, error) {
	if v.tx == nil {
		return nil, errNoTransaction
	}
	if _, ok := lookupUser(v.store, v.tx, create.SellerID); !ok {
		return nil, fmt.Errorf("seller %s: %w", create.SellerID, storage.ErrNotFound)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	listedAt := create.ListedAt
	if listedAt.IsZero() {
		listedAt = v.store.now()
	}

	v.tx.items[id] = storage.Item{
		ID:          id,
		Name:        create.Name,
		Brand:       create.Brand,
		Category:    create.Category,
		SubCategory: create.SubCategory,
		Condition:   create.Condition,
		Size:        create.Size,
		Price:       create.Price,
		Status:      storage.ItemStatusAvailable,
		SellerID:    create.SellerID,
		ListedAt:    listedAt,
	}
	return v.FindByID(ctx, id)
}

func (v *itemView) UpdateDetails(_ context.Context, id uuid.UUID, details *storage.ItemDetails) error {
	if v.tx == nil {
		return errNoTransaction
	}
	item, ok := lookupItem(v.store, v.tx, id)
	if !ok {
		return storage.ErrNotFound
	}
	item.Name = details.Name
	item.Brand = details.Brand
	item.Condition = details.Condition
	item.Size = details.Size
	item.Price = details.Price
	v.tx.items[id] = item
	return nil
}

func (v *itemView) UpdateStatus(_ context.Context, id uuid.UUID, status storage.ItemStatus) error {
	if v.tx == nil {
		return errNoTransaction
	}
	item, ok := lookupItem(v.store, v.tx, id)
	if !ok {
		return storage.ErrNotFound
	}
	item.Status = status
	v.tx.items[id] = item
	return nil
}

func (v *itemView) Delete(_ context.Context, id uuid.UUID) error {
	if v.tx == nil {
		return errNoTransaction
	}
	if _, ok := lookupItem(v.store, v.tx, id); !ok {
		return storage.ErrNotFound
	}
	delete(v.tx.items, id)
	v.tx.deletedItems[id] = struct{}{}
	return nil
}

func sortItems(items []storage.Item, order storage.ItemSort) {
	idLess := func(a, b storage.Item) bool { return bytes.Compare(a.ID[:], b.ID[:]) < 0 }

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch order {
		case storage.SortListedAtAsc:
			if !a.ListedAt.Equal(b.ListedAt) {
				return a.ListedAt.Before(b.ListedAt)
			}
			return idLess(a, b)
		case storage.SortPriceAsc:
			if !a.Price.Equal(b.Price) {
				return a.Price.LessThan(b.Price)
			}
			return idLess(a, b)
		case storage.SortPriceDesc:
			if !a.Price.Equal(b.Price) {
				return a.Price.GreaterThan(b.Price)
			}
			return idLess(b, a)
		}
		if !a.ListedAt.Equal(b.ListedAt) {
			return a.ListedAt.After(b.ListedAt)
		}
		return idLess(b, a)
	})
}

// -- users --

type userView struct {
	store *Store
	tx    *memTx
}

func (v *userView) FindByID(_ context.Context, id uuid.UUID) (*storage.User, error) {
	user, ok := lookupUser(v.store, v.tx, id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}

func (v *userView) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*storage.User, error) {
	if v.tx == nil {
		return nil, errNoTransaction
	}
	return v.FindByID(ctx, id)
}

func (v *userView) FindByUsername(_ context.Context, username string) (*storage.User, error) {
	for _, user := range allUsers(v.store, v.tx) {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (v *userView) Insert(_ context.Context, create *storage.UserCreate) (*storage.User, error) {
	if v.tx == nil {
		return nil, errNoTransaction
	}
	for _, user := range allUsers(v.store, v.tx) {
		if user.Username == create.Username {
			return nil, fmt.Errorf("%w: users_username_key", storage.ErrDuplicate)
		}
		if user.Email == create.Email {
			return nil, fmt.Errorf("%w: users_email_key", storage.ErrDuplicate)
		}
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	user := storage.User{
		ID:        id,
		Username:  create.Username,
		Email:     create.Email,
		Balance:   decimal.Zero,
		CreatedAt: v.store.now(),
	}
	v.tx.users[id] = user
	return &user, nil
}

func (v *userView) UpdateBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	if v.tx == nil {
		return errNoTransaction
	}
	user, ok := lookupUser(v.store, v.tx, id)
	if !ok {
		return storage.ErrNotFound
	}
	user.Balance = balance
	v.tx.users[id] = user
	return nil
}

// -- transactions --

type transactionView struct {
	store *Store
	tx    *memTx
}

func (v *transactionView) find(match func(storage.Transaction) bool) (*storage.Transaction, error) {
	for _, tr := range allTransactions(v.store, v.tx) {
		if match(tr) {
			return &tr, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (v *transactionView) FindByID(_ context.Context, id uuid.UUID) (*storage.Transaction, error) {
	return v.find(func(tr storage.Transaction) bool { return tr.ID == id })
}

func (v *transactionView) FindByItemID(_ context.Context, itemID uuid.UUID) (*storage.Transaction, error) {
	return v.find(func(tr storage.Transaction) bool { return tr.ItemID == itemID })
}

func (v *transactionView) Insert(_ context.Context, create *storage.TransactionCreate) (*storage.Transaction, error) {
	if v.tx == nil {
		return nil, errNoTransaction
	}
	if _, err := v.find(func(tr storage.Transaction) bool { return tr.ItemID == create.ItemID }); err == nil {
		return nil, fmt.Errorf("%w: transactions_item_id_key", storage.ErrDuplicate)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	tr := storage.Transaction{
		ID:         id,
		BuyerID:    create.BuyerID,
		SellerID:   create.SellerID,
		ItemID:     create.ItemID,
		Amount:     create.Amount,
		Commission: create.Commission,
		CreatedAt:  v.store.now(),
	}
	v.tx.transactions[id] = tr
	return &tr, nil
}

func (v *transactionView) List(_ context.Context, filter *storage.TransactionFilter) ([]*storage.Transaction, error) {
	var rows []storage.Transaction
	for _, tr := range allTransactions(v.store, v.tx) {
		if filter != nil {
			if filter.UserID != nil && tr.BuyerID != *filter.UserID && tr.SellerID != *filter.UserID {
				continue
			}
			if filter.MaxCreationTime != nil && tr.CreatedAt.After(*filter.MaxCreationTime) {
				continue
			}
		}
		rows = append(rows, tr)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return bytes.Compare(rows[i].ID[:], rows[j].ID[:]) > 0
	})

	if filter != nil {
		start := min(max(filter.Offset, 0), len(rows))
		rows = rows[start:]
		if filter.Limit > 0 && len(rows) > filter.Limit+1 {
			rows = rows[:filter.Limit+1]
		}
	}

	result := make([]*storage.Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
