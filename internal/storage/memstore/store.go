// Package memstore is an in-memory storage backend. Write transactions are
// serialized and staged, so a rolled back transaction leaves no trace.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/resell-server/internal/storage"
)

// Store holds the committed state.
type Store struct {
	// sem admits one write transaction at a time.
	sem chan struct{}

	mu           sync.RWMutex
	items        map[uuid.UUID]storage.Item
	users        map[uuid.UUID]storage.User
	transactions map[uuid.UUID]storage.Transaction

	now func() time.Time
}

func newStore() *Store {
	return &Store{
		sem:          make(chan struct{}, 1),
		items:        make(map[uuid.UUID]storage.Item),
		users:        make(map[uuid.UUID]storage.User),
		transactions: make(map[uuid.UUID]storage.Transaction),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// New creates an empty in-memory storage.
func New() *storage.Storage {
	s := newStore()
	return storage.NewStorage(
		&itemView{store: s},
		&userView{store: s},
		&transactionView{store: s},
		s,
		nil,
	)
}

// BeginWrite blocks until no other write transaction is open, or ctx is done.
func (s *Store) BeginWrite(ctx context.Context) (*storage.Writer, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	tx := &memTx{
		store:        s,
		items:        make(map[uuid.UUID]storage.Item),
		deletedItems: make(map[uuid.UUID]struct{}),
		users:        make(map[uuid.UUID]storage.User),
		transactions: make(map[uuid.UUID]storage.Transaction),
	}
	return storage.NewWriter(tx,
		&itemView{store: s, tx: tx},
		&userView{store: s, tx: tx},
		&transactionView{store: s, tx: tx},
	), nil
}

// memTx stages writes until Commit.
type memTx struct {
	store *Store
	done  bool

	items        map[uuid.UUID]storage.Item
	deletedItems map[uuid.UUID]struct{}
	users        map[uuid.UUID]storage.User
	transactions map[uuid.UUID]storage.Transaction
}

func (t *memTx) Commit(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	s := t.store
	s.mu.Lock()
	for id := range t.deletedItems {
		delete(s.items, id)
	}
	for id, item := range t.items {
		s.items[id] = item
	}
	for id, user := range t.users {
		s.users[id] = user
	}
	for id, tr := range t.transactions {
		s.transactions[id] = tr
	}
	s.mu.Unlock()

	<-s.sem
	return nil
}

func (t *memTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	<-t.store.sem
	return nil
}
