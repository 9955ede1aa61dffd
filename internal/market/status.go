package market

import (
	"fmt"

	"github.com/carson-networks/resell-server/internal/storage"
)

// Transition checks a status change. AVAILABLE -> SOLD is the only legal move.
func Transition(from, to storage.ItemStatus) error {
	if from == storage.ItemStatusAvailable && to == storage.ItemStatusSold {
		return nil
	}
	return fmt.Errorf("%w: cannot move from %s to %s", ErrItemNotAvailable, from, to)
}

// CheckPurchasable fails with ErrItemNotAvailable unless the item can be sold.
func CheckPurchasable(item *storage.Item) error {
	if err := Transition(item.Status, storage.ItemStatusSold); err != nil {
		return fmt.Errorf("item %s: %w", item.ID, err)
	}
	return nil
}

// IsOwner reports whether username is the item's seller. It is false for a
// nil item, an item without a known seller or an empty username.
func IsOwner(item *storage.Item, username string) bool {
	if item == nil || item.SellerUsername == "" || username == "" {
		return false
	}
	return item.SellerUsername == username
}
