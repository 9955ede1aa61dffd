package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/resell-server/internal/market"
	"github.com/carson-networks/resell-server/internal/storage"
)

// DeleteListing removes an item. Only the seller may delete it, and only
// while it is still AVAILABLE: a sold item is referenced by the ledger.
type DeleteListing struct {
	ItemID             uuid.UUID
	RequestingUsername string
	IAction
}

func (d *DeleteListing) Perform(ctx context.Context, writer *storage.Writer) error {
	item, err := writer.Items.FindByIDForUpdate(ctx, d.ItemID)
	if err != nil {
		return translate(err, "item "+d.ItemID.String())
	}
	if !market.IsOwner(item, d.RequestingUsername) {
		return fmt.Errorf("delete item %s as %q: %w", d.ItemID, d.RequestingUsername, market.ErrInvalidOwner)
	}
	if item.Status != storage.ItemStatusAvailable {
		return fmt.Errorf("delete item %s: %w", d.ItemID, market.ErrItemNotAvailable)
	}

	return translate(writer.Items.Delete(ctx, d.ItemID), "delete item")
}
