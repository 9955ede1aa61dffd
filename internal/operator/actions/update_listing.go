package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/resell-server/internal/market"
	"github.com/carson-networks/resell-server/internal/storage"
)

// UpdateListing overwrites the editable details of an item. Only the seller
// may edit; category, seller, status and listing time are left alone.
type UpdateListing struct {
	ItemID             uuid.UUID
	RequestingUsername string
	Details            storage.ItemDetails

	Result *storage.Item
	IAction
}

func (u *UpdateListing) Perform(ctx context.Context, writer *storage.Writer) error {
	item, err := writer.Items.FindByIDForUpdate(ctx, u.ItemID)
	if err != nil {
		return translate(err, "item "+u.ItemID.String())
	}
	if !market.IsOwner(item, u.RequestingUsername) {
		return fmt.Errorf("edit item %s as %q: %w", u.ItemID, u.RequestingUsername, market.ErrInvalidOwner)
	}
	if err := market.ValidateDetails(&u.Details); err != nil {
		return err
	}

	if err := writer.Items.UpdateDetails(ctx, u.ItemID, &u.Details); err != nil {
		return translate(err, "update item")
	}

	updated, err := writer.Items.FindByID(ctx, u.ItemID)
	if err != nil {
		return translate(err, "item "+u.ItemID.String())
	}
	u.Result = updated
	return nil
}
