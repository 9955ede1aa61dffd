package actions

import (
	"context"

	"github.com/carson-networks/resell-server/internal/market"
	"github.com/carson-networks/resell-server/internal/storage"
)

// CreateListing stores a new AVAILABLE item for the named seller.
type CreateListing struct {
	SellerUsername string
	Listing        storage.ItemCreate

	// Result is set once Perform succeeds.
	Result *storage.Item
	IAction
}

func (c *CreateListing) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := market.ValidateListing(&c.Listing); err != nil {
		return err
	}

	seller, err := writer.Users.FindByUsername(ctx, c.SellerUsername)
	if err != nil {
		return translate(err, "seller "+c.SellerUsername)
	}

	create := c.Listing
	create.SellerID = seller.ID
	item, err := writer.Items.Insert(ctx, &create)
	if err != nil {
		return translate(err, "insert item")
	}

	c.Result = item
	return nil
}
