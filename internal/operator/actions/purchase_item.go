package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/resell-server/internal/market"
	"github.com/carson-networks/resell-server/internal/storage"
)

// PurchaseItem settles the sale of one item: it records the ledger entry,
// credits the seller with the price net of commission and marks the item
// SOLD. All of it commits in the operator's transaction or none of it does.
//
// Rows are locked item first, then seller, so concurrent purchases of the
// same item queue on the item row and the loser sees SOLD.
type PurchaseItem struct {
	ItemID            uuid.UUID
	BuyerUsername     string
	Commission        *market.CommissionCalculator
	AllowSelfPurchase bool

	Result *storage.Transaction
	IAction
}

func (p *PurchaseItem) Perform(ctx context.Context, writer *storage.Writer) error {
	item, err := writer.Items.FindByIDForUpdate(ctx, p.ItemID)
	if err != nil {
		return translate(err, "item "+p.ItemID.String())
	}

	buyer, err := writer.Users.FindByUsername(ctx, p.BuyerUsername)
	if err != nil {
		return translate(err, "buyer "+p.BuyerUsername)
	}

	if err := market.CheckPurchasable(item); err != nil {
		return err
	}
	if !p.AllowSelfPurchase && buyer.ID == item.SellerID {
		return fmt.Errorf("item %s: %w", item.ID, market.ErrSelfPurchase)
	}

	seller, err := writer.Users.FindByIDForUpdate(ctx, item.SellerID)
	if err != nil {
		return translate(err, "seller "+item.SellerID.String())
	}

	commission := p.Commission.Commission(item.Price)
	entry, err := writer.Transactions.Insert(ctx, &storage.TransactionCreate{
		BuyerID:    buyer.ID,
		SellerID:   seller.ID,
		ItemID:     item.ID,
		Amount:     item.Price,
		Commission: commission,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		return fmt.Errorf("item %s already settled: %w", item.ID, market.ErrItemNotAvailable)
	}
	if err != nil {
		return translate(err, "ledger entry for item "+item.ID.String())
	}

	payout := item.Price.Sub(commission)
	if err := writer.Users.UpdateBalance(ctx, seller.ID, seller.Balance.Add(payout)); err != nil {
		return translate(err, "credit seller")
	}

	if err := writer.Items.UpdateStatus(ctx, item.ID, storage.ItemStatusSold); err != nil {
		return translate(err, "mark item sold")
	}

	logrus.WithFields(logrus.Fields{
		"itemID":     item.ID.String(),
		"buyerID":    buyer.ID.String(),
		"sellerID":   seller.ID.String(),
		"amount":     item.Price.String(),
		"commission": commission.String(),
	}).Debug("PurchaseItem.Settled")

	p.Result = entry
	return nil
}
