package transaction

import (
	"time"

	"github.com/carson-networks/resell-server/internal/service"
)

// Transaction is the API response model for a ledger entry.
// It is used only for responses, not for request bodies, and is shared by
// every endpoint that returns a ledger entry.
type Transaction struct {
	ID         string `json:"id" doc:"Transaction UUID"`
	BuyerID    string `json:"buyerID" doc:"Buyer UUID"`
	SellerID   string `json:"sellerID" doc:"Seller UUID"`
	ItemID     string `json:"itemID" doc:"Item UUID"`
	Amount     string `json:"amount" doc:"Decimal sale price"`
	Commission string `json:"commission" doc:"Decimal platform commission"`
	CreatedAt  string `json:"createdAt" doc:"RFC3339 creation time"`
}

// FromService converts a service ledger entry to its wire form.
func FromService(tx *service.Transaction) Transaction {
	return Transaction{
		ID:         tx.ID.String(),
		BuyerID:    tx.BuyerID.String(),
		SellerID:   tx.SellerID.String(),
		ItemID:     tx.ItemID.String(),
		Amount:     tx.Amount.String(),
		Commission: tx.Commission.String(),
		CreatedAt:  tx.CreatedAt.Format(time.RFC3339),
	}
}
