package item

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	v1 "github.com/carson-networks/resell-server/internal/handlers/v1"
	"github.com/carson-networks/resell-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/resell-server/internal/logging"
	"github.com/carson-networks/resell-server/internal/service"
)

// PurchaseOperationID names the purchase operation for the rate limiter.
const PurchaseOperationID = "purchase-item"

type PurchaseItemInput struct {
	ID       string `path:"id" doc:"Item UUID"`
	Username string `header:"X-Username" required:"true" doc:"Authenticated buyer"`
}

type PurchaseItemOutput struct {
	Status int
	Body   transaction.Transaction
}

type itemPurchaser interface {
	Purchase(ctx context.Context, itemID uuid.UUID, buyerUsername string) (*service.Transaction, error)
}

// PurchaseItemHandler handles POST /v1/items/{id}/purchase.
type PurchaseItemHandler struct {
	TransactionService itemPurchaser
}

func NewPurchaseItemHandler(svc itemPurchaser) *PurchaseItemHandler {
	return &PurchaseItemHandler{TransactionService: svc}
}

func (h *PurchaseItemHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   PurchaseOperationID,
		Method:        http.MethodPost,
		Path:          "/v1/items/{id}/purchase",
		Summary:       "Purchase an item",
		Description:   "Buys an AVAILABLE item. The seller is credited the price less commission and the item becomes SOLD.",
		Tags:          []string{"Items", "Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *PurchaseItemHandler) handle(ctx context.Context, input *PurchaseItemInput) (*PurchaseItemOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := parseItemID(input.ID)
	if err != nil {
		return nil, err
	}
	logData.AddData("itemID", id.String())
	logData.AddData("buyer", input.Username)

	stopTimer := logData.AddTiming("purchaseMs")
	tx, err := h.TransactionService.Purchase(ctx, id, input.Username)
	stopTimer()
	if err != nil {
		return nil, v1.ToHumaError(err, "failed to purchase item")
	}

	logData.AddData("transactionID", tx.ID.String())
	return &PurchaseItemOutput{
		Status: http.StatusCreated,
		Body:   transaction.FromService(tx),
	}, nil
}
