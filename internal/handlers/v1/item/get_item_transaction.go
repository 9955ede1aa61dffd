package item

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	v1 "github.com/carson-networks/resell-server/internal/handlers/v1"
	"github.com/carson-networks/resell-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/resell-server/internal/service"
)

type GetItemTransactionOutput struct {
	Body transaction.Transaction
}

type saleReader interface {
	GetTransactionForItem(ctx context.Context, itemID uuid.UUID) (*service.Transaction, error)
}

// GetItemTransactionHandler handles GET /v1/items/{id}/transaction.
type GetItemTransactionHandler struct {
	TransactionService saleReader
}

func NewGetItemTransactionHandler(svc saleReader) *GetItemTransactionHandler {
	return &GetItemTransactionHandler{TransactionService: svc}
}

func (h *GetItemTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-item-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/items/{id}/transaction",
		Summary:     "Get the sale of an item",
		Description: "Returns the ledger entry of a SOLD item, 404 while it is unsold.",
		Tags:        []string{"Items", "Transactions"},
	}, h.handle)
}

func (h *GetItemTransactionHandler) handle(ctx context.Context, input *ItemPathInput) (*GetItemTransactionOutput, error) {
	id, err := parseItemID(input.ID)
	if err != nil {
		return nil, err
	}

	tx, err := h.TransactionService.GetTransactionForItem(ctx, id)
	if err != nil {
		return nil, v1.ToHumaError(err, "failed to get transaction")
	}
	return &GetItemTransactionOutput{Body: transaction.FromService(tx)}, nil
}
