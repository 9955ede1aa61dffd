package item

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	v1 "github.com/carson-networks/resell-server/internal/handlers/v1"
	"github.com/carson-networks/resell-server/internal/service"
)

// ItemPathInput addresses one item.
type ItemPathInput struct {
	ID string `path:"id" doc:"Item UUID"`
}

// GetItemOutput is the Huma output for reading an item.
type GetItemOutput struct {
	Body Item
}

type itemReader interface {
	GetItem(ctx context.Context, id uuid.UUID) (*service.Item, error)
}

// GetItemHandler handles GET /v1/items/{id}.
type GetItemHandler struct {
	ListingService itemReader
}

func NewGetItemHandler(svc itemReader) *GetItemHandler {
	return &GetItemHandler{ListingService: svc}
}

func (h *GetItemHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-item",
		Method:      http.MethodGet,
		Path:        "/v1/items/{id}",
		Summary:     "Get an item",
		Description: "Returns an item in any status.",
		Tags:        []string{"Items"},
	}, h.handle)
}

func parseItemID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid item id", err)
	}
	return id, nil
}

func (h *GetItemHandler) handle(ctx context.Context, input *ItemPathInput) (*GetItemOutput, error) {
	id, err := parseItemID(input.ID)
	if err != nil {
		return nil, err
	}

	found, err := h.ListingService.GetItem(ctx, id)
	if err != nil {
		return nil, v1.ToHumaError(err, "failed to get item")
	}
	return &GetItemOutput{Body: FromService(found)}, nil
}
