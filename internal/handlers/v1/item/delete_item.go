package item

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	v1 "github.com/carson-networks/resell-server/internal/handlers/v1"
	"github.com/carson-networks/resell-server/internal/logging"
)

type DeleteItemInput struct {
	ID       string `path:"id" doc:"Item UUID"`
	Username string `header:"X-Username" required:"true" doc:"Authenticated user, must be the seller"`
}

type DeleteItemOutput struct {
	Status int
}

type listingDeleter interface {
	DeleteListing(ctx context.Context, id uuid.UUID, username string) error
}

// DeleteItemHandler handles DELETE /v1/items/{id}.
type DeleteItemHandler struct {
	ListingService listingDeleter
}

func NewDeleteItemHandler(svc listingDeleter) *DeleteItemHandler {
	return &DeleteItemHandler{ListingService: svc}
}

func (h *DeleteItemHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-item",
		Method:        http.MethodDelete,
		Path:          "/v1/items/{id}",
		Summary:       "Remove a listing",
		Description:   "Deletes an AVAILABLE item. Only the seller may delete it.",
		Tags:          []string{"Items"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteItemHandler) handle(ctx context.Context, input *DeleteItemInput) (*DeleteItemOutput, error) {
	id, err := parseItemID(input.ID)
	if err != nil {
		return nil, err
	}
	logging.GetLogData(ctx).AddData("itemID", id.String())

	if err := h.ListingService.DeleteListing(ctx, id, input.Username); err != nil {
		return nil, v1.ToHumaError(err, "failed to delete listing")
	}
	return &DeleteItemOutput{Status: http.StatusNoContent}, nil
}
