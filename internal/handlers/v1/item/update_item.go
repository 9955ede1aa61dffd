package item

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	v1 "github.com/carson-networks/resell-server/internal/handlers/v1"
	"github.com/carson-networks/resell-server/internal/logging"
	"github.com/carson-networks/resell-server/internal/service"
	"github.com/carson-networks/resell-server/internal/storage"
)

// UpdateItemBody holds the fields an edit overwrites. Category, seller,
// status and listing time cannot be edited.
type UpdateItemBody struct {
	Name      string `json:"name" minLength:"1" doc:"Item name"`
	Brand     string `json:"brand" minLength:"1" doc:"Brand"`
	Condition string `json:"condition" enum:"NEW,LIKE_NEW,GOOD,FAIR,POOR,USED" doc:"Condition"`
	Size      string `json:"size" minLength:"1" doc:"Size label"`
	Price     string `json:"price" doc:"Decimal price greater than zero"`
}

type UpdateItemInput struct {
	ID       string `path:"id" doc:"Item UUID"`
	Username string `header:"X-Username" required:"true" doc:"Authenticated user, must be the seller"`
	Body     UpdateItemBody
}

type UpdateItemOutput struct {
	Body Item
}

type listingUpdater interface {
	UpdateListing(ctx context.Context, id uuid.UUID, username string, details service.ListingDetails) (*service.Item, error)
}

// UpdateItemHandler handles PUT /v1/items/{id}.
type UpdateItemHandler struct {
	ListingService listingUpdater
}

func NewUpdateItemHandler(svc listingUpdater) *UpdateItemHandler {
	return &UpdateItemHandler{ListingService: svc}
}

func (h *UpdateItemHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-item",
		Method:      http.MethodPut,
		Path:        "/v1/items/{id}",
		Summary:     "Edit a listing",
		Description: "Overwrites name, brand, condition, size and price. Only the seller may edit.",
		Tags:        []string{"Items"},
	}, h.handle)
}

func parseUpdateItemInput(input *UpdateItemInput) (uuid.UUID, service.ListingDetails, error) {
	id, err := parseItemID(input.ID)
	if err != nil {
		return uuid.Nil, service.ListingDetails{}, err
	}
	price, err := decimal.NewFromString(input.Body.Price)
	if err != nil {
		return uuid.Nil, service.ListingDetails{}, huma.NewError(http.StatusBadRequest, "invalid price", err)
	}
	return id, service.ListingDetails{
		Name:      input.Body.Name,
		Brand:     input.Body.Brand,
		Condition: storage.Condition(input.Body.Condition),
		Size:      input.Body.Size,
		Price:     price,
	}, nil
}

func (h *UpdateItemHandler) handle(ctx context.Context, input *UpdateItemInput) (*UpdateItemOutput, error) {
	id, details, err := parseUpdateItemInput(input)
	if err != nil {
		return nil, err
	}
	logging.GetLogData(ctx).AddData("itemID", id.String())

	updated, err := h.ListingService.UpdateListing(ctx, id, input.Username, details)
	if err != nil {
		return nil, v1.ToHumaError(err, "failed to update listing")
	}
	return &UpdateItemOutput{Body: FromService(updated)}, nil
}
