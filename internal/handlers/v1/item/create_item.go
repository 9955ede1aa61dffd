package item

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	v1 "github.com/carson-networks/resell-server/internal/handlers/v1"
	"github.com/carson-networks/resell-server/internal/logging"
	"github.com/carson-networks/resell-server/internal/service"
	"github.com/carson-networks/resell-server/internal/storage"
)

// CreateItemBody is the request body for listing an item.
type CreateItemBody struct {
	Name        string `json:"name" minLength:"1" doc:"Item name"`
	Brand       string `json:"brand" minLength:"1" doc:"Brand"`
	Category    string `json:"category" enum:"TOPS,BOTTOMS,OUTERWEAR,FOOTWEAR,ACCESSORIES" doc:"Category"`
	SubCategory string `json:"subCategory" enum:"T_SHIRTS,SHIRTS,SWEATERS,TROUSERS,JEANS,SHORTS,SKIRTS,JACKETS,COATS,SNEAKERS,BOOTS,BAGS,HATS" doc:"Subcategory, must belong to the category"`
	Condition   string `json:"condition" enum:"NEW,LIKE_NEW,GOOD,FAIR,POOR,USED" doc:"Condition"`
	Size        string `json:"size" minLength:"1" doc:"Size label"`
	Price       string `json:"price" doc:"Decimal price greater than zero (e.g. '45.00')"`
}

// CreateItemInput is the Huma input for listing an item.
type CreateItemInput struct {
	Username string `header:"X-Username" required:"true" doc:"Authenticated seller"`
	Body     CreateItemBody
}

// CreateItemOutput is the Huma output for listing an item.
type CreateItemOutput struct {
	Status int
	Body   Item
}

// listingCreator is the interface for creating listings.
type listingCreator interface {
	CreateListing(ctx context.Context, sellerUsername string, listing service.NewListing) (*service.Item, error)
}

// CreateItemHandler handles POST /v1/items.
type CreateItemHandler struct {
	ListingService listingCreator
}

// NewCreateItemHandler creates a new CreateItemHandler.
func NewCreateItemHandler(svc listingCreator) *CreateItemHandler {
	return &CreateItemHandler{ListingService: svc}
}

// Register registers the create item endpoint with the Huma API.
func (h *CreateItemHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-item",
		Method:        http.MethodPost,
		Path:          "/v1/items",
		Summary:       "List an item",
		Description:   "Lists a new item for sale by the requesting user. The item starts AVAILABLE.",
		Tags:          []string{"Items"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateItemInput(input *CreateItemInput) (service.NewListing, error) {
	price, err := decimal.NewFromString(input.Body.Price)
	if err != nil {
		return service.NewListing{}, huma.NewError(http.StatusBadRequest, "invalid price", err)
	}

	return service.NewListing{
		Name:        input.Body.Name,
		Brand:       input.Body.Brand,
		Category:    storage.Category(input.Body.Category),
		SubCategory: storage.SubCategory(input.Body.SubCategory),
		Condition:   storage.Condition(input.Body.Condition),
		Size:        input.Body.Size,
		Price:       price,
	}, nil
}

func (h *CreateItemHandler) handle(ctx context.Context, input *CreateItemInput) (*CreateItemOutput, error) {
	logData := logging.GetLogData(ctx)

	listing, err := parseCreateItemInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("createListingMs")
	created, err := h.ListingService.CreateListing(ctx, input.Username, listing)
	stopTimer()
	if err != nil {
		return nil, v1.ToHumaError(err, "failed to create listing")
	}

	logData.AddData("itemID", created.ID.String())

	return &CreateItemOutput{
		Status: http.StatusCreated,
		Body:   FromService(created),
	}, nil
}
