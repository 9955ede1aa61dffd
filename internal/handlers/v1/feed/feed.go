package feed

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	v1 "github.com/carson-networks/resell-server/internal/handlers/v1"
	"github.com/carson-networks/resell-server/internal/handlers/v1/item"
	"github.com/carson-networks/resell-server/internal/logging"
	"github.com/carson-networks/resell-server/internal/service"
	"github.com/carson-networks/resell-server/internal/storage"
)

// FeedInput holds the optional search filters and the page selection.
// An empty filter matches every item.
type FeedInput struct {
	Name        string `query:"name" doc:"Case-insensitive substring of the item name"`
	Brand       string `query:"brand" doc:"Case-insensitive substring of the brand"`
	Category    string `query:"category" enum:"TOPS,BOTTOMS,OUTERWEAR,FOOTWEAR,ACCESSORIES" doc:"Exact category"`
	SubCategory string `query:"subCategory" enum:"T_SHIRTS,SHIRTS,SWEATERS,TROUSERS,JEANS,SHORTS,SKIRTS,JACKETS,COATS,SNEAKERS,BOOTS,BAGS,HATS" doc:"Exact subcategory"`
	Condition   string `query:"condition" enum:"NEW,LIKE_NEW,GOOD,FAIR,POOR,USED" doc:"Exact condition"`
	Size        string `query:"size" doc:"Size label, case-insensitive"`
	Lowest      string `query:"lowest" doc:"Inclusive lower price bound, defaults to 0"`
	Highest     string `query:"highest" doc:"Inclusive upper price bound"`
	Page        int    `query:"page" default:"0" minimum:"0" doc:"Zero-indexed page"`
	PageSize    int    `query:"pageSize" default:"10" minimum:"1" maximum:"100" doc:"Items per page"`
	Sort        string `query:"sort" default:"newest" enum:"newest,oldest,price_asc,price_desc" doc:"Result ordering"`
}

type FeedResponseBody struct {
	Items      []item.Item `json:"items" doc:"Page of AVAILABLE items"`
	TotalCount int64       `json:"totalCount" doc:"Number of matching items across all pages"`
	Page       int         `json:"page" doc:"Zero-indexed page returned"`
	PageSize   int         `json:"pageSize" doc:"Page size used"`
}

type FeedOutput struct {
	Body FeedResponseBody
}

type itemSearcher interface {
	Search(ctx context.Context, criteria service.SearchCriteria, page service.PageRequest) (*service.ItemPage, error)
}

// FeedHandler handles GET /v1/feed.
type FeedHandler struct {
	SearchService itemSearcher
}

func NewFeedHandler(svc itemSearcher) *FeedHandler {
	return &FeedHandler{SearchService: svc}
}

func (h *FeedHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-feed",
		Method:      http.MethodGet,
		Path:        "/v1/feed",
		Summary:     "Browse and search items",
		Description: "Returns a page of AVAILABLE items matching every supplied filter. Without filters this is the feed.",
		Tags:        []string{"Items"},
	}, h.handle)
}

func parsePrice(raw, name string) (omit.Val[decimal.Decimal], error) {
	if raw == "" {
		return omit.Val[decimal.Decimal]{}, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return omit.Val[decimal.Decimal]{}, huma.NewError(http.StatusBadRequest, "invalid "+name, err)
	}
	return omit.From(price), nil
}

func optional[T ~string](raw string) omit.Val[T] {
	if raw == "" {
		return omit.Val[T]{}
	}
	return omit.From(T(raw))
}

func parseFeedInput(input *FeedInput) (service.SearchCriteria, service.PageRequest, error) {
	lowest, err := parsePrice(input.Lowest, "lowest")
	if err != nil {
		return service.SearchCriteria{}, service.PageRequest{}, err
	}
	highest, err := parsePrice(input.Highest, "highest")
	if err != nil {
		return service.SearchCriteria{}, service.PageRequest{}, err
	}

	criteria := service.SearchCriteria{
		Name:        optional[string](input.Name),
		Brand:       optional[string](input.Brand),
		Category:    optional[storage.Category](input.Category),
		SubCategory: optional[storage.SubCategory](input.SubCategory),
		Condition:   optional[storage.Condition](input.Condition),
		Size:        optional[string](input.Size),
		Lowest:      lowest,
		Highest:     highest,
	}
	page := service.PageRequest{
		Page:     input.Page,
		PageSize: input.PageSize,
		Sort:     service.SortOrder(input.Sort),
	}
	return criteria, page, nil
}

func (h *FeedHandler) handle(ctx context.Context, input *FeedInput) (*FeedOutput, error) {
	logData := logging.GetLogData(ctx)

	criteria, page, err := parseFeedInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("searchMs")
	result, err := h.SearchService.Search(ctx, criteria, page)
	stopTimer()
	if err != nil {
		return nil, v1.ToHumaError(err, "failed to search items")
	}
	logData.AddData("itemCount", len(result.Items))

	resp := FeedResponseBody{
		Items:      make([]item.Item, len(result.Items)),
		TotalCount: result.TotalCount,
		Page:       result.Page,
		PageSize:   result.PageSize,
	}
	for i := range result.Items {
		resp.Items[i] = item.FromService(&result.Items[i])
	}
	return &FeedOutput{Body: resp}, nil
}
