package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/resell-server/internal/market"
	"github.com/carson-networks/resell-server/internal/storage"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SortOrder is the public name of a result ordering.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

var sortOrders = map[SortOrder]storage.ItemSort{
	"":            storage.SortListedAtDesc,
	SortNewest:    storage.SortListedAtDesc,
	SortOldest:    storage.SortListedAtAsc,
	SortPriceAsc:  storage.SortPriceAsc,
	SortPriceDesc: storage.SortPriceDesc,
}

// SearchCriteria holds the optional search filters. An unset field matches
// every item.
type SearchCriteria struct {
	Name        omit.Val[string]
	Brand       omit.Val[string]
	Category    omit.Val[storage.Category]
	SubCategory omit.Val[storage.SubCategory]
	Condition   omit.Val[storage.Condition]
	Size        omit.Val[string]
	Lowest      omit.Val[decimal.Decimal]
	Highest     omit.Val[decimal.Decimal]
}

// PageRequest selects one zero-indexed page. PageSize 0 means DefaultPageSize.
type PageRequest struct {
	Page     int
	PageSize int
	Sort     SortOrder
}

// ItemPage is one page of search results.
type ItemPage struct {
	Items      []Item
	TotalCount int64
	Page       int
	PageSize   int
}

// clone copies the page so cached entries never share their Items with callers.
func (p *ItemPage) clone() *ItemPage {
	c := *p
	c.Items = append([]Item(nil), p.Items...)
	return &c
}

// ComposePredicates folds the criteria into a conjunctive predicate list.
// Sold items are always excluded and the price range defaults to [0, +inf).
func ComposePredicates(c SearchCriteria) []storage.Predicate {
	predicates := []storage.Predicate{
		{Field: storage.FieldStatus, Operator: storage.OpEquals, Value: storage.ItemStatusAvailable},
		{Field: storage.FieldPrice, Operator: storage.OpGreaterOrEqual, Value: c.Lowest.GetOr(decimal.Zero)},
	}

	if v, ok := c.Highest.Get(); ok {
		predicates = append(predicates, storage.Predicate{Field: storage.FieldPrice, Operator: storage.OpLessOrEqual, Value: v})
	}
	if v, ok := c.Name.Get(); ok {
		predicates = append(predicates, storage.Predicate{Field: storage.FieldName, Operator: storage.OpContainsFold, Value: v})
	}
	if v, ok := c.Brand.Get(); ok {
		predicates = append(predicates, storage.Predicate{Field: storage.FieldBrand, Operator: storage.OpContainsFold, Value: v})
	}
	if v, ok := c.Category.Get(); ok {
		predicates = append(predicates, storage.Predicate{Field: storage.FieldCategory, Operator: storage.OpEquals, Value: v})
	}
	if v, ok := c.SubCategory.Get(); ok {
		predicates = append(predicates, storage.Predicate{Field: storage.FieldSubCategory, Operator: storage.OpEquals, Value: v})
	}
	if v, ok := c.Condition.Get(); ok {
		predicates = append(predicates, storage.Predicate{Field: storage.FieldCondition, Operator: storage.OpEquals, Value: v})
	}
	if v, ok := c.Size.Get(); ok {
		predicates = append(predicates, storage.Predicate{Field: storage.FieldSize, Operator: storage.OpEqualsFold, Value: v})
	}
	return predicates
}

func buildQuery(criteria SearchCriteria, page PageRequest) (*storage.ItemQuery, error) {
	v := &market.ValidationError{}
	if page.Page < 0 {
		v.Add("page", "must not be negative")
	}
	if page.PageSize == 0 {
		page.PageSize = DefaultPageSize
	}
	if page.PageSize < 1 || page.PageSize > MaxPageSize {
		v.Add("pageSize", fmt.Sprintf("must be between 1 and %d", MaxPageSize))
	} else if page.Page > math.MaxInt/page.PageSize {
		v.Add("page", "is too large")
	}
	sort, ok := sortOrders[page.Sort]
	if !ok {
		v.Add("sort", "unknown sort order "+string(page.Sort))
	}
	if low, ok := criteria.Lowest.Get(); ok && low.IsNegative() {
		v.Add("lowest", "must not be negative")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	return &storage.ItemQuery{
		Predicates: ComposePredicates(criteria),
		Sort:       sort,
		Limit:      page.PageSize,
		Offset:     page.Page * page.PageSize,
	}, nil
}

func cacheKey(query *storage.ItemQuery) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d/%d", query.Sort, query.Limit, query.Offset)
	for _, p := range query.Predicates {
		value := p.StringValue()
		if d, ok := p.Value.(decimal.Decimal); ok {
			value = d.String()
		}
		fmt.Fprintf(&b, "|%s:%d:%q", p.Field, p.Operator, value)
	}
	return b.String()
}

// SearchService implements search and the feed over AVAILABLE items.
type SearchService struct {
	storage *storage.Storage
	cache   *expirable.LRU[string, *ItemPage]
}

// NewSearchService creates a SearchService. A cacheSize of zero disables caching.
func NewSearchService(store *storage.Storage, cacheSize int, cacheTTL time.Duration) *SearchService {
	s := &SearchService{storage: store}
	if cacheSize > 0 {
		s.cache = expirable.NewLRU[string, *ItemPage](cacheSize, nil, cacheTTL)
	}
	return s
}

// Search returns the requested page of AVAILABLE items matching criteria.
// A price range with lowest > highest yields an empty page.
func (s *SearchService) Search(ctx context.Context, criteria SearchCriteria, page PageRequest) (*ItemPage, error) {
	query, err := buildQuery(criteria, page)
	if err != nil {
		return nil, err
	}

	key := cacheKey(query)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached.clone(), nil
		}
	}

	rows, total, err := s.storage.Items.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	result := &ItemPage{
		Items:      make([]Item, len(rows)),
		TotalCount: total,
		Page:       page.Page,
		PageSize:   query.Limit,
	}
	for i, row := range rows {
		result.Items[i] = itemFromStorage(row)
	}

	if s.cache != nil {
		s.cache.Add(key, result.clone())
	}
	return result, nil
}

// Feed is Search without criteria.
func (s *SearchService) Feed(ctx context.Context, page PageRequest) (*ItemPage, error) {
	return s.Search(ctx, SearchCriteria{}, page)
}

// Purge drops every cached page. Called after each successful write.
func (s *SearchService) Purge() {
	if s.cache != nil {
		s.cache.Purge()
	}
}
