package item

import (
	"time"

	"github.com/carson-networks/resell-server/internal/service"
)

// Item is the API response model for an item.
type Item struct {
	ID             string `json:"id" doc:"Item UUID"`
	Name           string `json:"name" doc:"Item name"`
	Brand          string `json:"brand" doc:"Brand"`
	Category       string `json:"category" doc:"Category"`
	SubCategory    string `json:"subCategory" doc:"Subcategory, always within the category"`
	Condition      string `json:"condition" doc:"Condition"`
	Size           string `json:"size" doc:"Size label"`
	Price          string `json:"price" doc:"Decimal price"`
	Status         string `json:"status" doc:"AVAILABLE or SOLD"`
	SellerUsername string `json:"sellerUsername" doc:"Username of the seller"`
	ListedAt       string `json:"listedAt" doc:"RFC3339 listing time"`
}

func FromService(item *service.Item) Item {
	return Item{
		ID:             item.ID.String(),
		Name:           item.Name,
		Brand:          item.Brand,
		Category:       string(item.Category),
		SubCategory:    string(item.SubCategory),
		Condition:      string(item.Condition),
		Size:           item.Size,
		Price:          item.Price.String(),
		Status:         string(item.Status),
		SellerUsername: item.SellerUsername,
		ListedAt:       item.ListedAt.Format(time.RFC3339),
	}
}
