package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/resell-server/internal/storage"
)

// Item represents a listed item in the service layer.
type Item struct {
	ID             uuid.UUID
	Name           string
	Brand          string
	Category       storage.Category
	SubCategory    storage.SubCategory
	Condition      storage.Condition
	Size           string
	Price          decimal.Decimal
	Status         storage.ItemStatus
	SellerID       uuid.UUID
	SellerUsername string
	ListedAt       time.Time
}

// NewListing holds the seller supplied fields of a new listing.
type NewListing struct {
	Name        string
	Brand       string
	Category    storage.Category
	SubCategory storage.SubCategory
	Condition   storage.Condition
	Size        string
	Price       decimal.Decimal
}

// ListingDetails holds the fields an edit may overwrite.
type ListingDetails struct {
	Name      string
	Brand     string
	Condition storage.Condition
	Size      string
	Price     decimal.Decimal
}

// User represents a marketplace user in the service layer.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

func itemFromStorage(row *storage.Item) Item {
	return Item{
		ID:             row.ID,
		Name:           row.Name,
		Brand:          row.Brand,
		Category:       row.Category,
		SubCategory:    row.SubCategory,
		Condition:      row.Condition,
		Size:           row.Size,
		Price:          row.Price,
		Status:         row.Status,
		SellerID:       row.SellerID,
		SellerUsername: row.SellerUsername,
		ListedAt:       row.ListedAt,
	}
}

func userFromStorage(row *storage.User) User {
	return User{
		ID:        row.ID,
		Username:  row.Username,
		Email:     row.Email,
		Balance:   row.Balance,
		CreatedAt: row.CreatedAt,
	}
}
