package storage

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// ItemStatus is the lifecycle state of a listed item.
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "AVAILABLE"
	ItemStatusSold      ItemStatus = "SOLD"
)

// Condition describes the wear of an item.
type Condition string

const (
	ConditionNew     Condition = "NEW"
	ConditionLikeNew Condition = "LIKE_NEW"
	ConditionGood    Condition = "GOOD"
	ConditionFair    Condition = "FAIR"
	ConditionPoor    Condition = "POOR"
	ConditionUsed    Condition = "USED"
)

// Category is the top level of the catalog taxonomy.
type Category string

const (
	CategoryTops        Category = "TOPS"
	CategoryBottoms     Category = "BOTTOMS"
	CategoryOuterwear   Category = "OUTERWEAR"
	CategoryFootwear    Category = "FOOTWEAR"
	CategoryAccessories Category = "ACCESSORIES"
)

// SubCategory is the second level of the catalog taxonomy.
type SubCategory string

const (
	SubCategoryTShirts  SubCategory = "T_SHIRTS"
	SubCategoryShirts   SubCategory = "SHIRTS"
	SubCategorySweaters SubCategory = "SWEATERS"
	SubCategoryTrousers SubCategory = "TROUSERS"
	SubCategoryJeans    SubCategory = "JEANS"
	SubCategoryShorts   SubCategory = "SHORTS"
	SubCategorySkirts   SubCategory = "SKIRTS"
	SubCategoryJackets  SubCategory = "JACKETS"
	SubCategoryCoats    SubCategory = "COATS"
	SubCategorySneakers SubCategory = "SNEAKERS"
	SubCategoryBoots    SubCategory = "BOOTS"
	SubCategoryBags     SubCategory = "BAGS"
	SubCategoryHats     SubCategory = "HATS"
)

// Item represents an items record. SellerUsername is joined from users.
type Item struct {
	ID             uuid.UUID       `db:"id"`
	Name           string          `db:"name"`
	Brand          string          `db:"brand"`
	Category       Category        `db:"category"`
	SubCategory    SubCategory     `db:"sub_category"`
	Condition      Condition       `db:"condition"`
	Size           string          `db:"size"`
	Price          decimal.Decimal `db:"price"`
	Status         ItemStatus      `db:"status"`
	SellerID       uuid.UUID       `db:"seller_id"`
	SellerUsername string          `db:"seller_username"`
	ListedAt       time.Time       `db:"listed_at"`
}

// ItemCreate is the input for inserting a new item.
type ItemCreate struct {
	Name        string
	Brand       string
	Category    Category
	SubCategory SubCategory
	Condition   Condition
	Size        string
	Price       decimal.Decimal
	SellerID    uuid.UUID
	ListedAt    time.Time // defaults to now if zero
}

// ItemDetails holds the fields a seller may overwrite on an existing listing.
type ItemDetails struct {
	Name      string
	Brand     string
	Condition Condition
	Size      string
	Price     decimal.Decimal
}

// User represents a users record.
type User struct {
	ID        uuid.UUID       `db:"id"`
	Username  string          `db:"username"`
	Email     string          `db:"email"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
}

// UserCreate is the input for inserting a new user.
type UserCreate struct {
	Username string
	Email    string
}

// Transaction represents a ledger entry for a completed sale.
type Transaction struct {
	ID         uuid.UUID       `db:"id"`
	BuyerID    uuid.UUID       `db:"buyer_id"`
	SellerID   uuid.UUID       `db:"seller_id"`
	ItemID     uuid.UUID       `db:"item_id"`
	Amount     decimal.Decimal `db:"amount"`
	Commission decimal.Decimal `db:"commission"`
	CreatedAt  time.Time       `db:"created_at"`
}

// TransactionCreate is the input for inserting a ledger entry.
type TransactionCreate struct {
	BuyerID    uuid.UUID
	SellerID   uuid.UUID
	ItemID     uuid.UUID
	Amount     decimal.Decimal
	Commission decimal.Decimal
}

// TransactionFilter specifies filters for listing ledger entries.
type TransactionFilter struct {
	// UserID matches entries where the user is either buyer or seller.
	UserID          *uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}
