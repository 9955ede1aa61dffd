package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/resell-server/internal/operator/actions"
	"github.com/carson-networks/resell-server/internal/storage"
)

type cachePurger interface {
	Purge()
}

// ListingService creates, edits and removes listings.
type ListingService struct {
	storage  *storage.Storage
	operator actionProcessor
	cache    cachePurger
}

func NewListingService(store *storage.Storage, op actionProcessor, cache cachePurger) *ListingService {
	return &ListingService{storage: store, operator: op, cache: cache}
}

// CreateListing lists a new AVAILABLE item owned by sellerUsername.
func (s *ListingService) CreateListing(ctx context.Context, sellerUsername string, listing NewListing) (*Item, error) {
	action := &actions.CreateListing{
		SellerUsername: sellerUsername,
		Listing: storage.ItemCreate{
			Name:        listing.Name,
			Brand:       listing.Brand,
			Category:    listing.Category,
			SubCategory: listing.SubCategory,
			Condition:   listing.Condition,
			Size:        listing.Size,
			Price:       listing.Price,
		},
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	s.cache.Purge()

	item := itemFromStorage(action.Result)
	return &item, nil
}

// UpdateListing overwrites the editable fields. Only the seller may edit.
func (s *ListingService) UpdateListing(ctx context.Context, id uuid.UUID, username string, details ListingDetails) (*Item, error) {
	action := &actions.UpdateListing{
		ItemID:             id,
		RequestingUsername: username,
		Details: storage.ItemDetails{
			Name:      details.Name,
			Brand:     details.Brand,
			Condition: details.Condition,
			Size:      details.Size,
			Price:     details.Price,
		},
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	s.cache.Purge()

	item := itemFromStorage(action.Result)
	return &item, nil
}

// DeleteListing removes an AVAILABLE item. Only the seller may delete.
func (s *ListingService) DeleteListing(ctx context.Context, id uuid.UUID, username string) error {
	if err := s.operator.Process(ctx, &actions.DeleteListing{ItemID: id, RequestingUsername: username}); err != nil {
		return err
	}
	s.cache.Purge()
	return nil
}

// GetItem returns an item in any status.
func (s *ListingService) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	row, err := s.storage.Items.FindByID(ctx, id)
	if err != nil {
		return nil, readError(err, "item "+id.String())
	}
	item := itemFromStorage(row)
	return &item, nil
}
