package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/palmsoff/binderd/internal/domain"
	apperrors "github.com/palmsoff/binderd/internal/errors"
	"github.com/palmsoff/binderd/internal/id"
	"github.com/palmsoff/binderd/internal/store"
)

// WishlistService manages the prioritized wishlist.
type WishlistService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(store *store.Store, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		store:  store,
		logger: logger,
	}
}

// List returns every wishlist item, high priority first, newest first
// within a priority.
func (s *WishlistService) List(ctx context.Context) ([]domain.WishlistItem, error) {
	items := make([]domain.WishlistItem, 0)
	for item, err := range s.store.Wishlist.List(ctx) {
		if err != nil {
			return nil, apperrors.Persistence("read wishlist").WithCause(err)
		}
		items = append(items, *item)
	}

	rank := map[domain.Priority]int{
		domain.PriorityHigh:   0,
		domain.PriorityMedium: 1,
		domain.PriorityLow:    2,
	}
	sort.SliceStable(items, func(i, j int) bool {
		ri := rank[domain.NormalizePriority(items[i].Priority)]
		rj := rank[domain.NormalizePriority(items[j].Priority)]
		if ri != rj {
			return ri < rj
		}
		return items[i].DateAdded.After(items[j].DateAdded)
	})
	return items, nil
}

// Add creates a wishlist item. Unknown priorities default to medium.
func (s *WishlistService) Add(ctx context.Context, item domain.WishlistItem) (*domain.WishlistItem, error) {
	if item.ProductName == "" {
		return nil, apperrors.Validation("product name is required")
	}

	itemID, err := id.Generate("wish")
	if err != nil {
		return nil, apperrors.Internal("generate wishlist ID").WithCause(err)
	}
	item.ID = itemID
	item.Priority = domain.NormalizePriority(item.Priority)
	item.DateAdded = time.Now()

	if err := s.store.Wishlist.Create(ctx, item.ID, &item); err != nil {
		return nil, apperrors.Persistence("write wishlist item").WithCause(err)
	}

	s.logger.Info("wishlist item added", "id", item.ID, "priority", item.Priority)
	return &item, nil
}

// Remove deletes a wishlist item.
func (s *WishlistService) Remove(ctx context.Context, itemID string) error {
	if _, err := s.store.Wishlist.Get(ctx, itemID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFoundf("wishlist item %q not found", itemID)
		}
		return apperrors.Persistence("read wishlist item").WithCause(err)
	}

	if err := s.store.Wishlist.Delete(ctx, itemID); err != nil {
		return apperrors.Persistence("delete wishlist item").WithCause(err)
	}

	s.logger.Info("wishlist item removed", "id", itemID)
	return nil
}

// MoveToCollection turns a wishlist item into an owned card: create in the
// collection, then delete from the wishlist. The two writes are sequential
// and not atomic; a crash between them leaves the card in both places,
// which is visible and easy to fix by hand.
func (s *WishlistService) MoveToCollection(ctx context.Context, itemID, collectionName string) (*domain.Card, error) {
	item, err := s.store.Wishlist.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundf("wishlist item %q not found", itemID)
		}
		return nil, apperrors.Persistence("read wishlist item").WithCause(err)
	}
	if collectionName == "" {
		collectionName = domain.DefaultCollection
	}

	cardID, err := id.Card(item.CatalogGroup, item.ProductName, "")
	if err != nil {
		return nil, apperrors.Internal("generate card ID").WithCause(err)
	}
	card := item.ToCard(cardID, time.Now())

	doc, err := s.store.GetImports()
	if err != nil {
		return nil, apperrors.Persistence("read collections").WithCause(err)
	}
	doc.Collections[collectionName] = append(doc.Collections[collectionName], card)
	if err := s.store.PutImports(doc); err != nil {
		return nil, apperrors.Persistence("write collections").WithCause(err)
	}

	if err := s.store.Wishlist.Delete(ctx, itemID); err != nil {
		return nil, apperrors.Persistence("delete wishlist item").WithCause(err)
	}

	s.logger.Info("wishlist item moved",
		"id", itemID,
		"collection", collectionName,
		"card_id", card.ID,
	)
	return &card, nil
}
