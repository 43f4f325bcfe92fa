package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/palmsoff/binderd/internal/domain"
	apperrors "github.com/palmsoff/binderd/internal/errors"
	"github.com/palmsoff/binderd/internal/id"
	"github.com/palmsoff/binderd/internal/store"
)

// CollectionSummary is the list view of a collection.
type CollectionSummary struct {
	Name           string          `json:"name"`
	UniqueCount    int             `json:"unique_count"`
	TotalCardCount int             `json:"total_card_count"`
	TotalValue     decimal.Decimal `json:"total_value"`
}

// CollectionStats is the per-collection dashboard payload.
type CollectionStats struct {
	Name           string          `json:"name"`
	UniqueCount    int             `json:"unique_count"`
	TotalCardCount int             `json:"total_card_count"`
	UniqueGroups   int             `json:"unique_groups"`
	TotalValue     decimal.Decimal `json:"total_value"`
	Recent         []domain.Card   `json:"recent"`
}

// CardPatch is a partial card update. Nil fields are left unchanged;
// QuantityDelta adjusts rather than replaces.
type CardPatch struct {
	Grade         *string          `json:"grade,omitempty"`
	Condition     *string          `json:"condition,omitempty"`
	CostPaid      *decimal.Decimal `json:"cost_paid,omitempty"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	QuantityDelta int              `json:"quantity_delta,omitempty"`
}

// CollectionService manages named collections and the cards inside them.
type CollectionService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(store *store.Store, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		store:  store,
		logger: logger,
	}
}

// ListCollections returns summaries for every collection.
func (s *CollectionService) ListCollections(ctx context.Context) ([]CollectionSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.store.GetImports()
	if err != nil {
		return nil, apperrors.Persistence("read collections").WithCause(err)
	}

	summaries := make([]CollectionSummary, 0, len(doc.Collections))
	for name, cards := range doc.Collections {
		coll := domain.Collection{Name: name, Cards: cards}
		summaries = append(summaries, CollectionSummary{
			Name:           name,
			UniqueCount:    coll.UniqueCount(),
			TotalCardCount: coll.TotalCardCount(),
			TotalValue:     coll.TotalValue(),
		})
	}
	return summaries, nil
}

// GetCollection returns a collection with its cards.
func (s *CollectionService) GetCollection(ctx context.Context, name string) (*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.store.GetImports()
	if err != nil {
		return nil, apperrors.Persistence("read collections").WithCause(err)
	}

	cards, ok := doc.Collections[name]
	if !ok {
		return nil, apperrors.NotFoundf("collection %q not found", name)
	}
	return &domain.Collection{Name: name, Cards: cards}, nil
}

// CreateCollection creates a new empty collection.
func (s *CollectionService) CreateCollection(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return apperrors.Validation("collection name is required")
	}

	doc, err := s.store.GetImports()
	if err != nil {
		return apperrors.Persistence("read collections").WithCause(err)
	}
	if _, exists := doc.Collections[name]; exists {
		return apperrors.Validationf("collection %q already exists", name)
	}

	doc.Collections[name] = []domain.Card{}
	if err := s.store.PutImports(doc); err != nil {
		return apperrors.Persistence("write collections").WithCause(err)
	}

	s.logger.Info("collection created", "name", name)
	return nil
}

// DeleteCollection removes a collection and its cards. The global image
// cache deliberately survives so a later re-import keeps its urls.
func (s *CollectionService) DeleteCollection(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := s.store.GetImports()
	if err != nil {
		return apperrors.Persistence("read collections").WithCause(err)
	}
	if _, exists := doc.Collections[name]; !exists {
		return apperrors.NotFoundf("collection %q not found", name)
	}

	delete(doc.Collections, name)
	if err := s.store.PutImports(doc); err != nil {
		return apperrors.Persistence("write collections").WithCause(err)
	}

	s.logger.Info("collection deleted", "name", name)
	return nil
}

// AddCard appends a manually entered card to a collection, creating the
// collection if needed. The card gets a fresh ID and the cached image for
// its catalog entry, if any.
func (s *CollectionService) AddCard(ctx context.Context, collectionName string, card domain.Card) (*domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if collectionName == "" {
		collectionName = domain.DefaultCollection
	}
	if card.ProductName == "" {
		return nil, apperrors.Validation("product name is required")
	}

	cardID, err := id.Card(card.CatalogGroup, card.ProductName, card.CardNumber)
	if err != nil {
		return nil, apperrors.Internal("generate card ID").WithCause(err)
	}
	card.ID = cardID
	if card.Quantity < 1 {
		card.Quantity = 1
	}
	card.DateAdded = time.Now()

	cache, err := s.store.GetImageCache()
	if err != nil {
		return nil, apperrors.Persistence("read image cache").WithCause(err)
	}
	if url := cache.Lookup(card.ProductName, card.CatalogGroup); url != "" {
		card.ImageURL = url
	}

	doc, err := s.store.GetImports()
	if err != nil {
		return nil, apperrors.Persistence("read collections").WithCause(err)
	}
	doc.Collections[collectionName] = append(doc.Collections[collectionName], card)
	if err := s.store.PutImports(doc); err != nil {
		return nil, apperrors.Persistence("write collections").WithCause(err)
	}

	s.logger.Info("card added", "collection", collectionName, "card_id", card.ID)
	return &card, nil
}

// UpdateCard applies a partial update to a card. A quantity delta that
// drops the quantity below one removes the card entirely.
func (s *CollectionService) UpdateCard(ctx context.Context, collectionName, cardID string, patch CardPatch) (*domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.store.GetImports()
	if err != nil {
		return nil, apperrors.Persistence("read collections").WithCause(err)
	}
	cards, ok := doc.Collections[collectionName]
	if !ok {
		return nil, apperrors.NotFoundf("collection %q not found", collectionName)
	}

	coll := domain.Collection{Name: collectionName, Cards: cards}
	card := coll.FindCard(cardID)
	if card == nil {
		return nil, apperrors.NotFoundf("card %q not found in %q", cardID, collectionName)
	}

	if patch.Grade != nil {
		card.Grade = *patch.Grade
	}
	if patch.Condition != nil {
		card.Condition = *patch.Condition
	}
	if patch.CostPaid != nil {
		card.CostPaid = patch.CostPaid
	}
	if patch.PriceOverride != nil {
		card.PriceOverride = patch.PriceOverride
	}
	if patch.Notes != nil {
		card.Notes = *patch.Notes
	}

	removed := false
	if patch.QuantityDelta != 0 {
		_, removed = coll.AdjustQuantity(cardID, patch.QuantityDelta)
	}

	doc.Collections[collectionName] = coll.Cards
	if err := s.store.PutImports(doc); err != nil {
		return nil, apperrors.Persistence("write collections").WithCause(err)
	}

	if removed {
		s.logger.Info("card removed via quantity", "collection", collectionName, "card_id", cardID)
		return nil, nil
	}
	return card, nil
}

// RemoveCard deletes a card from a collection.
func (s *CollectionService) RemoveCard(ctx context.Context, collectionName, cardID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := s.store.GetImports()
	if err != nil {
		return apperrors.Persistence("read collections").WithCause(err)
	}
	cards, ok := doc.Collections[collectionName]
	if !ok {
		return apperrors.NotFoundf("collection %q not found", collectionName)
	}

	coll := domain.Collection{Name: collectionName, Cards: cards}
	if !coll.RemoveCard(cardID) {
		return apperrors.NotFoundf("card %q not found in %q", cardID, collectionName)
	}

	doc.Collections[collectionName] = coll.Cards
	if err := s.store.PutImports(doc); err != nil {
		return apperrors.Persistence("write collections").WithCause(err)
	}

	s.logger.Info("card removed", "collection", collectionName, "card_id", cardID)
	return nil
}

// Stats returns the dashboard numbers for one collection.
func (s *CollectionService) Stats(ctx context.Context, name string) (*CollectionStats, error) {
	coll, err := s.GetCollection(ctx, name)
	if err != nil {
		return nil, err
	}

	return &CollectionStats{
		Name:           coll.Name,
		UniqueCount:    coll.UniqueCount(),
		TotalCardCount: coll.TotalCardCount(),
		UniqueGroups:   coll.UniqueGroups(),
		TotalValue:     coll.TotalValue(),
		Recent:         coll.Recent(recentLimit),
	}, nil
}

// recentLimit caps the recent-additions list in stats payloads.
const recentLimit = 10
