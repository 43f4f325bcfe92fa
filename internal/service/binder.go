package service

import (
	"context"
	"log/slog"

	"github.com/palmsoff/binderd/internal/domain"
	apperrors "github.com/palmsoff/binderd/internal/errors"
	"github.com/palmsoff/binderd/internal/store"
)

// BinderView is the full binder payload sent to clients.
type BinderView struct {
	Pages        [][]*domain.SlotCard `json:"pages"`
	UsedCardIDs  []string             `json:"used_card_ids"`
	TotalPages   int                  `json:"total_pages"`
	SlotsPerPage int                  `json:"slots_per_page"`
	TotalSpreads int                  `json:"total_spreads"`
}

// BinderService manages binder placements. Every mutation loads the
// layout, applies the change, and persists the whole document; a failed
// write leaves the stored layout untouched.
type BinderService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewBinderService creates a new binder service.
func NewBinderService(store *store.Store, logger *slog.Logger) *BinderService {
	return &BinderService{
		store:  store,
		logger: logger,
	}
}

// Get returns the current binder layout.
func (s *BinderService) Get(ctx context.Context) (*BinderView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	layout, err := s.store.GetBinder()
	if err != nil {
		return nil, apperrors.Persistence("read binder").WithCause(err)
	}
	return binderView(layout), nil
}

// Place puts a card into a slot. Occupied slots, already-placed cards, and
// out-of-range indices are quiet no-ops so repeated drop gestures don't
// error; the current layout is returned either way.
func (s *BinderService) Place(ctx context.Context, pageIndex, slotIndex int, cardID string) (*BinderView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	card, err := s.findOwnedCard(cardID)
	if err != nil {
		return nil, err
	}

	layout, err := s.store.GetBinder()
	if err != nil {
		return nil, apperrors.Persistence("read binder").WithCause(err)
	}

	if layout.Place(pageIndex, slotIndex, card) {
		if err := s.store.PutBinder(layout); err != nil {
			return nil, apperrors.Persistence("write binder").WithCause(err)
		}
		s.logger.Info("card placed",
			"card_id", cardID,
			"page", pageIndex,
			"slot", slotIndex,
		)
	}
	return binderView(layout), nil
}

// Remove clears a slot. Empty slots are quiet no-ops.
func (s *BinderService) Remove(ctx context.Context, pageIndex, slotIndex int) (*BinderView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	layout, err := s.store.GetBinder()
	if err != nil {
		return nil, apperrors.Persistence("read binder").WithCause(err)
	}

	if layout.Remove(pageIndex, slotIndex) {
		if err := s.store.PutBinder(layout); err != nil {
			return nil, apperrors.Persistence("write binder").WithCause(err)
		}
		s.logger.Info("slot cleared", "page", pageIndex, "slot", slotIndex)
	}
	return binderView(layout), nil
}

// Available returns the owned cards not currently placed in the binder,
// optionally filtered by a case-insensitive substring.
func (s *BinderService) Available(ctx context.Context, filter string) ([]domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.store.GetImports()
	if err != nil {
		return nil, apperrors.Persistence("read collections").WithCause(err)
	}

	layout, err := s.store.GetBinder()
	if err != nil {
		return nil, apperrors.Persistence("read binder").WithCause(err)
	}

	all := make([]domain.Card, 0)
	for _, cards := range doc.Collections {
		all = append(all, cards...)
	}
	return layout.AvailableCards(all, filter), nil
}

// Spread returns the page pair for a spread index.
func (s *BinderService) Spread(ctx context.Context, index int) (*domain.Spread, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if index < 0 || index >= domain.TotalSpreads {
		return nil, apperrors.Validationf("spread index %d out of range", index)
	}

	spread := domain.SpreadFor(index)
	return &spread, nil
}

// findOwnedCard locates a card across all collections.
func (s *BinderService) findOwnedCard(cardID string) (*domain.Card, error) {
	doc, err := s.store.GetImports()
	if err != nil {
		return nil, apperrors.Persistence("read collections").WithCause(err)
	}

	for name, cards := range doc.Collections {
		coll := domain.Collection{Name: name, Cards: cards}
		if card := coll.FindCard(cardID); card != nil {
			return card, nil
		}
	}
	return nil, apperrors.NotFoundf("card %q not found", cardID)
}

func binderView(layout *domain.Layout) *BinderView {
	return &BinderView{
		Pages:        layout.Pages(),
		UsedCardIDs:  layout.UsedCardIDs(),
		TotalPages:   domain.TotalPages,
		SlotsPerPage: domain.SlotsPerPage,
		TotalSpreads: domain.TotalSpreads,
	}
}
