package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Binder geometry. The binder is a fixed book of 24 nine-pocket pages.
const (
	TotalSlots   = 216
	SlotsPerPage = 9
	TotalPages   = TotalSlots / SlotsPerPage
)

// TotalSpreads is the number of two-page views: 12 page pairs plus the
// leading cover spread.
const TotalSpreads = (TotalPages+1)/2 + 1

// SlotCard is the denormalized snapshot stored in a binder slot. Slots hold
// a projection rather than a reference so later edits to the source
// collection do not retroactively change what the binder displays.
type SlotCard struct {
	ID           string          `json:"id"`
	ProductName  string          `json:"product_name"`
	ImageURL     string          `json:"image_url,omitempty"`
	CatalogGroup string          `json:"catalog_group"`
	Variant      string          `json:"variant,omitempty"`
	Price        decimal.Decimal `json:"price"`
}

// Snapshot builds the slot projection for a card.
func Snapshot(card *Card) *SlotCard {
	return &SlotCard{
		ID:           card.ID,
		ProductName:  card.ProductName,
		ImageURL:     card.ImageURL,
		CatalogGroup: card.CatalogGroup,
		Variant:      card.Variant,
		Price:        card.DisplayPrice(),
	}
}

// Layout is the binder placement state: a fixed grid of pages and slots
// plus the set of card IDs currently placed. The used set is redundant with
// the pages but kept in sync for O(1) availability filtering.
type Layout struct {
	pages [][]*SlotCard
	used  map[string]struct{}
}

// NewLayout creates an empty binder layout with all pages and slots present.
func NewLayout() *Layout {
	pages := make([][]*SlotCard, TotalPages)
	for i := range pages {
		pages[i] = make([]*SlotCard, SlotsPerPage)
	}
	return &Layout{
		pages: pages,
		used:  make(map[string]struct{}),
	}
}

// RestoreLayout rebuilds a layout from persisted pages. Missing or short
// pages are padded with empty slots so the grid is always exactly
// TotalPages x SlotsPerPage; the used set is derived from the slots, never
// trusted from the caller, so the two can't drift on load.
func RestoreLayout(pages [][]*SlotCard) *Layout {
	l := NewLayout()
	for i := 0; i < TotalPages && i < len(pages); i++ {
		for j := 0; j < SlotsPerPage && j < len(pages[i]); j++ {
			if card := pages[i][j]; card != nil {
				copied := *card
				l.pages[i][j] = &copied
				l.used[card.ID] = struct{}{}
			}
		}
	}
	return l
}

// Pages returns a deep copy of the slot grid.
func (l *Layout) Pages() [][]*SlotCard {
	pages := make([][]*SlotCard, TotalPages)
	for i, page := range l.pages {
		pages[i] = make([]*SlotCard, SlotsPerPage)
		for j, card := range page {
			if card != nil {
				copied := *card
				pages[i][j] = &copied
			}
		}
	}
	return pages
}

// UsedCardIDs returns the IDs of all placed cards.
func (l *Layout) UsedCardIDs() []string {
	ids := make([]string, 0, len(l.used))
	for id := range l.used {
		ids = append(ids, id)
	}
	return ids
}

// IsUsed reports whether the card ID occupies a slot.
func (l *Layout) IsUsed(cardID string) bool {
	_, ok := l.used[cardID]
	return ok
}

// UsedCount returns the number of filled slots.
func (l *Layout) UsedCount() int {
	return len(l.used)
}

// At returns the slot contents, or nil for an empty or out-of-range slot.
func (l *Layout) At(pageIndex, slotIndex int) *SlotCard {
	if !inBounds(pageIndex, slotIndex) {
		return nil
	}
	return l.pages[pageIndex][slotIndex]
}

// Place puts a card snapshot into a slot. It reports false without changing
// anything when the indices are out of range, the slot is occupied, or the
// card already occupies another slot. Rejections are silent no-ops so a
// repeated drop gesture is idempotent.
func (l *Layout) Place(pageIndex, slotIndex int, card *Card) bool {
	if card == nil || !inBounds(pageIndex, slotIndex) {
		return false
	}
	if l.pages[pageIndex][slotIndex] != nil {
		return false
	}
	if _, taken := l.used[card.ID]; taken {
		return false
	}

	l.pages[pageIndex][slotIndex] = Snapshot(card)
	l.used[card.ID] = struct{}{}
	return true
}

// Remove clears a slot and releases its card ID. Removing an empty or
// out-of-range slot is a no-op; it reports whether anything changed.
func (l *Layout) Remove(pageIndex, slotIndex int) bool {
	if !inBounds(pageIndex, slotIndex) {
		return false
	}
	card := l.pages[pageIndex][slotIndex]
	if card == nil {
		return false
	}

	l.pages[pageIndex][slotIndex] = nil
	delete(l.used, card.ID)
	return true
}

// Clone returns an independent copy of the layout. Mutating services clone
// before applying a change so a failed persist leaves the original intact.
func (l *Layout) Clone() *Layout {
	clone := &Layout{
		pages: l.Pages(),
		used:  make(map[string]struct{}, len(l.used)),
	}
	for id := range l.used {
		clone.used[id] = struct{}{}
	}
	return clone
}

func inBounds(pageIndex, slotIndex int) bool {
	return pageIndex >= 0 && pageIndex < TotalPages &&
		slotIndex >= 0 && slotIndex < SlotsPerPage
}

// AvailableCards returns the cards from the collection not currently placed
// in the binder, optionally filtered by a case-insensitive substring match
// on product name or catalog group. It is a pure function of its inputs and
// is recomputed on every call rather than cached.
func (l *Layout) AvailableCards(cards []Card, filter string) []Card {
	filter = strings.ToLower(strings.TrimSpace(filter))

	available := make([]Card, 0, len(cards))
	for _, card := range cards {
		if _, placed := l.used[card.ID]; placed {
			continue
		}
		if filter != "" &&
			!strings.Contains(strings.ToLower(card.ProductName), filter) &&
			!strings.Contains(strings.ToLower(card.CatalogGroup), filter) {
			continue
		}
		available = append(available, card)
	}
	return available
}

// Spread is a two-page view. Either side may be the cover, a page index, or
// blank (past the last page).
type Spread struct {
	Left  PageRef `json:"left"`
	Right PageRef `json:"right"`
}

// PageRef identifies one side of a spread. Exactly one of Cover or Page is
// meaningful; a zero PageRef renders as a blank page.
type PageRef struct {
	Cover bool `json:"cover,omitempty"`
	Page  *int `json:"page,omitempty"`
}

// Blank reports whether this side renders as an empty filler page.
func (p PageRef) Blank() bool {
	return !p.Cover && p.Page == nil
}

func pageRef(index int) PageRef {
	if index < 0 || index >= TotalPages {
		return PageRef{}
	}
	return PageRef{Page: &index}
}

// SpreadFor maps a spread index to its page pair. Spread 0 is the cover
// next to page 0; spread k pairs pages 2k-1 and 2k. Indices whose right
// page falls past the last page get a blank right side. The function is
// total over [0, TotalSpreads).
func SpreadFor(spreadIndex int) Spread {
	if spreadIndex == 0 {
		return Spread{
			Left:  PageRef{Cover: true},
			Right: pageRef(0),
		}
	}
	left := spreadIndex*2 - 1
	return Spread{
		Left:  pageRef(left),
		Right: pageRef(left + 1),
	}
}
