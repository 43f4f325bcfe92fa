package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Priority classifies how badly a wishlist card is wanted. It is purely
// descriptive: it drives display grouping and badges, not ordering logic.
type Priority string

// Wishlist priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// NormalizePriority maps unknown or empty values to the default medium.
func NormalizePriority(p Priority) Priority {
	switch p {
	case PriorityHigh, PriorityLow:
		return p
	default:
		return PriorityMedium
	}
}

// WishlistItem is a card the user wants but does not own. It carries its
// own entity ID distinct from the catalog card ID so the same catalog card
// can be wished for and owned at once.
type WishlistItem struct {
	ID           string          `json:"id"`
	CardID       string          `json:"card_id,omitempty"`
	ProductName  string          `json:"product_name"`
	CatalogGroup string          `json:"catalog_group"`
	ImageURL     string          `json:"image_url,omitempty"`
	MarketPrice  decimal.Decimal `json:"market_price"`
	Priority     Priority        `json:"priority"`
	Notes        string          `json:"notes,omitempty"`
	DateAdded    time.Time       `json:"date_added"`
}

// ToCard converts a wishlist item into a canonical card for the
// move-to-collection transition. The caller assigns the new card ID.
func (w *WishlistItem) ToCard(cardID string, now time.Time) Card {
	return Card{
		ID:           cardID,
		ProductName:  w.ProductName,
		CatalogGroup: w.CatalogGroup,
		ImageURL:     w.ImageURL,
		MarketPrice:  w.MarketPrice,
		Quantity:     1,
		DateAdded:    now,
	}
}
