// Package domain contains the core types for card inventory tracking:
// canonical cards, named collections, the wishlist, the binder layout,
// and the shared image cache. Everything here is pure in-memory logic;
// persistence lives in the store package.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCollection is the distinguished collection imports land in when no
// portfolio name is present, and the pool the binder draws from.
const DefaultCollection = "Main"

// Card is the canonical shape every imported or manually added card is
// normalized into. IDs are assigned once at normalization time and never
// change; two copies of the same catalog entry are two Cards with distinct
// IDs, not one Card with quantity 2.
type Card struct {
	ID            string           `json:"id"`
	ProductName   string           `json:"product_name"`
	CatalogGroup  string           `json:"catalog_group"`
	CardNumber    string           `json:"card_number"`
	Rarity        string           `json:"rarity"`
	Variant       string           `json:"variant"`
	Grade         string           `json:"grade"`
	Condition     string           `json:"condition"`
	CostPaid      *decimal.Decimal `json:"cost_paid,omitempty"`
	Quantity      int              `json:"quantity"`
	MarketPrice   decimal.Decimal  `json:"market_price"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
	Watchlist     bool             `json:"watchlist"`
	DateAdded     time.Time        `json:"date_added"`
	Notes         string           `json:"notes,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
}

// EffectiveQuantity returns the card's quantity, treating the zero value as 1.
func (c *Card) EffectiveQuantity() int {
	if c.Quantity < 1 {
		return 1
	}
	return c.Quantity
}

// UnitValue is the per-copy valuation: cost paid when recorded, otherwise
// the market price, otherwise zero.
func (c *Card) UnitValue() decimal.Decimal {
	if c.CostPaid != nil {
		return *c.CostPaid
	}
	return c.MarketPrice
}

// Value is the card's total valuation: unit value times quantity.
func (c *Card) Value() decimal.Decimal {
	return c.UnitValue().Mul(decimal.NewFromInt(int64(c.EffectiveQuantity())))
}

// DisplayPrice is the price shown for the card: the manual override when
// set, otherwise the market price.
func (c *Card) DisplayPrice() decimal.Decimal {
	if c.PriceOverride != nil {
		return *c.PriceOverride
	}
	return c.MarketPrice
}
