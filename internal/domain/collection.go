package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Collection is a named set of canonical cards. Order is not significant;
// display surfaces sort on date added.
type Collection struct {
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// FindCard returns the card with the given ID, or nil.
func (c *Collection) FindCard(cardID string) *Card {
	for i := range c.Cards {
		if c.Cards[i].ID == cardID {
			return &c.Cards[i]
		}
	}
	return nil
}

// RemoveCard deletes the card with the given ID, reporting whether it was
// present.
func (c *Collection) RemoveCard(cardID string) bool {
	for i := range c.Cards {
		if c.Cards[i].ID == cardID {
			c.Cards = slices.Delete(c.Cards, i, i+1)
			return true
		}
	}
	return false
}

// AdjustQuantity applies a quantity delta to the card with the given ID.
// When the new quantity would drop below 1 the card is removed entirely
// rather than stored at zero or negative quantity. It reports whether the
// card was found and whether it was removed.
func (c *Collection) AdjustQuantity(cardID string, delta int) (found, removed bool) {
	card := c.FindCard(cardID)
	if card == nil {
		return false, false
	}

	newQuantity := card.EffectiveQuantity() + delta
	if newQuantity < 1 {
		c.RemoveCard(cardID)
		return true, true
	}
	card.Quantity = newQuantity
	return true, false
}

// UniqueCount is the number of distinct cards (list length).
func (c *Collection) UniqueCount() int {
	return len(c.Cards)
}

// TotalCardCount sums quantities across the collection; distinct from
// UniqueCount when cards have quantity above 1.
func (c *Collection) TotalCardCount() int {
	total := 0
	for i := range c.Cards {
		total += c.Cards[i].EffectiveQuantity()
	}
	return total
}

// TotalValue sums each card's valuation (cost paid falling back to market
// price, times quantity) over the collection.
func (c *Collection) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Cards {
		total = total.Add(c.Cards[i].Value())
	}
	return total
}

// UniqueGroups counts the distinct catalog groups represented.
func (c *Collection) UniqueGroups() int {
	groups := make(map[string]struct{})
	for i := range c.Cards {
		groups[c.Cards[i].CatalogGroup] = struct{}{}
	}
	return len(groups)
}

// Recent returns up to n cards sorted newest-first by date added. The
// receiver's card order is not modified.
func (c *Collection) Recent(n int) []Card {
	sorted := slices.Clone(c.Cards)
	slices.SortStableFunc(sorted, func(a, b Card) int {
		return b.DateAdded.Compare(a.DateAdded)
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
