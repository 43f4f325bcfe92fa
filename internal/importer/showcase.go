package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/palmsoff/binderd/internal/catalog/collectr"
	"github.com/palmsoff/binderd/internal/domain"
	"github.com/palmsoff/binderd/internal/id"
)

// FromShowcase normalizes raw showcase records into canonical cards. The
// showcase API omits fields freely; absent optionals collapse to their
// zero defaults rather than failing the batch. Duplicate catalog entries
// stay distinct cards, quantities are never merged.
func FromShowcase(products []collectr.Product) ([]domain.Card, error) {
	cards := make([]domain.Card, 0, len(products))
	now := time.Now()

	for _, p := range products {
		card, err := cardFromShowcase(p, now)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func cardFromShowcase(p collectr.Product, now time.Time) (domain.Card, error) {
	name := strings.TrimSpace(p.ProductName)
	group := strings.TrimSpace(p.CatalogGroup)
	number := strings.TrimSpace(p.CardNumber)

	cardID, err := id.Card(group, name, number)
	if err != nil {
		return domain.Card{}, err
	}

	quantity := p.Quantity
	if quantity < 1 {
		quantity = 1
	}

	return domain.Card{
		ID:            cardID,
		ProductName:   name,
		CatalogGroup:  group,
		CardNumber:    number,
		Rarity:        strings.TrimSpace(p.Rarity),
		Variant:       strings.TrimSpace(p.Variant),
		Grade:         strings.TrimSpace(p.Grade),
		Condition:     strings.TrimSpace(p.Condition),
		CostPaid:      parseOptionalPrice(p.CostPaid),
		Quantity:      quantity,
		MarketPrice:   decimal.NewFromFloat(p.MarketPrice),
		PriceOverride: parseOptionalPrice(p.PriceOverride),
		Watchlist:     p.Watchlist,
		DateAdded:     now,
		Notes:         strings.TrimSpace(p.Notes),
		ImageURL:      strings.TrimSpace(p.ImageURL),
	}, nil
}
