package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palmsoff/binderd/internal/catalog/collectr"
)

func TestFromShowcase_NormalizesRecords(t *testing.T) {
	products := []collectr.Product{
		{
			ProductName:  " Charizard ex ",
			CatalogGroup: "Obsidian Flames",
			CardNumber:   "125/197",
			Rarity:       "Double Rare",
			CostPaid:     "12.50",
			Quantity:     2,
			MarketPrice:  45.0,
			ImageURL:     "https://img.example/charizard.png",
		},
		{
			ProductName:  "Pikachu",
			CatalogGroup: "Base Set",
		},
	}

	cards, err := FromShowcase(products)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, "Charizard ex", cards[0].ProductName)
	assert.Equal(t, 2, cards[0].Quantity)
	require.NotNil(t, cards[0].CostPaid)
	assert.True(t, cards[0].CostPaid.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, cards[0].MarketPrice.Equal(decimal.NewFromInt(45)))
	assert.Equal(t, "https://img.example/charizard.png", cards[0].ImageURL)

	// Missing optionals collapse to defaults rather than failing.
	assert.Equal(t, 1, cards[1].Quantity)
	assert.Nil(t, cards[1].CostPaid)
	assert.True(t, cards[1].MarketPrice.IsZero())
	assert.False(t, cards[1].Watchlist)
}

func TestFromShowcase_DuplicatesStayDistinct(t *testing.T) {
	p := collectr.Product{ProductName: "Pikachu", CatalogGroup: "Base Set", CardNumber: "58/102"}
	cards, err := FromShowcase([]collectr.Product{p, p})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.NotEqual(t, cards[0].ID, cards[1].ID)
}

func TestFromShowcase_Empty(t *testing.T) {
	cards, err := FromShowcase(nil)
	require.NoError(t, err)
	assert.Empty(t, cards)
}
