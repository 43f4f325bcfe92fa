package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palmsoff/binderd/internal/catalog/collectr"
	"github.com/palmsoff/binderd/internal/domain"
	apperrors "github.com/palmsoff/binderd/internal/errors"
	"github.com/palmsoff/binderd/internal/store"
)

const importCSVHeader = "Product Name,Set,Card Number,Rarity,Variant,Grade,Condition,Cost Paid,Quantity,Market Price (1/15/26),Price Override,Watchlist,Portfolio Name,Notes"

func importService(t *testing.T, st *store.Store, showcase ShowcaseClient) *ImportService {
	t.Helper()
	return NewImportService(st, showcase, testLogger())
}

func TestImportService_CSVReplacesNamedCollections(t *testing.T) {
	st := testStore(t)
	seedCollection(t, st, "Main", testCard("old", "Old Card", "Old Set"))
	seedCollection(t, st, "Keepers", testCard("kept", "Kept Card", "Old Set"))
	svc := importService(t, st, &fakeShowcase{})
	ctx := context.Background()

	csv := importCSVHeader + "\n" +
		"Charizard ex,SV: 151,199/165,Special Illustration Rare,Holofoil,,NM,,1,250.00,,false,Main,\n" +
		"Pikachu,SV: 151,173/165,Illustration Rare,,,NM,,2,15.00,,false,Main,\n"

	result, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, result.CardCount)
	assert.Equal(t, map[string]int{"Main": 2}, result.Collections)

	doc, err := st.GetImports()
	require.NoError(t, err)
	// Main is replaced wholesale, Keepers is untouched
	require.Len(t, doc.Collections["Main"], 2)
	assert.Equal(t, "Charizard ex", doc.Collections["Main"][0].ProductName)
	require.Len(t, doc.Collections["Keepers"], 1)
	assert.Equal(t, "kept", doc.Collections["Keepers"][0].ID)
}

func TestImportService_CSVAppliesImageCache(t *testing.T) {
	st := testStore(t)
	cache, err := st.GetImageCache()
	require.NoError(t, err)
	cache[domain.ImageKey("Charizard ex", "SV: 151")] = "https://img.example/zard.png"
	require.NoError(t, st.PutImageCache(cache))
	svc := importService(t, st, &fakeShowcase{})

	csv := importCSVHeader + "\n" +
		"Charizard ex,SV: 151,199/165,,,,,,1,250.00,,false,Main,\n"

	_, err = svc.ImportCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	doc, err := st.GetImports()
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/zard.png", doc.Collections["Main"][0].ImageURL)
}

func TestImportService_CSVRejectsBadBatchWithoutWriting(t *testing.T) {
	st := testStore(t)
	seedCollection(t, st, "Main", testCard("old", "Old Card", "Old Set"))
	svc := importService(t, st, &fakeShowcase{})

	csv := importCSVHeader + "\n" +
		"Charizard ex,SV: 151,199/165,,,,,,1,250.00,,false,Main,\n" +
		"Pikachu,SV: 151,173/165,,,,,,1,not-a-price,,false,Main,\n"

	_, err := svc.ImportCSV(context.Background(), strings.NewReader(csv))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	doc, err := st.GetImports()
	require.NoError(t, err)
	require.Len(t, doc.Collections["Main"], 1)
	assert.Equal(t, "old", doc.Collections["Main"][0].ID)
}

func TestImportService_ShowcaseReplacesDefaultCollection(t *testing.T) {
	st := testStore(t)
	seedCollection(t, st, domain.DefaultCollection, testCard("old", "Old Card", "Old Set"))
	showcase := &fakeShowcase{products: []collectr.Product{
		{
			ProductName:  "Umbreon VMAX",
			CatalogGroup: "Evolving Skies",
			CardNumber:   "215/203",
			Quantity:     1,
			MarketPrice:  980.00,
			ImageURL:     "https://img.example/umbreon.png",
		},
		{
			ProductName:  "Rayquaza VMAX",
			CatalogGroup: "Evolving Skies",
			Quantity:     2,
			MarketPrice:  120.00,
		},
	}}
	svc := importService(t, st, showcase)

	result, err := svc.ImportShowcase(context.Background(), "https://app.getcollectr.com/showcase/profile/12345")
	require.NoError(t, err)
	assert.Equal(t, 2, result.CardCount)

	doc, err := st.GetImports()
	require.NoError(t, err)
	cards := doc.Collections[domain.DefaultCollection]
	require.Len(t, cards, 2)
	assert.Equal(t, "Umbreon VMAX", cards[0].ProductName)

	// showcase image urls land in the global cache
	cache, err := st.GetImageCache()
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/umbreon.png",
		cache.Lookup("Umbreon VMAX", "Evolving Skies"))
}

func TestImportService_ShowcaseBadProfileInput(t *testing.T) {
	svc := importService(t, testStore(t), &fakeShowcase{})

	_, err := svc.ImportShowcase(context.Background(), "https://example.com/not-a-showcase")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestImportService_ShowcaseUpstreamFailure(t *testing.T) {
	showcase := &fakeShowcase{err: apperrors.Upstream(502, "showcase fetch failed")}
	svc := importService(t, testStore(t), showcase)

	_, err := svc.ImportShowcase(context.Background(), "12345")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
}

func TestImportService_ManualBackfillsExistingCards(t *testing.T) {
	st := testStore(t)
	seedCollection(t, st, "Main", testCard("c1", "Giratina V", "Lost Origin"))
	seedCollection(t, st, "Hits", testCard("c2", "Giratina V", "Lost Origin"))
	svc := importService(t, st, &fakeShowcase{})

	raw := []byte(`{"products":[{"product_name":"Giratina V","catalog_group":"Lost Origin","image_url":"https://img.example/tina.png"}]}`)
	result, err := svc.ImportManual(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CacheSize)

	doc, err := st.GetImports()
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/tina.png", doc.Collections["Main"][0].ImageURL)
	assert.Equal(t, "https://img.example/tina.png", doc.Collections["Hits"][0].ImageURL)
}

func TestImportService_ManualRejectsMissingProducts(t *testing.T) {
	svc := importService(t, testStore(t), &fakeShowcase{})

	_, err := svc.ImportManual(context.Background(), []byte(`{"items":[]}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}
