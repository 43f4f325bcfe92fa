package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/palmsoff/binderd/internal/catalog/collectr"
	"github.com/palmsoff/binderd/internal/domain"
	"github.com/palmsoff/binderd/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(t.TempDir(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func testCard(id, name, group string) domain.Card {
	return domain.Card{
		ID:           id,
		ProductName:  name,
		CatalogGroup: group,
		Quantity:     1,
		MarketPrice:  decimal.NewFromInt(5),
		DateAdded:    time.Now(),
	}
}

func seedCollection(t *testing.T, s *store.Store, name string, cards ...domain.Card) {
	t.Helper()
	doc, err := s.GetImports()
	require.NoError(t, err)
	doc.Collections[name] = cards
	require.NoError(t, s.PutImports(doc))
}

// fakeShowcase is a canned ShowcaseClient.
type fakeShowcase struct {
	products []collectr.Product
	err      error
}

func (f *fakeShowcase) FetchAll(context.Context, string) ([]collectr.Product, error) {
	return f.products, f.err
}

// fakeRates is a canned RateSource.
type fakeRates struct {
	rate float64
}

func (f *fakeRates) USDToAUD(context.Context) float64 {
	return f.rate
}
