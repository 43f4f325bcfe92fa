package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/palmsoff/binderd/internal/domain"
	apperrors "github.com/palmsoff/binderd/internal/errors"
	"github.com/palmsoff/binderd/internal/store"
)

// RateSource supplies the USD to AUD conversion rate.
type RateSource interface {
	USDToAUD(ctx context.Context) float64
}

// GlobalStats is the dashboard payload across every collection.
type GlobalStats struct {
	UniqueCards   int             `json:"unique_cards"`
	TotalCards    int             `json:"total_cards"`
	UniqueGroups  int             `json:"unique_groups"`
	TotalValueUSD decimal.Decimal `json:"total_value_usd"`
	TotalValueAUD decimal.Decimal `json:"total_value_aud"`
	WishlistCount int             `json:"wishlist_count"`
	Recent        []domain.Card   `json:"recent"`
}

// StatsService computes the dashboard numbers.
type StatsService struct {
	store  *store.Store
	rates  RateSource
	logger *slog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(store *store.Store, rates RateSource, logger *slog.Logger) *StatsService {
	return &StatsService{
		store:  store,
		rates:  rates,
		logger: logger,
	}
}

// Rate returns the current USD to AUD conversion rate.
func (s *StatsService) Rate(ctx context.Context) float64 {
	return s.rates.USDToAUD(ctx)
}

// Global aggregates stats across all collections and the wishlist.
// Valuation sums are in USD with an AUD conversion alongside; a rate
// lookup failure degrades to the default rate, never an error.
func (s *StatsService) Global(ctx context.Context) (*GlobalStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.store.GetImports()
	if err != nil {
		return nil, apperrors.Persistence("read collections").WithCause(err)
	}

	stats := &GlobalStats{TotalValueUSD: decimal.Zero}
	groups := make(map[string]struct{})
	var all []domain.Card

	for name, cards := range doc.Collections {
		coll := domain.Collection{Name: name, Cards: cards}
		stats.UniqueCards += coll.UniqueCount()
		stats.TotalCards += coll.TotalCardCount()
		stats.TotalValueUSD = stats.TotalValueUSD.Add(coll.TotalValue())
		for _, card := range cards {
			if card.CatalogGroup != "" {
				groups[card.CatalogGroup] = struct{}{}
			}
		}
		all = append(all, cards...)
	}
	stats.UniqueGroups = len(groups)

	sort.Slice(all, func(i, j int) bool {
		return all[i].DateAdded.After(all[j].DateAdded)
	})
	if len(all) > recentLimit {
		all = all[:recentLimit]
	}
	stats.Recent = all

	for _, err := range s.store.Wishlist.List(ctx) {
		if err != nil {
			return nil, apperrors.Persistence("read wishlist").WithCause(err)
		}
		stats.WishlistCount++
	}

	rate := decimal.NewFromFloat(s.rates.USDToAUD(ctx))
	stats.TotalValueAUD = stats.TotalValueUSD.Mul(rate).Round(2)

	return stats, nil
}
