package service

import (
	"context"
	"log/slog"

	"github.com/palmsoff/binderd/internal/catalog/pokeapi"
)

// CardSearcher is the slice of the card database client the search
// service needs. Narrowed for tests.
type CardSearcher interface {
	Search(ctx context.Context, name string) ([]pokeapi.Result, error)
}

// SearchService fronts the public card database.
type SearchService struct {
	cards  CardSearcher
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(cards CardSearcher, logger *slog.Logger) *SearchService {
	return &SearchService{
		cards:  cards,
		logger: logger,
	}
}

// Search runs a name search against the card database.
func (s *SearchService) Search(ctx context.Context, query string) ([]pokeapi.Result, error) {
	results, err := s.cards.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("card search served", "query", query, "results", len(results))
	return results, nil
}
