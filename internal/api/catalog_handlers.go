package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/palmsoff/binderd/internal/catalog/pokeapi"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchCards",
		Method:      http.MethodGet,
		Path:        "/api/v1/cards/search",
		Summary:     "Search the card database",
		Description: "Searches the public card database by name for wishlist entry and manual adds",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchCards)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAUDRate",
		Method:      http.MethodGet,
		Path:        "/api/v1/rates/aud",
		Summary:     "Get the USD to AUD rate",
		Description: "Returns the conversion rate used for AUD valuations",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetAUDRate)
}

// === DTOs ===

// SearchCardsInput contains parameters for a card search.
type SearchCardsInput struct {
	Authorization string `header:"Authorization"`
	Query         string `query:"q" minLength:"1" maxLength:"200" doc:"Card name to search for"`
}

// CardSearchResult is one hit from the card database.
type CardSearchResult struct {
	ID          string          `json:"id" doc:"Catalog card ID"`
	Name        string          `json:"name" doc:"Card name"`
	SetName     string          `json:"set_name" doc:"Set the card belongs to"`
	ImageURL    string          `json:"image_url" doc:"Card image URL"`
	AverageSell decimal.Decimal `json:"average_sell" doc:"Average sell price in USD"`
}

// SearchCardsOutput wraps the search results for huma.
type SearchCardsOutput struct {
	Body struct {
		Results []CardSearchResult `json:"results" doc:"Matching cards"`
	}
}

// GetAUDRateInput contains parameters for the rate lookup.
type GetAUDRateInput struct {
	Authorization string `header:"Authorization"`
}

// GetAUDRateOutput wraps the rate response for huma.
type GetAUDRateOutput struct {
	Body struct {
		Rate float64 `json:"rate" doc:"USD to AUD conversion rate"`
	}
}

// === Handlers ===

func (s *Server) handleSearchCards(ctx context.Context, input *SearchCardsInput) (*SearchCardsOutput, error) {
	if err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	results, err := s.searchService.Search(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	out := &SearchCardsOutput{}
	out.Body.Results = make([]CardSearchResult, len(results))
	for i, r := range results {
		out.Body.Results[i] = toCardSearchResult(r)
	}
	return out, nil
}

func (s *Server) handleGetAUDRate(ctx context.Context, input *GetAUDRateInput) (*GetAUDRateOutput, error) {
	if err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	out := &GetAUDRateOutput{}
	out.Body.Rate = s.statsService.Rate(ctx)
	return out, nil
}

func toCardSearchResult(r pokeapi.Result) CardSearchResult {
	return CardSearchResult{
		ID:          r.ID,
		Name:        r.Name,
		SetName:     r.SetName,
		ImageURL:    r.ImageURL,
		AverageSell: r.AverageSell,
	}
}
