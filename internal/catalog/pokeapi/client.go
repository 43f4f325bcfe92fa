// Package pokeapi searches the public pokemontcg.io card database. It is a
// read-only discovery surface: results feed the wishlist and manual image
// lookups, never the owned-card records.
package pokeapi

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/palmsoff/binderd/internal/errors"
	"github.com/palmsoff/binderd/internal/ratelimit"
)

const (
	defaultRPS   = 2.0
	defaultBurst = 4

	defaultTimeout = 15 * time.Second

	// pageSize matches the number of results the binder UI shows per search.
	pageSize = 12
)

// Result is one projected search hit.
type Result struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ImageURL    string          `json:"image_url"`
	SetName     string          `json:"set_name"`
	AverageSell decimal.Decimal `json:"average_sell"`
}

// searchResponse mirrors the slice of the upstream payload we project from.
type searchResponse struct {
	Data []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Images struct {
			Small string `json:"small"`
		} `json:"images"`
		Set struct {
			Name string `json:"name"`
		} `json:"set"`
		Cardmarket struct {
			Prices struct {
				AverageSellPrice float64 `json:"averageSellPrice"`
			} `json:"prices"`
		} `json:"cardmarket"`
	} `json:"data"`
}

// Client queries the card database.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

// New creates a card search client. baseURL is the API root, e.g.
// https://api.pokemontcg.io/v2.
func New(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  logger,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// Search runs a prefix name search and projects the hits. An empty term is
// a validation error; upstream failures carry the upstream status.
func (c *Client) Search(ctx context.Context, name string) ([]Result, error) {
	term := strings.TrimSpace(name)
	if term == "" {
		return nil, apperrors.Validation("search term is required")
	}

	if err := c.limiter.Wait(ctx, "search"); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	query := url.Values{}
	query.Set("q", fmt.Sprintf("name:%q", term+"*"))
	query.Set("pageSize", fmt.Sprintf("%d", pageSize))

	reqURL := c.baseURL + "/cards?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUpstream, "card search request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.Upstreamf(resp.StatusCode, "card search returned %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUpstream, "decode card search response")
	}

	results := make([]Result, 0, len(parsed.Data))
	for _, d := range parsed.Data {
		results = append(results, Result{
			ID:          d.ID,
			Name:        d.Name,
			ImageURL:    d.Images.Small,
			SetName:     d.Set.Name,
			AverageSell: decimal.NewFromFloat(d.Cardmarket.Prices.AverageSellPrice),
		})
	}

	c.logger.Debug("card search", "term", term, "results", len(results))
	return results, nil
}
