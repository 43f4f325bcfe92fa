// Package rates fetches the USD to AUD conversion rate used to present
// values in local currency. Pricing sources quote USD; the UI shows AUD.
package rates

import (
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultUSDToAUD is used whenever the rates API cannot be reached or
// returns something unusable. Valuations must never fail on a rate lookup.
const DefaultUSDToAUD = 1.55

const defaultTimeout = 10 * time.Second

type ratesResponse struct {
	Rates struct {
		AUD float64 `json:"AUD"`
	} `json:"rates"`
}

// Client fetches currency rates.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
}

// New creates a rates client. baseURL is the API root, e.g.
// https://api.frankfurter.app.
func New(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// USDToAUD returns the current conversion rate. Any failure falls back to
// DefaultUSDToAUD; a stale or approximate rate beats an error here.
func (c *Client) USDToAUD(ctx context.Context) float64 {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/latest?from=USD&to=AUD", nil)
	if err != nil {
		return DefaultUSDToAUD
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("rates fetch failed, using default", "error", err)
		return DefaultUSDToAUD
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("rates fetch failed, using default", "status", resp.StatusCode)
		return DefaultUSDToAUD
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return DefaultUSDToAUD
	}

	var parsed ratesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.logger.Warn("rates response unreadable, using default", "error", err)
		return DefaultUSDToAUD
	}
	if parsed.Rates.AUD <= 0 {
		return DefaultUSDToAUD
	}
	return parsed.Rates.AUD
}
