// Package collectr fetches card inventories from the Collectr showcase API.
//
// The showcase API enforces same-site CORS, so requests go through a
// trusted proxy rather than hitting the API directly. The proxy accepts
// the profile ID plus pagination and forwards the upstream response
// unchanged.
package collectr

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/palmsoff/binderd/internal/errors"
	"github.com/palmsoff/binderd/internal/ratelimit"
)

const (
	// Rate limit: 2 requests per second, burst of 4. The showcase API is
	// rude about bursts from the same origin.
	defaultRPS   = 2.0
	defaultBurst = 4

	defaultTimeout = 30 * time.Second

	// DefaultPageSize is the showcase page size used by FetchAll.
	DefaultPageSize = 100

	// maxPages bounds the pagination loop against an upstream that reports
	// an absurd total_cards.
	maxPages = 200
)

// profileIDPattern extracts the profile ID from a showcase URL.
var profileIDPattern = regexp.MustCompile(`(?i)/profile/([a-f0-9-]+)`)

// ExtractProfileID pulls the profile ID out of a pasted showcase URL, or
// returns a bare ID unchanged. A URL that doesn't contain a profile ID is
// a user-facing validation error, not a crash.
func ExtractProfileID(urlOrID string) (string, error) {
	s := strings.TrimSpace(urlOrID)
	if s == "" {
		return "", apperrors.Validation("profile URL or ID is required")
	}
	if strings.Contains(s, "/profile/") || strings.Contains(s, "://") {
		m := profileIDPattern.FindStringSubmatch(s)
		if m == nil {
			return "", apperrors.Validation("could not find a profile ID in the URL")
		}
		return m[1], nil
	}
	return s, nil
}

// Client is a rate-limited showcase client talking to the proxy.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

// New creates a new showcase client. baseURL is the proxy endpoint root.
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

// Showcase fetches one page of a profile's showcase.
// Non-2xx responses become an upstream error carrying the status code.
func (c *Client) Showcase(ctx context.Context, profileID string, offset, limit int) (*ShowcasePage, error) {
	if err := c.limiter.Wait(ctx, profileID); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	reqURL := c.baseURL + "/showcase/" + url.PathEscape(profileID) + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("showcase request",
		"profile_id", profileID,
		"offset", offset,
		"limit", limit,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUpstream, "showcase request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.Upstreamf(resp.StatusCode, "collectr returned %d", resp.StatusCode)
	}

	var page ShowcasePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUpstream, "decode showcase response")
	}
	return &page, nil
}

// FetchAll walks the paginated showcase until it has accumulated
// total_cards products or receives a short page. Pages are fetched
// sequentially; the only cancellation point is the context.
func (c *Client) FetchAll(ctx context.Context, profileID string) ([]Product, error) {
	var products []Product
	offset := 0

	for page := 0; page < maxPages; page++ {
		result, err := c.Showcase(ctx, profileID, offset, DefaultPageSize)
		if err != nil {
			return nil, err
		}

		products = append(products, result.Products...)
		offset += DefaultPageSize

		if len(products) >= result.TotalCards || len(result.Products) < DefaultPageSize {
			break
		}
	}

	c.logger.Info("showcase fetch complete",
		"profile_id", profileID,
		"products", len(products),
	)
	return products, nil
}
