package api

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palmsoff/binderd/internal/auth"
	"github.com/palmsoff/binderd/internal/catalog/collectr"
	"github.com/palmsoff/binderd/internal/catalog/pokeapi"
	"github.com/palmsoff/binderd/internal/domain"
	"github.com/palmsoff/binderd/internal/http/response"
	"github.com/palmsoff/binderd/internal/service"
	"github.com/palmsoff/binderd/internal/store"
)

const testPassword = "correct horse battery staple"

type stubShowcase struct {
	products []collectr.Product
}

func (f *stubShowcase) FetchAll(context.Context, string) ([]collectr.Product, error) {
	return f.products, nil
}

type stubSearcher struct {
	results []pokeapi.Result
}

func (f *stubSearcher) Search(context.Context, string) ([]pokeapi.Result, error) {
	return f.results, nil
}

type stubRates struct{}

func (stubRates) USDToAUD(context.Context) float64 { return 1.55 }

// setupTestServer creates a test server with all dependencies.
func setupTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	st, err := store.New(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})

	key := []byte("test-secret-key-for-testing-32bb")
	tokens, err := auth.NewTokenService(key, 15*time.Minute)
	require.NoError(t, err)

	authService, err := service.NewAuthService(testPassword, tokens, logger)
	require.NoError(t, err)

	searcher := &stubSearcher{results: []pokeapi.Result{
		{ID: "sv3pt5-199", Name: "Charizard ex", SetName: "151", AverageSell: decimal.NewFromInt(250)},
	}}

	services := Services{
		Auth:       authService,
		Collection: service.NewCollectionService(st, logger),
		Wishlist:   service.NewWishlistService(st, logger),
		Binder:     service.NewBinderService(st, logger),
		Import:     service.NewImportService(st, &stubShowcase{}, logger),
		Search:     service.NewSearchService(searcher, logger),
		Stats:      service.NewStatsService(st, stubRates{}, logger),
	}

	return NewServer(st, services, nil, logger), st
}

// doRequest runs a request through the server and returns the recorder.
func doRequest(s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, s *Server) string {
	t.Helper()

	rec := doRequest(s, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data.Token)
	return env.Data.Token
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var env struct {
		Data    T    `json:"data"`
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env.Data
}

func TestHealthCheck(t *testing.T) {
	s, _ := setupTestServer(t)

	rec := doRequest(s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestLogin(t *testing.T) {
	s, _ := setupTestServer(t)

	token := login(t, s)
	assert.True(t, strings.HasPrefix(token, "v4.local."))
}

func TestLogin_WrongPassword(t *testing.T) {
	s, _ := setupTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_MissingPassword(t *testing.T) {
	s, _ := setupTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/v1/auth/login", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	s, _ := setupTestServer(t)

	for _, path := range []string{
		"/api/v1/collections",
		"/api/v1/wishlist",
		"/api/v1/binder",
		"/api/v1/stats",
	} {
		rec := doRequest(s, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	s, _ := setupTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/v1/collections", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCollectionLifecycle(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	rec := doRequest(s, http.MethodPost, "/api/v1/collections", token, map[string]string{"name": "Hits"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(s, http.MethodGet, "/api/v1/collections", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summaries := decodeData[[]service.CollectionSummary](t, rec)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Hits", summaries[0].Name)

	rec = doRequest(s, http.MethodPost, "/api/v1/collections/Hits/cards", token, map[string]any{
		"product_name":  "Charizard ex",
		"catalog_group": "SV: 151",
		"quantity":      1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	card := decodeData[domain.Card](t, rec)
	assert.NotEmpty(t, card.ID)

	rec = doRequest(s, http.MethodGet, "/api/v1/collections/Hits", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	coll := decodeData[domain.Collection](t, rec)
	require.Len(t, coll.Cards, 1)

	rec = doRequest(s, http.MethodGet, "/api/v1/collections/Hits/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeData[service.CollectionStats](t, rec)
	assert.Equal(t, 1, stats.UniqueCount)

	rec = doRequest(s, http.MethodDelete, "/api/v1/collections/Hits/cards/"+url.PathEscape(card.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(s, http.MethodDelete, "/api/v1/collections/Hits", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/collections/Hits", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCollectionValidation(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	rec := doRequest(s, http.MethodPost, "/api/v1/collections", token, map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(s, http.MethodPost, "/api/v1/collections/Main/cards", token, map[string]any{
		"catalog_group": "SV: 151",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWishlistLifecycle(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	rec := doRequest(s, http.MethodPost, "/api/v1/wishlist", token, map[string]any{
		"product_name":  "Umbreon VMAX",
		"catalog_group": "Evolving Skies",
		"priority":      "high",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decodeData[domain.WishlistItem](t, rec)
	assert.Equal(t, domain.PriorityHigh, item.Priority)

	rec = doRequest(s, http.MethodGet, "/api/v1/wishlist", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeData[[]domain.WishlistItem](t, rec)
	require.Len(t, items, 1)

	rec = doRequest(s, http.MethodPost, "/api/v1/wishlist/"+item.ID+"/move", token, map[string]string{
		"collection": "Main",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	card := decodeData[domain.Card](t, rec)
	assert.Equal(t, "Umbreon VMAX", card.ProductName)

	rec = doRequest(s, http.MethodGet, "/api/v1/wishlist", token, nil)
	items = decodeData[[]domain.WishlistItem](t, rec)
	assert.Empty(t, items)
}

func TestWishlistRemove_NotFound(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	rec := doRequest(s, http.MethodDelete, "/api/v1/wishlist/nope", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWishlistInvalidPriority(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	rec := doRequest(s, http.MethodPost, "/api/v1/wishlist", token, map[string]any{
		"product_name": "Pikachu",
		"priority":     "urgent",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBinderLifecycle(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	rec := doRequest(s, http.MethodPost, "/api/v1/collections/Main/cards", token, map[string]any{
		"product_name":  "Charizard ex",
		"catalog_group": "SV: 151",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	card := decodeData[domain.Card](t, rec)

	rec = doRequest(s, http.MethodGet, "/api/v1/binder", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeData[service.BinderView](t, rec)
	assert.Len(t, view.Pages, domain.TotalPages)

	rec = doRequest(s, http.MethodPost, "/api/v1/binder/place", token, map[string]any{
		"page":    2,
		"slot":    4,
		"card_id": card.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view = decodeData[service.BinderView](t, rec)
	require.NotNil(t, view.Pages[2][4])
	assert.Equal(t, card.ID, view.Pages[2][4].ID)

	rec = doRequest(s, http.MethodGet, "/api/v1/binder/available", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	available := decodeData[[]domain.Card](t, rec)
	assert.Empty(t, available)

	rec = doRequest(s, http.MethodPost, "/api/v1/binder/remove", token, map[string]any{
		"page": 2,
		"slot": 4,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeData[service.BinderView](t, rec)
	assert.Nil(t, view.Pages[2][4])
}

func TestBinderPlace_UnknownCard(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	rec := doRequest(s, http.MethodPost, "/api/v1/binder/place", token, map[string]any{
		"page":    0,
		"slot":    0,
		"card_id": "ghost",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBinderSpreads(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	rec := doRequest(s, http.MethodGet, "/api/v1/binder/spreads/0", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	spread := decodeData[domain.Spread](t, rec)
	assert.True(t, spread.Left.Cover)

	rec = doRequest(s, http.MethodGet, "/api/v1/binder/spreads/99", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/binder/spreads/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportCSVEndpoint(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	csv := "Product Name,Set,Card Number,Rarity,Variant,Grade,Condition,Cost Paid,Quantity,Market Price (1/15/26),Price Override,Watchlist,Portfolio Name,Notes\n" +
		"Charizard ex,SV: 151,199/165,,,,,,1,250.00,,false,Main,\n"

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/csv", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decodeData[service.ImportResult](t, rec)
	assert.Equal(t, 1, result.CardCount)
}

func TestImportCSVEndpoint_BadData(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/csv", strings.NewReader("garbage"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportManualEndpoint(t *testing.T) {
	s, st := setupTestServer(t)
	token := login(t, s)

	raw := `{"products":[{"product_name":"Giratina V","catalog_group":"Lost Origin","image_url":"https://img.example/tina.png"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/manual", strings.NewReader(raw))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cache, err := st.GetImageCache()
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/tina.png", cache.Lookup("Giratina V", "Lost Origin"))
}

func TestGlobalStatsEndpoint(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	rec := doRequest(s, http.MethodPost, "/api/v1/collections/Main/cards", token, map[string]any{
		"product_name": "Charizard ex",
		"market_price": "100",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeData[service.GlobalStats](t, rec)
	assert.Equal(t, 1, stats.TotalCards)
	assert.True(t, stats.TotalValueUSD.Equal(decimal.NewFromInt(100)), stats.TotalValueUSD.String())
	assert.True(t, stats.TotalValueAUD.Equal(decimal.NewFromInt(155)), stats.TotalValueAUD.String())
}

func TestSearchCardsEndpoint(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	rec := doRequest(s, http.MethodGet, "/api/v1/cards/search?q=charizard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Results []CardSearchResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Results, 1)
	assert.Equal(t, "Charizard ex", out.Results[0].Name)
}

func TestSearchCardsEndpoint_RequiresAuth(t *testing.T) {
	s, _ := setupTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/v1/cards/search?q=charizard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAUDRateEndpoint(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	rec := doRequest(s, http.MethodGet, "/api/v1/rates/aud", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Rate float64 `json:"rate"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 1.55, out.Rate)
}

func TestBackupRestoreEndpoints(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	rec := doRequest(s, http.MethodPost, "/api/v1/collections/Main/cards", token, map[string]any{
		"product_name": "Charizard ex",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(s, http.MethodPost, "/api/v1/admin/backup", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Body.Bytes())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "binderd-")
	snapshot := rec.Body.Bytes()

	// restore into a fresh server
	s2, st2 := setupTestServer(t)
	token2 := login(t, s2)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/restore", bytes.NewReader(snapshot))
	req.Header.Set("Authorization", "Bearer "+token2)
	rec = httptest.NewRecorder()
	s2.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc, err := st2.GetImports()
	require.NoError(t, err)
	require.Len(t, doc.Collections[domain.DefaultCollection], 1)
	assert.Equal(t, "Charizard ex", doc.Collections[domain.DefaultCollection][0].ProductName)
}

func TestDomainErrorMapping(t *testing.T) {
	s, _ := setupTestServer(t)
	token := login(t, s)

	rec := doRequest(s, http.MethodDelete, "/api/v1/collections/nope", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}
