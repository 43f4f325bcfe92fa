package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/palmsoff/binderd/internal/catalog/collectr"
	"github.com/palmsoff/binderd/internal/domain"
	apperrors "github.com/palmsoff/binderd/internal/errors"
	"github.com/palmsoff/binderd/internal/importer"
	"github.com/palmsoff/binderd/internal/store"
)

// ImportResult summarizes what an import wrote.
type ImportResult struct {
	Collections map[string]int `json:"collections"` // name -> card count
	CardCount   int            `json:"card_count"`
	CacheSize   int            `json:"cache_size"`
}

// ShowcaseClient is the slice of the collectr client the import service
// needs. Narrowed for tests.
type ShowcaseClient interface {
	FetchAll(ctx context.Context, profileID string) ([]collectr.Product, error)
}

// ImportService runs the import pipelines: CSV exports, showcase fetches,
// and manual product JSON. All three normalize through the importer and
// reconcile against the global image cache before anything is persisted.
type ImportService struct {
	store    *store.Store
	showcase ShowcaseClient
	logger   *slog.Logger
}

// NewImportService creates a new import service.
func NewImportService(store *store.Store, showcase ShowcaseClient, logger *slog.Logger) *ImportService {
	return &ImportService{
		store:    store,
		showcase: showcase,
		logger:   logger,
	}
}

// ImportCSV parses a Collectr CSV export and replaces the named
// collections it contains. Collections not present in the file are left
// alone. The whole file imports or nothing does.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	groups, err := importer.ParseCSV(r)
	if err != nil {
		return nil, err
	}

	cache, err := s.store.GetImageCache()
	if err != nil {
		return nil, apperrors.Persistence("read image cache").WithCause(err)
	}

	doc, err := s.store.GetImports()
	if err != nil {
		return nil, apperrors.Persistence("read collections").WithCause(err)
	}

	result := &ImportResult{Collections: make(map[string]int, len(groups))}
	for name, cards := range groups {
		cards = cache.ApplyToCards(cards)
		doc.Collections[name] = cards
		result.Collections[name] = len(cards)
		result.CardCount += len(cards)
	}
	result.CacheSize = len(cache)

	if err := s.store.PutImports(doc); err != nil {
		return nil, apperrors.Persistence("write collections").WithCause(err)
	}

	s.logger.Info("csv import complete",
		"collections", len(result.Collections),
		"cards", result.CardCount,
	)
	return result, nil
}

// ImportShowcase fetches a public showcase and replaces the default
// collection with its cards. Image urls present in the showcase records
// are merged into the global cache; cached urls fill any gaps.
func (s *ImportService) ImportShowcase(ctx context.Context, urlOrID string) (*ImportResult, error) {
	profileID, err := collectr.ExtractProfileID(urlOrID)
	if err != nil {
		return nil, err
	}

	products, err := s.showcase.FetchAll(ctx, profileID)
	if err != nil {
		return nil, err
	}

	cards, err := importer.FromShowcase(products)
	if err != nil {
		return nil, err
	}

	cache, err := s.store.GetImageCache()
	if err != nil {
		return nil, apperrors.Persistence("read image cache").WithCause(err)
	}

	// Showcase records carry their own image urls; fold them into the
	// cache so CSV imports of the same cards pick them up later.
	entries := make(domain.ImageCache)
	for _, card := range cards {
		if card.ImageURL != "" {
			entries[domain.ImageKey(card.ProductName, card.CatalogGroup)] = card.ImageURL
		}
	}
	cache = cache.Merge(entries)
	cards = cache.ApplyToCards(cards)

	if err := s.store.PutImageCache(cache); err != nil {
		return nil, apperrors.Persistence("write image cache").WithCause(err)
	}

	doc, err := s.store.GetImports()
	if err != nil {
		return nil, apperrors.Persistence("read collections").WithCause(err)
	}
	doc.Collections[domain.DefaultCollection] = cards
	if err := s.store.PutImports(doc); err != nil {
		return nil, apperrors.Persistence("write collections").WithCause(err)
	}

	s.logger.Info("showcase import complete",
		"profile_id", profileID,
		"cards", len(cards),
	)
	return &ImportResult{
		Collections: map[string]int{domain.DefaultCollection: len(cards)},
		CardCount:   len(cards),
		CacheSize:   len(cache),
	}, nil
}

// ImportManual merges manually pasted product JSON into the global image
// cache and backfills image urls on already-imported cards.
func (s *ImportService) ImportManual(ctx context.Context, raw []byte) (*ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := importer.ParseManualProducts(raw)
	if err != nil {
		return nil, err
	}

	cache, err := s.store.GetImageCache()
	if err != nil {
		return nil, apperrors.Persistence("read image cache").WithCause(err)
	}
	cache = cache.Merge(entries)
	if err := s.store.PutImageCache(cache); err != nil {
		return nil, apperrors.Persistence("write image cache").WithCause(err)
	}

	doc, err := s.store.GetImports()
	if err != nil {
		return nil, apperrors.Persistence("read collections").WithCause(err)
	}
	touched := 0
	for name, cards := range doc.Collections {
		doc.Collections[name] = cache.ApplyToCards(cards)
		touched += len(cards)
	}
	if err := s.store.PutImports(doc); err != nil {
		return nil, apperrors.Persistence("write collections").WithCause(err)
	}

	s.logger.Info("manual import complete",
		"entries", len(entries),
		"cache_size", len(cache),
	)
	return &ImportResult{
		Collections: map[string]int{},
		CardCount:   touched,
		CacheSize:   len(cache),
	}, nil
}
