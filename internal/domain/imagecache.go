package domain

import "strings"

// ImageCache maps a normalized (product name, catalog group) key to an
// image URL. The cache is global across all collections and outlives
// collection deletion, so re-importing never loses previously discovered
// images. Entries are only ever added or overwritten, never individually
// deleted.
type ImageCache map[string]string

// imageKeySeparator joins the two key halves. A pipe is not expected to
// appear in card or set names.
const imageKeySeparator = "|"

// ImageKey builds the normalized cache key: both halves lowercased and
// whitespace-trimmed.
func ImageKey(productName, catalogGroup string) string {
	return strings.ToLower(strings.TrimSpace(productName)) +
		imageKeySeparator +
		strings.ToLower(strings.TrimSpace(catalogGroup))
}

// Lookup returns the cached image URL for a card identity, or "" when the
// key is absent.
func (c ImageCache) Lookup(productName, catalogGroup string) string {
	return c[ImageKey(productName, catalogGroup)]
}

// Merge returns the union of the cache and the new entries. Later writes
// win for the same key, so merging the same entries twice is idempotent.
// The receiver is not mutated.
func (c ImageCache) Merge(entries ImageCache) ImageCache {
	merged := make(ImageCache, len(c)+len(entries))
	for k, v := range c {
		merged[k] = v
	}
	for k, v := range entries {
		merged[k] = v
	}
	return merged
}

// ApplyToCards sets the image URL on every card whose key is present in
// the cache. The overwrite is unconditional, even when the card already has
// a different image, because the cache is authoritative. Cards with no key
// match are returned untouched.
func (c ImageCache) ApplyToCards(cards []Card) []Card {
	updated := make([]Card, len(cards))
	for i, card := range cards {
		if url, ok := c[ImageKey(card.ProductName, card.CatalogGroup)]; ok {
			card.ImageURL = url
		}
		updated[i] = card
	}
	return updated
}
