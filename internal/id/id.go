// Package id provides unique identifier generation for cards and entities.
package id

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// cardSuffixLength is the length of the random suffix on card IDs. Card IDs
// already carry a millisecond timestamp, so a short suffix is enough to
// disambiguate duplicate catalog entries imported in the same instant.
const cardSuffixLength = 8

// Generate creates a prefixed unique ID using NanoID
// Format: prefix-nanoid (e.g., "wish-V1StGXR8_Z5jdHi6B-myT")
//
// NanoIDs are URL-friendly, compact (21 characters vs UUID's 36),
// and use a larger alphabet for better entropy per character.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
// Use this only when you're certain the system entropy is available,
// or when failure should crash the program (e.g., during initialization).
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// Card creates a canonical card ID from the card's catalog identity.
// Format: catalogGroup-productName-cardNumber-unixmillis-suffix.
// The timestamp and random suffix guarantee uniqueness even for two copies
// of the same catalog entry, which are stored as distinct cards.
func Card(catalogGroup, productName, cardNumber string) (string, error) {
	suffix, err := gonanoid.New(cardSuffixLength)
	if err != nil {
		return "", fmt.Errorf("generate card id suffix: %w", err)
	}
	return fmt.Sprintf("%s-%s-%s-%d-%s",
		catalogGroup, productName, cardNumber, time.Now().UnixMilli(), suffix), nil
}

// MustCard is like Card but panics if suffix generation fails.
func MustCard(catalogGroup, productName, cardNumber string) string {
	id, err := Card(catalogGroup, productName, cardNumber)
	if err != nil {
		panic(fmt.Sprintf("failed to generate card ID: %v", err))
	}
	return id
}
