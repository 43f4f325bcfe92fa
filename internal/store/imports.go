package store

import (
	"fmt"

	"github.com/palmsoff/binderd/internal/domain"
)

// ImportsDocument is the single document holding every collection.
// Collections are small enough to read and write whole; partial updates
// would complicate the subscription stream for no gain.
type ImportsDocument struct {
	Collections map[string][]domain.Card `json:"collections"`
}

// GetImports reads the collections document. An absent document is an
// empty one, never an error.
func (s *Store) GetImports() (*ImportsDocument, error) {
	doc := &ImportsDocument{}
	if err := s.getOrDefault([]byte(importsKey), doc); err != nil {
		return nil, fmt.Errorf("read imports document: %w", err)
	}
	if doc.Collections == nil {
		doc.Collections = make(map[string][]domain.Card)
	}
	return doc, nil
}

// PutImports writes the whole collections document.
func (s *Store) PutImports(doc *ImportsDocument) error {
	if err := s.set([]byte(importsKey), doc); err != nil {
		return fmt.Errorf("write imports document: %w", err)
	}
	return nil
}
