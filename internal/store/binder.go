package store

import (
	"fmt"

	"github.com/palmsoff/binderd/internal/domain"
)

// BinderDocument is the stored shape of the binder layout. Pages are
// flattened to page_N keys instead of nested arrays; the used id set is
// stored alongside so both views of the invariant travel together.
type BinderDocument struct {
	Pages       map[string][]*domain.SlotCard `json:"pages"`
	UsedCardIDs []string                      `json:"usedCardIds"`
}

// GetBinder reads the binder layout. An absent document is a fresh empty
// binder.
func (s *Store) GetBinder() (*domain.Layout, error) {
	doc := &BinderDocument{}
	if err := s.getOrDefault([]byte(binderKey), doc); err != nil {
		return nil, fmt.Errorf("read binder document: %w", err)
	}
	if doc.Pages == nil {
		return domain.NewLayout(), nil
	}

	pages := make([][]*domain.SlotCard, domain.TotalPages)
	for i := range pages {
		pages[i] = doc.Pages[pageKey(i)]
	}
	return domain.RestoreLayout(pages), nil
}

// PutBinder writes the whole binder layout.
func (s *Store) PutBinder(layout *domain.Layout) error {
	doc := &BinderDocument{
		Pages:       make(map[string][]*domain.SlotCard, domain.TotalPages),
		UsedCardIDs: layout.UsedCardIDs(),
	}
	for i, page := range layout.Pages() {
		doc.Pages[pageKey(i)] = page
	}

	if err := s.set([]byte(binderKey), doc); err != nil {
		return fmt.Errorf("write binder document: %w", err)
	}
	return nil
}

func pageKey(i int) string {
	return fmt.Sprintf("page_%d", i)
}
