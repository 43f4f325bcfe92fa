package store

import (
	"fmt"

	"github.com/palmsoff/binderd/internal/domain"
)

// imageCacheDocument wraps the image map. The cache is global and outlives
// collection deletion.
type imageCacheDocument struct {
	Images domain.ImageCache `json:"images"`
}

// GetImageCache reads the global image cache. Absent means empty.
func (s *Store) GetImageCache() (domain.ImageCache, error) {
	doc := &imageCacheDocument{}
	if err := s.getOrDefault([]byte(imageCacheKey), doc); err != nil {
		return nil, fmt.Errorf("read image cache: %w", err)
	}
	if doc.Images == nil {
		doc.Images = make(domain.ImageCache)
	}
	return doc.Images, nil
}

// PutImageCache writes the whole image cache.
func (s *Store) PutImageCache(images domain.ImageCache) error {
	if err := s.set([]byte(imageCacheKey), &imageCacheDocument{Images: images}); err != nil {
		return fmt.Errorf("write image cache: %w", err)
	}
	return nil
}
