package importer

import (
	"encoding/json/v2"
	"strings"

	"github.com/palmsoff/binderd/internal/domain"
	apperrors "github.com/palmsoff/binderd/internal/errors"
)

type manualPayload struct {
	Products []manualProduct `json:"products"`
}

type manualProduct struct {
	ProductName  string `json:"product_name"`
	CatalogGroup string `json:"catalog_group"`
	ImageURL     string `json:"image_url"`
}

// ParseManualProducts extracts image-cache entries from a manually pasted
// product JSON blob. No cards are created here; the payload only seeds the
// global image cache so later imports pick the urls up.
func ParseManualProducts(raw []byte) (domain.ImageCache, error) {
	var payload manualPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperrors.Validation("malformed product JSON: " + err.Error())
	}
	if payload.Products == nil {
		return nil, apperrors.Validation("product JSON missing products array")
	}

	entries := make(domain.ImageCache, len(payload.Products))
	for _, p := range payload.Products {
		url := strings.TrimSpace(p.ImageURL)
		if p.ProductName == "" || url == "" {
			continue
		}
		entries[domain.ImageKey(p.ProductName, p.CatalogGroup)] = url
	}
	return entries, nil
}
