package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/palmsoff/binderd/internal/domain"
	"github.com/palmsoff/binderd/internal/http/response"
)

// AddWishlistRequest is the request body for adding a wishlist item.
type AddWishlistRequest struct {
	ProductName  string          `json:"product_name" validate:"required,min=1,max=200"`
	CatalogGroup string          `json:"catalog_group" validate:"max=200"`
	CardID       string          `json:"card_id" validate:"max=100"`
	ImageURL     string          `json:"image_url" validate:"omitempty,url,max=2000"`
	MarketPrice  decimal.Decimal `json:"market_price"`
	Priority     string          `json:"priority" validate:"omitempty,oneof=high medium low"`
	Notes        string          `json:"notes" validate:"max=2000"`
}

// MoveWishlistRequest picks the destination collection for a move.
type MoveWishlistRequest struct {
	Collection string `json:"collection" validate:"max=100"`
}

// handleListWishlist returns the wishlist, high priority first.
func (s *Server) handleListWishlist(w http.ResponseWriter, r *http.Request) {
	items, err := s.wishlistService.List(r.Context())
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, items, s.logger)
}

// handleAddWishlistItem creates a wishlist item.
func (s *Server) handleAddWishlistItem(w http.ResponseWriter, r *http.Request) {
	var req AddWishlistRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}

	item, err := s.wishlistService.Add(r.Context(), domain.WishlistItem{
		ProductName:  req.ProductName,
		CatalogGroup: req.CatalogGroup,
		CardID:       req.CardID,
		ImageURL:     req.ImageURL,
		MarketPrice:  req.MarketPrice,
		Priority:     domain.Priority(req.Priority),
		Notes:        req.Notes,
	})
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Created(w, item, s.logger)
}

// handleRemoveWishlistItem deletes a wishlist item.
func (s *Server) handleRemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.wishlistService.Remove(r.Context(), id); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleMoveWishlistItem turns a wishlist item into an owned card.
func (s *Server) handleMoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req MoveWishlistRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}

	card, err := s.wishlistService.MoveToCollection(r.Context(), id, req.Collection)
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, card, s.logger)
}
