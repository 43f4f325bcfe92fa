package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/palmsoff/binderd/internal/domain"
	"github.com/palmsoff/binderd/internal/http/response"
	"github.com/palmsoff/binderd/internal/service"
)

// CreateCollectionRequest is the request body for creating a collection.
type CreateCollectionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// AddCardRequest is the request body for manually adding a card.
type AddCardRequest struct {
	ProductName  string           `json:"product_name" validate:"required,min=1,max=200"`
	CatalogGroup string           `json:"catalog_group" validate:"max=200"`
	CardNumber   string           `json:"card_number" validate:"max=50"`
	Rarity       string           `json:"rarity" validate:"max=100"`
	Variant      string           `json:"variant" validate:"max=100"`
	Grade        string           `json:"grade" validate:"max=50"`
	Condition    string           `json:"condition" validate:"max=50"`
	Quantity     int              `json:"quantity" validate:"min=0,max=10000"`
	ImageURL     string           `json:"image_url" validate:"omitempty,url,max=2000"`
	MarketPrice  decimal.Decimal  `json:"market_price"`
	CostPaid     *decimal.Decimal `json:"cost_paid,omitempty"`
	Notes        string           `json:"notes" validate:"max=2000"`
}

// handleListCollections returns summaries for every collection.
func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.collectionService.ListCollections(r.Context())
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, summaries, s.logger)
}

// handleCreateCollection creates a new empty collection.
func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	var req CreateCollectionRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}

	if err := s.collectionService.CreateCollection(r.Context(), req.Name); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Created(w, map[string]string{"name": req.Name}, s.logger)
}

// handleGetCollection returns one collection with its cards.
func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	coll, err := s.collectionService.GetCollection(r.Context(), name)
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, coll, s.logger)
}

// handleDeleteCollection removes a collection and its cards.
func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.collectionService.DeleteCollection(r.Context(), name); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleCollectionStats returns the dashboard numbers for one collection.
func (s *Server) handleCollectionStats(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	stats, err := s.collectionService.Stats(r.Context(), name)
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, stats, s.logger)
}

// handleAddCard appends a manually entered card to a collection.
func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req AddCardRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}

	card, err := s.collectionService.AddCard(r.Context(), name, domain.Card{
		ProductName:  req.ProductName,
		CatalogGroup: req.CatalogGroup,
		CardNumber:   req.CardNumber,
		Rarity:       req.Rarity,
		Variant:      req.Variant,
		Grade:        req.Grade,
		Condition:    req.Condition,
		Quantity:     req.Quantity,
		ImageURL:     req.ImageURL,
		MarketPrice:  req.MarketPrice,
		CostPaid:     req.CostPaid,
		Notes:        req.Notes,
	})
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Created(w, card, s.logger)
}

// handleUpdateCard applies a partial update to a card. A null body in the
// response means the update removed the card.
func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	cardID := chi.URLParam(r, "cardID")

	var patch service.CardPatch
	if err := s.decodeBody(r, &patch); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}

	card, err := s.collectionService.UpdateCard(r.Context(), name, cardID, patch)
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, card, s.logger)
}

// handleRemoveCard deletes a card from a collection.
func (s *Server) handleRemoveCard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	cardID := chi.URLParam(r, "cardID")

	if err := s.collectionService.RemoveCard(r.Context(), name, cardID); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
