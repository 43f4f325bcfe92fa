package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/palmsoff/binderd/internal/errors"
	"github.com/palmsoff/binderd/internal/http/response"
)

// SlotRequest addresses one binder slot.
type SlotRequest struct {
	Page int `json:"page" validate:"min=0"`
	Slot int `json:"slot" validate:"min=0"`
}

// PlaceCardRequest is the request body for placing a card.
type PlaceCardRequest struct {
	SlotRequest
	CardID string `json:"card_id" validate:"required"`
}

// handleGetBinder returns the full binder layout.
func (s *Server) handleGetBinder(w http.ResponseWriter, r *http.Request) {
	view, err := s.binderService.Get(r.Context())
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, view, s.logger)
}

// handlePlaceCard puts a card into a slot and returns the updated layout.
func (s *Server) handlePlaceCard(w http.ResponseWriter, r *http.Request) {
	var req PlaceCardRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}

	view, err := s.binderService.Place(r.Context(), req.Page, req.Slot, req.CardID)
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, view, s.logger)
}

// handleRemoveSlot clears a slot and returns the updated layout.
func (s *Server) handleRemoveSlot(w http.ResponseWriter, r *http.Request) {
	var req SlotRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}

	view, err := s.binderService.Remove(r.Context(), req.Page, req.Slot)
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, view, s.logger)
}

// handleAvailableCards returns owned cards not yet placed in the binder.
func (s *Server) handleAvailableCards(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")

	cards, err := s.binderService.Available(r.Context(), filter)
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, cards, s.logger)
}

// handleGetSpread returns the page pair for a spread index.
func (s *Server) handleGetSpread(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		response.DomainError(w, apperrors.Validation("spread index must be an integer"), s.logger)
		return
	}

	spread, err := s.binderService.Spread(r.Context(), index)
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, spread, s.logger)
}
