package api

import (
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/palmsoff/binderd/internal/errors"
	"github.com/palmsoff/binderd/internal/http/response"
	"github.com/palmsoff/binderd/internal/store"
)

// ImportShowcaseRequest names the showcase to fetch.
type ImportShowcaseRequest struct {
	Profile string `json:"profile" validate:"required,max=500"`
}

// handleImportCSV imports a Collectr CSV export posted as the raw body.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)

	result, err := s.importService.ImportCSV(r.Context(), body)
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}

// handleImportShowcase fetches a public showcase by URL or profile ID.
func (s *Server) handleImportShowcase(w http.ResponseWriter, r *http.Request) {
	var req ImportShowcaseRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}

	result, err := s.importService.ImportShowcase(r.Context(), req.Profile)
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}

// handleImportManual merges pasted product JSON into the image cache. The
// body is passed through as-is; the importer owns the shape.
func (s *Server) handleImportManual(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		response.DomainError(w, apperrors.Validation("read request body: "+err.Error()), s.logger)
		return
	}

	result, err := s.importService.ImportManual(r.Context(), raw)
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}

// handleImportStream streams change notifications as server-sent events so
// clients can re-fetch after an import or binder edit lands.
func (s *Server) handleImportStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalError(w, "Streaming not supported", s.logger)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	err := s.store.Subscribe(r.Context(), func(kind store.ChangeKind) {
		fmt.Fprintf(w, "event: change\ndata: %s\n\n", kind)
		flusher.Flush()
	})
	if err != nil && r.Context().Err() == nil {
		s.logger.Error("change stream ended", "error", err)
	}
}
