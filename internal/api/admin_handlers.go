package api

import (
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/palmsoff/binderd/internal/errors"
	"github.com/palmsoff/binderd/internal/http/response"
)

// handleGlobalStats returns the cross-collection dashboard payload.
func (s *Server) handleGlobalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsService.Global(r.Context())
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, stats, s.logger)
}

// handleBackup streams a full database snapshot as a download.
func (s *Server) handleBackup(w http.ResponseWriter, _ *http.Request) {
	filename := fmt.Sprintf("binderd-%s.backup", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := s.store.Backup(w); err != nil {
		// headers are already gone; all we can do is log
		s.logger.Error("backup stream failed", "error", err)
		return
	}
	s.logger.Info("backup streamed", "filename", filename)
}

// handleRestore loads a backup snapshot from the request body.
func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Restore(r.Body); err != nil {
		response.DomainError(w, apperrors.Persistence("restore backup").WithCause(err), s.logger)
		return
	}

	s.logger.Info("backup restored")
	response.Success(w, map[string]string{"status": "restored"}, s.logger)
}
