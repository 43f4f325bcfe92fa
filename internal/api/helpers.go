package api

import (
	"encoding/json/v2"
	"net/http"

	apperrors "github.com/palmsoff/binderd/internal/errors"
)

// maxBodySize caps request bodies. Imports are the largest payloads and a
// full Collectr export stays well under this.
const maxBodySize = 16 << 20 // 16 MiB

// decodeBody decodes and validates a JSON request body.
func (s *Server) decodeBody(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodySize)
	if err := json.UnmarshalRead(r.Body, dst); err != nil {
		return apperrors.Validation("malformed request body: " + err.Error())
	}
	return s.validator.Validate(dst)
}
