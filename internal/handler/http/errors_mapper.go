package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/web-bootstrap/internal/logger"
	"github.com/MKhiriev/web-bootstrap/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrMalformedJSON:      http.StatusBadRequest,
	ErrNonObjectJSON:      http.StatusBadRequest,
	ErrInvalidEncodedBody: http.StatusBadRequest,
	ErrReadingBody:        http.StatusBadRequest,

	ErrBodyTooLarge:      http.StatusRequestEntityTooLarge,
	ErrTooManyParameters: http.StatusRequestEntityTooLarge,

	ErrUnsupportedCharset:         http.StatusUnsupportedMediaType,
	ErrUnsupportedContentEncoding: http.StatusUnsupportedMediaType,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeBodyError terminates the request with the status mapped from err and
// a JSON error document.
func writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	logger.FromRequest(r).Debug().Err(err).Int("status", status).Msg("request body rejected")
	utils.WriteError(w, err.Error(), status)
}
