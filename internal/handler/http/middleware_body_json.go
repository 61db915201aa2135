package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/web-bootstrap/internal/utils"
)

const mediaTypeJSON = "application/json"

// jsonBodyParser parses application/json bodies up to limit bytes. Numbers
// are kept as [json.Number]. UTF-16 and UTF-32 bodies are transcoded first.
func jsonBodyParser(limit int64) func(http.Handler) http.Handler {
	return bodyParser(mediaTypeJSON, utils.BodyKindJSON, limit, unicodeCharset, decodeJSON)
}

// decodeJSON accepts only objects and arrays at the top level. A zero-length
// body decodes to an empty object; a body of only whitespace is rejected.
func decodeJSON(raw []byte) (any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return nil, ErrNonObjectJSON
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrMalformedJSON)
	}

	return value, nil
}
