package http

import (
	"net/http"

	"github.com/MKhiriev/web-bootstrap/internal/urlencoded"
	"github.com/MKhiriev/web-bootstrap/internal/utils"
)

const mediaTypeURLEncoded = "application/x-www-form-urlencoded"

type urlencodedParserOptions struct {
	limit          int64
	parameterLimit int
	parse          urlencoded.Options
}

// urlencodedBodyParser parses application/x-www-form-urlencoded bodies.
// Bodies with more pairs than parameterLimit are rejected before decoding.
func urlencodedBodyParser(opts urlencodedParserOptions) func(http.Handler) http.Handler {
	return bodyParser(mediaTypeURLEncoded, utils.BodyKindURLEncoded, opts.limit, utf8Charset, func(raw []byte) (any, error) {
		body := string(raw)
		if urlencoded.CountParameters(body) > opts.parameterLimit {
			return nil, ErrTooManyParameters
		}
		return urlencoded.Parse(body, opts.parse), nil
	})
}
