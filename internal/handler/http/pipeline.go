// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/web-bootstrap/internal/urlencoded"
)

// Stage names as they appear in the "request pipeline built" log line.
const (
	stageTraceID          = "trace-id"
	stageAccessLog        = "access-log"
	stageRecoverer        = "recoverer"
	stageRateLimit        = "rate-limit"
	stageJSONBody         = "json-body"
	stageURLEncodedBody   = "urlencoded-body"
	stageStatic           = "static"
	stageJSONBodyTrailing = "json-body-trailing"
	stageAPIMount         = "api-mount"
	stageNotFound         = "not-found"
)

// stage is one named middleware of the request pipeline.
type stage struct {
	name       string
	middleware func(http.Handler) http.Handler
}

// pipeline returns the middleware stages in registration order. Requests
// traverse them top to bottom before reaching the mounted router.
//
// The static stage runs before the router mount, so a file under the static
// root shadows an API route with the same path.
func (h *Handler) pipeline() []stage {
	jsonLimit := h.body.JSONLimit

	return []stage{
		{name: stageTraceID, middleware: h.withTraceID},
		{name: stageAccessLog, middleware: withLogging},
		{name: stageRecoverer, middleware: middleware.Recoverer},
		{name: stageRateLimit, middleware: withRateLimit(h.server.RateLimitRPS, h.server.RateLimitBurst)},
		{name: stageJSONBody, middleware: jsonBodyParser(jsonLimit)},
		{name: stageURLEncodedBody, middleware: urlencodedBodyParser(urlencodedParserOptions{
			limit:          h.body.URLEncodedLimit,
			parameterLimit: h.body.ParameterLimit,
			parse: urlencoded.Options{
				Extended:   !h.body.SimpleURLEncoded,
				Depth:      h.body.NestingDepth(),
				ArrayLimit: h.body.MaxArrayIndex(),
			},
		})},
		{name: stageStatic, middleware: staticFiles(h.server.StaticDir)},
		// No-op once a body has been parsed.
		{name: stageJSONBodyTrailing, middleware: jsonBodyParser(jsonLimit)},
	}
}
