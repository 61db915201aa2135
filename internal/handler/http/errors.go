// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the body parsing stages. The HTTP status each
// one maps to is defined in errorStatusMap.
var (
	// ErrMalformedJSON is returned when a JSON body cannot be decoded or
	// carries data after its top-level value.
	ErrMalformedJSON = errors.New("malformed JSON body")

	// ErrNonObjectJSON is returned when a JSON body is a bare scalar
	// instead of an object or array.
	ErrNonObjectJSON = errors.New("JSON body must be an object or an array")

	// ErrBodyTooLarge is returned when a body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request entity too large")

	// ErrTooManyParameters is returned when a URL-encoded body has more
	// key/value pairs than the parameter limit.
	ErrTooManyParameters = errors.New("too many parameters")

	ErrUnsupportedCharset         = errors.New("unsupported charset")
	ErrUnsupportedContentEncoding = errors.New("unsupported content encoding")

	// ErrInvalidEncodedBody is returned when a gzip or deflate body cannot
	// be inflated.
	ErrInvalidEncodedBody = errors.New("invalid compressed body")

	// ErrReadingBody is returned when the request body stream fails.
	ErrReadingBody = errors.New("error reading request body")
)
