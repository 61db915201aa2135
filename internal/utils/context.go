// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for carrying parsed request bodies in the context,
// HTTP response writing, and HTTP client initialization.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ParsedBodyCtxKey is the key under which body parser stages store the
// decoded request body.
var ParsedBodyCtxKey = contextKey("parsedBody")

// BodyKind names the parser that produced a [ParsedBody].
type BodyKind string

const (
	BodyKindJSON       BodyKind = "json"
	BodyKindURLEncoded BodyKind = "urlencoded"
)

// ParsedBody is a decoded request body attached to the request context.
type ParsedBody struct {
	// Kind is the parser that decoded the body.
	Kind BodyKind

	// Value is the decoded document: map[string]any, []any, string,
	// json.Number, bool or nil.
	Value any

	// Raw holds the body bytes after content decoding (gzip/deflate).
	Raw []byte
}

// WithParsedBody returns a copy of ctx carrying body.
func WithParsedBody(ctx context.Context, body ParsedBody) context.Context {
	return context.WithValue(ctx, ParsedBodyCtxKey, body)
}

// GetParsedBodyFromContext retrieves the parsed body from the context.
//
// Returns the body and an ok flag:
//   - ok == true: a body parser stage decoded the request body
//   - ok == false: no parser matched the request (no body, other
//     content type) or the context did not pass through the pipeline
//
// Example usage:
//
//	body, ok := utils.GetParsedBodyFromContext(r.Context())
//	if !ok {
//	    // treat as an empty body
//	}
func GetParsedBodyFromContext(ctx context.Context) (ParsedBody, bool) {
	body, ok := ctx.Value(ParsedBodyCtxKey).(ParsedBody)
	return body, ok
}
