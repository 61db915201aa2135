// Package http implements the inbound HTTP pipeline of the web server.
//
// [Handler.Init] builds a chi router whose middleware stages run in a fixed
// order: request tracing, access logging, panic recovery, optional rate
// limiting, JSON and URL-encoded body parsing, static file serving, and a
// trailing JSON parser. The application router is mounted under the API
// prefix after these stages; anything left unhandled gets a 404.
//
// Parsed bodies reach downstream handlers through
// [github.com/MKhiriev/web-bootstrap/internal/utils.GetParsedBodyFromContext].
package http
