// Package routes provides the default application router mounted under the
// API prefix. The bootstrap in package http treats it as an opaque
// [net/http.Handler]; any handler can take its place.
package routes
