// Package server binds the HTTP listener and runs the request pipeline.
//
// The listen address is the constant [ListenAddress]. The PORT environment
// variable is read into the configuration but never used for the bind; a
// differing value is only reported in the log.
package server
