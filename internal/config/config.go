// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// StructuredConfig is the top-level configuration container for the web
// server. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Port is the raw value of the PORT environment variable.
	//
	// It is read for diagnostics only: the listener always binds the
	// hard-coded address in the server package. An absent variable leaves
	// the field empty and no fallback is applied.
	// Env: PORT
	Port string `env:"PORT"`

	// App holds application-level settings such as the version string and
	// log verbosity.
	App App `envPrefix:"APP_"`

	// Server holds static-file, routing and lifecycle settings of the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// Body holds limits and modes of the request body parsers.
	Body Body `envPrefix:"BODY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the version string reported by the /version route.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", "warn", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Server holds settings of the inbound HTTP pipeline.
type Server struct {
	// StaticDir is the directory whose files are served verbatim at "/".
	// Env: SERVER_STATIC_DIR
	StaticDir string `env:"STATIC_DIR"`

	// APIPrefix is the path prefix the router is mounted under.
	// Env: SERVER_API_PREFIX
	APIPrefix string `env:"API_PREFIX"`

	// ShutdownTimeout bounds graceful shutdown after a stop signal.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// ReadHeaderTimeout is passed to http.Server. Zero means no timeout.
	// Env: SERVER_READ_HEADER_TIMEOUT
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT"`

	// RateLimitRPS is the global request rate. Zero or less disables the
	// rate-limit stage.
	// Env: SERVER_RATE_LIMIT_RPS
	RateLimitRPS float64 `env:"RATE_LIMIT_RPS"`

	// RateLimitBurst is the token bucket size of the rate-limit stage.
	// Env: SERVER_RATE_LIMIT_BURST
	RateLimitBurst int `env:"RATE_LIMIT_BURST"`
}

// Body holds settings of the JSON and URL-encoded body parsers.
type Body struct {
	// JSONLimit is the maximum accepted JSON body size in bytes.
	// Env: BODY_JSON_LIMIT
	JSONLimit int64 `env:"JSON_LIMIT"`

	// URLEncodedLimit is the maximum accepted URL-encoded body size in bytes.
	// Env: BODY_URLENCODED_LIMIT
	URLEncodedLimit int64 `env:"URLENCODED_LIMIT"`

	// ParameterLimit is the maximum number of key/value pairs in a
	// URL-encoded body.
	// Env: BODY_PARAMETER_LIMIT
	ParameterLimit int `env:"PARAMETER_LIMIT"`

	// Depth is the maximum nesting depth of bracket keys in extended mode.
	// Nil means unset; an explicit 0 disables nesting.
	// Env: BODY_DEPTH
	Depth *int `env:"DEPTH"`

	// ArrayLimit is the highest index still decoded as an array element.
	// Nil means unset; an explicit 0 keeps only index 0 as an array.
	// Env: BODY_ARRAY_LIMIT
	ArrayLimit *int `env:"ARRAY_LIMIT"`

	// SimpleURLEncoded switches the URL-encoded parser from extended
	// (bracket notation) to simple mode.
	// Env: BODY_SIMPLE_URLENCODED
	SimpleURLEncoded bool `env:"SIMPLE_URLENCODED"`
}

// NestingDepth returns Depth, or [DefaultDepth] when it is unset.
func (b Body) NestingDepth() int {
	if b.Depth == nil {
		return DefaultDepth
	}
	return *b.Depth
}

// MaxArrayIndex returns ArrayLimit, or [DefaultArrayLimit] when it is unset.
func (b Body) MaxArrayIndex() int {
	if b.ArrayLimit == nil {
		return DefaultArrayLimit
	}
	return *b.ArrayLimit
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags registered by [RegisterFlags] on fs
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults are applied to the merged result before validation. fs may be
// nil, in which case flags are skipped.
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(fs).
		withJSON().
		build()
}
