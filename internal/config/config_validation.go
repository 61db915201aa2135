// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"
)

// Defaults applied to zero-valued fields after all sources are merged.
const (
	DefaultStaticDir       = "public"
	DefaultAPIPrefix       = "/api"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultRateLimitBurst  = 1

	DefaultJSONLimit       = 100 * 1024
	DefaultURLEncodedLimit = 100 * 1024
	DefaultParameterLimit  = 1000
	DefaultDepth           = 32
	DefaultArrayLimit      = 20
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}

	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = DefaultStaticDir
	}
	if cfg.Server.APIPrefix == "" {
		cfg.Server.APIPrefix = DefaultAPIPrefix
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = DefaultRateLimitBurst
	}

	if cfg.Body.JSONLimit == 0 {
		cfg.Body.JSONLimit = DefaultJSONLimit
	}
	if cfg.Body.URLEncodedLimit == 0 {
		cfg.Body.URLEncodedLimit = DefaultURLEncodedLimit
	}
	if cfg.Body.ParameterLimit == 0 {
		cfg.Body.ParameterLimit = DefaultParameterLimit
	}
	if cfg.Body.Depth == nil {
		depth := DefaultDepth
		cfg.Body.Depth = &depth
	}
	if cfg.Body.ArrayLimit == nil {
		arrayLimit := DefaultArrayLimit
		cfg.Body.ArrayLimit = &arrayLimit
	}
}

// validate checks that the merged and defaulted [StructuredConfig] can be
// used to build the pipeline.
//
// Port is not validated: it never reaches the listener.
func (cfg *StructuredConfig) validate() error {
	prefix := cfg.Server.APIPrefix
	if !strings.HasPrefix(prefix, "/") || prefix == "/" || strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("%w: api prefix %q must start with '/' and not end with it", ErrInvalidServerConfigs, prefix)
	}

	if cfg.Server.ShutdownTimeout < 0 || cfg.Server.ReadHeaderTimeout < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidServerConfigs)
	}
	if cfg.Server.RateLimitBurst < 0 {
		return fmt.Errorf("%w: rate limit burst must not be negative", ErrInvalidServerConfigs)
	}

	if cfg.Body.JSONLimit < 0 || cfg.Body.URLEncodedLimit < 0 {
		return fmt.Errorf("%w: body limits must be positive", ErrInvalidBodyConfigs)
	}
	if cfg.Body.ParameterLimit < 0 || cfg.Body.NestingDepth() < 0 || cfg.Body.MaxArrayIndex() < 0 {
		return fmt.Errorf("%w: parameter, depth and array limits must be positive", ErrInvalidBodyConfigs)
	}

	return nil
}
