package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a merged
// configuration group is invalid.
var (
	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, an API prefix without a leading slash).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidBodyConfigs indicates invalid body parser limits.
	ErrInvalidBodyConfigs = errors.New("invalid body parser configuration")
)
