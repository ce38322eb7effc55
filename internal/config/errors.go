package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAuthConfigs indicates invalid token settings
	// (for example, a negative token duration).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a negative scan interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
