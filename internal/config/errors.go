package config

import "errors"

// Validation errors reported by [StructuredConfig.validate] when the merged
// configuration is missing values the application cannot start without.
var (
	// ErrInvalidAuthConfigs is returned when the token sign key or the
	// codec encryption key is missing.
	ErrInvalidAuthConfigs = errors.New("invalid auth configs: sign key and encryption key are required")

	// ErrInvalidStorageConfigs is returned when no database DSN was provided.
	ErrInvalidStorageConfigs = errors.New("invalid storage configs: database DSN is required")

	// ErrInvalidMailConfigs is returned when the SMTP host or sender address
	// is missing.
	ErrInvalidMailConfigs = errors.New("invalid mail configs: host and sender are required")
)
