package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a relative APP_URL).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, missing listen address or negative timeouts).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidEmailConfigs indicates an unusable email relay URL.
	ErrInvalidEmailConfigs = errors.New("invalid email configuration")
	// ErrInvalidClientConfigs indicates invalid RPC client settings
	// (for example, missing API URL or non-positive batch limits).
	ErrInvalidClientConfigs = errors.New("invalid client configuration")
)
