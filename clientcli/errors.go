package clientcli

import "errors"

// Errors for configuration validation.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrCredentialsRequired = errors.New("credentials are required")
)

// Errors for input validation.
var (
	ErrEmptyULID = errors.New("document ULID is required")
)
