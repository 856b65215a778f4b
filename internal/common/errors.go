// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// ErrNotFound is returned when a lookup by id matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig is returned for malformed configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)
