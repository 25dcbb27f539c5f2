package entity

import "errors"

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found.
	// Repositories wrap it when a write statement matched no rows.
	ErrNotFound = errors.New("entity not found")
)
