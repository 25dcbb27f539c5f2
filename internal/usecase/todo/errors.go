// Package todo holds the todo use cases that sit between the HTTP handlers
// and the todo repository.
package todo

import "errors"

// Sentinel errors for todo use case operations.
var (
	// ErrTodoNotFound indicates that no todo exists with the requested ID.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrTodoNotPersisted indicates that the store accepted a create call
	// but handed back no record.
	ErrTodoNotPersisted = errors.New("todo was not persisted")
)
