package engine

import "errors"

var (
	// ErrConflict indicates the destination already holds a project.
	ErrConflict = errors.New("conflict detected")

	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a template, language or feature was not found.
	ErrNotFound = errors.New("not found")
)
