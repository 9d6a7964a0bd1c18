package directive

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates a directive payload is missing or mistypes a required field.
	ErrValidation = errors.New("invalid directive payload")

	// ErrAnchorNotFound indicates an insert's search text is absent from its target file.
	ErrAnchorNotFound = errors.New("anchor not found")

	// ErrInvalidDirective indicates an insert uses an unknown position.
	ErrInvalidDirective = errors.New("invalid directive")
)

// ValidationError describes the first offending field of a directive payload.
type ValidationError struct {
	// Source is the directive file the payload was read from (may be empty)
	Source string

	// Path locates the field inside the payload, e.g. "[1].inserts[0].search"
	Path string

	// Reason is a human-readable explanation
	Reason string
}

func (e *ValidationError) Error() string {
	location := e.Path
	if location == "" {
		location = "<root>"
	}
	if e.Source != "" {
		return fmt.Sprintf("%s: %s: %s: %s", ErrValidation, e.Source, location, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, location, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// AnchorNotFoundError reports the search text that could not be located.
type AnchorNotFoundError struct {
	File   string
	Search string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q in %s", ErrAnchorNotFound, e.Search, e.File)
}

func (e *AnchorNotFoundError) Unwrap() error { return ErrAnchorNotFound }

// InvalidDirectiveError reports an insert position outside before/after.
type InvalidDirectiveError struct {
	File     string
	Position string
}

func (e *InvalidDirectiveError) Error() string {
	return fmt.Sprintf("%s: unknown position %q for %s (want %q or %q)", ErrInvalidDirective, e.Position, e.File, Before, After)
}

func (e *InvalidDirectiveError) Unwrap() error { return ErrInvalidDirective }
