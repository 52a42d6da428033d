package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidImport indicates an import payload that is not a full
	// repository state (sections plus metadata). The existing state is
	// left untouched when this is returned.
	ErrInvalidImport = errors.New("invalid import payload")

	// ErrEmptySelection indicates a bundle was requested with no
	// sections selected.
	ErrEmptySelection = errors.New("no sections selected")
)
