package service

import "errors"

// ValidationError is a missing or malformed request field (HTTP 400).
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError is an unknown fruit id or category name (HTTP 404).
type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError is a request that clashes with existing state, such as a
// duplicate category or a category still in use (HTTP 400).
type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

var (
	// ErrFruitNotFound is returned for an unknown or malformed fruit id.
	ErrFruitNotFound = &NotFoundError{Message: "Fruit not found"}

	// ErrCategoryNotFound is returned for an unknown category name.
	ErrCategoryNotFound = &NotFoundError{Message: "Category not found"}
)

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
