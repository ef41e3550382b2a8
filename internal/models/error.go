package models

// Domain error taxonomy. Controllers translate these to HTTP statuses:
// ValidationError and ConflictError become 400, NotFoundError becomes 404,
// anything else is logged and reported as a generic 500.

// ValidationError signals malformed or missing input, caught before anything
// is persisted.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError signals a uniqueness or referential-integrity violation, such
// as deleting a category that still owns products.
type ConflictError struct {
	Message string
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NotFoundError signals an absent entity.
type NotFoundError struct {
	Message string
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func (e *NotFoundError) Error() string {
	return e.Message
}
