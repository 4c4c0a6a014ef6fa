package shared

// ErrorKind classifies a domain error for transport mapping.
// The presentation layer translates kinds to HTTP status codes.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindValidation   ErrorKind = "validation"
	KindConflict     ErrorKind = "conflict"
	KindInternal     ErrorKind = "internal"
)

// DomainError represents an expected business outcome returned as a value.
// It is never used for infrastructure failures, which propagate as plain errors.
type DomainError struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Kind    ErrorKind `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error with an explicit kind
func NewDomainError(code, message string, kind ErrorKind) *DomainError {
	return &DomainError{Code: code, Message: message, Kind: kind}
}

// NewNotFoundError creates a not-found domain error
func NewNotFoundError(code, message string) *DomainError {
	return NewDomainError(code, message, KindNotFound)
}

// NewUnauthorizedError creates an unauthorized domain error
func NewUnauthorizedError(code, message string) *DomainError {
	return NewDomainError(code, message, KindUnauthorized)
}

// NewValidationError creates a validation domain error
func NewValidationError(code, message string) *DomainError {
	return NewDomainError(code, message, KindValidation)
}

// NewConflictError creates a conflict domain error
func NewConflictError(code, message string) *DomainError {
	return NewDomainError(code, message, KindConflict)
}

// Common domain errors
var (
	ErrNotFound            = NewNotFoundError("NOT_FOUND", "Resource not found")
	ErrUnauthorized        = NewUnauthorizedError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidInput        = NewValidationError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewConflictError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewConflictError("INVALID_STATE", "Operation not allowed in current state")
)
