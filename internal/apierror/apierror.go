// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation failed", Fields: fields}
}

// ConflictError is returned when a plan edit is blocked by unit progress.
// BlockingUnit is omitted for concurrent-write conflicts.
type ConflictError struct {
	Detail       string `json:"detail"`
	BlockingUnit int    `json:"blocking_unit,omitempty"`
}

func NewConflict(msg string, unit int) *ConflictError {
	return &ConflictError{Detail: msg, BlockingUnit: unit}
}
