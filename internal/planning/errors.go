package planning

import "fmt"

// ValidationError reports malformed input: non-positive quantity, empty
// recipe name, missing spreadsheet column, month out of range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// NewValidation builds a ValidationError for field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError reports a mutation rejected because of existing unit
// progress or a concurrent write. UnitNumber is 0 for write races.
type ConflictError struct {
	UnitNumber int
	Reason     string
}

func (e *ConflictError) Error() string { return e.Reason }

// NotFoundError reports an unknown plan, recipe or product.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

// NewNotFound builds a NotFoundError.
func NewNotFound(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}
