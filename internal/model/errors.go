package model

import "fmt"

// MissingRequiredFieldError is returned when an entity is constructed
// without one of its required fields
type MissingRequiredFieldError struct {
	Entity string
	Field  string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %s", e.Entity, e.Field)
}

// NewMissingRequiredFieldError creates a new missing field error
func NewMissingRequiredFieldError(entity, field string) *MissingRequiredFieldError {
	return &MissingRequiredFieldError{
		Entity: entity,
		Field:  field,
	}
}

// UnknownAddressError is returned in strict mode when a line references an
// address code that was never added to the document
type UnknownAddressError struct {
	Line  int
	Field string
	Code  int
}

func (e *UnknownAddressError) Error() string {
	return fmt.Sprintf("line %d: %s %d does not reference an added address", e.Line, e.Field, e.Code)
}

// NewUnknownAddressError creates a new unknown address error
func NewUnknownAddressError(line int, field string, code int) *UnknownAddressError {
	return &UnknownAddressError{
		Line:  line,
		Field: field,
		Code:  code,
	}
}

// ValidationError represents caller input that cannot be turned into an entity
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string, cause error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
		Cause:   cause,
	}
}
