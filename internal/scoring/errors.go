package scoring

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingField is wrapped by every ValidationError.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidDate is wrapped by every ParseError.
	ErrInvalidDate = errors.New("invalid due_date")
	// ErrFieldType reports a task field holding a value of the wrong JSON type.
	ErrFieldType = errors.New("invalid field type")
)

// ValidationError rejects a whole batch because one task lacks required fields.
type ValidationError struct {
	Index  int
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("task %d: missing required fields: %s", e.Index, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrMissingField }

// ParseError reports a due_date that is not an ISO-8601 calendar date.
type ParseError struct {
	Index int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("task %d: %v %q: %v", e.Index, ErrInvalidDate, e.Value, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrInvalidDate, e.Err} }

// FieldError reports a task field that could not be decoded.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() []error { return []error{ErrFieldType, e.Err} }
