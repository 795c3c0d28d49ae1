package xccdf

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is wrapped by a PreconditionError for an empty
	// required field.
	ErrMissingField = errors.New("missing required field")
	// ErrExclusiveField is wrapped by a PreconditionError for a field that
	// may not be set together with another one.
	ErrExclusiveField = errors.New("field excludes another set field")
)

// PreconditionError reports a field that prevents serialization. Field is a
// dotted path such as "id", "version.value" or "Rule[2].id". Err is
// ErrMissingField when nil.
type PreconditionError struct {
	Field string
	Err   error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("xccdf: %s: %s", e.Unwrap(), e.Field)
}

func (e *PreconditionError) Unwrap() error {
	if e.Err == nil {
		return ErrMissingField
	}
	return e.Err
}
