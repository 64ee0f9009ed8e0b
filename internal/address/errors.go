package address

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrFieldTooLong         = errors.New("field too long")
	ErrMalformedField       = errors.New("malformed field")

	// ErrNotValidated is returned when a canonical string or key is requested
	// from a record that did not pass validation.
	ErrNotValidated = errors.New("address: record not validated")

	// ErrConflict reports that an identical address tuple is already stored.
	ErrConflict = errors.New("duplicate address")

	ErrNotFound = errors.New("address not found")
)

// ErrorKind classifies a field failure.
type ErrorKind int

const (
	MissingRequired ErrorKind = iota + 1
	TooLong
	Malformed
)

// Code returns the machine readable name of the kind.
func (k ErrorKind) Code() string {
	switch k {
	case MissingRequired:
		return "missing_required"
	case TooLong:
		return "too_long"
	case Malformed:
		return "malformed"
	}
	return "unknown"
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingRequired:
		return ErrMissingRequiredField
	case TooLong:
		return ErrFieldTooLong
	case Malformed:
		return ErrMalformedField
	}
	return nil
}

// FieldError describes why a single field was rejected. Max is set for
// TooLong, Rule for Malformed.
type FieldError struct {
	Field Field
	Kind  ErrorKind
	Max   int
	Rule  string
}

func (e *FieldError) Error() string {
	switch e.Kind {
	case MissingRequired:
		return fmt.Sprintf("%s: this field is required", e.Field)
	case TooLong:
		return fmt.Sprintf("%s: ensure this value has at most %d characters", e.Field, e.Max)
	case Malformed:
		if !e.Field.valid() {
			return fmt.Sprintf("%s: unknown field", e.Field)
		}
		return fmt.Sprintf("%s: %s (must match %s)", e.Field, descriptors[e.Field].message, e.Rule)
	}
	return fmt.Sprintf("%s: invalid value", e.Field)
}

// Message returns the user facing part of the error, without the field name.
func (e *FieldError) Message() string {
	msg := e.Error()
	return strings.TrimPrefix(msg, e.Field.String()+": ")
}

// Is lets errors.Is match a FieldError against the kind sentinels.
func (e *FieldError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// ValidationError carries every field failure of a record, in field order.
type ValidationError struct {
	Errors []*FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "address: " + e.Errors[0].Error()
	}
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Error()
	}
	return fmt.Sprintf("address: %d invalid fields: %s", len(e.Errors), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, fe := range e.Errors {
		errs[i] = fe
	}
	return errs
}

// First returns the failure of the earliest field.
func (e *ValidationError) First() *FieldError {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0]
}

// For returns the failure reported for field f, if any.
func (e *ValidationError) For(f Field) *FieldError {
	for _, fe := range e.Errors {
		if fe.Field == f {
			return fe
		}
	}
	return nil
}
