package address

import "unicode/utf8"

// State is the outcome of whole-record validation.
type State int

const (
	Unvalidated State = iota
	Valid
	Invalid
)

func (s State) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	}
	return "unvalidated"
}

// ValidateField checks value against the required, length and grammar rules
// of f, in that order, and returns the first failure as a *FieldError.
func ValidateField(f Field, value string) error {
	if fe := checkField(f, value); fe != nil {
		return fe
	}
	return nil
}

func checkField(f Field, value string) *FieldError {
	if !f.valid() {
		return &FieldError{Field: f, Kind: Malformed}
	}
	d := descriptors[f]
	if value == "" {
		if d.required {
			return &FieldError{Field: f, Kind: MissingRequired}
		}
		return nil
	}
	if utf8.RuneCountInString(value) > d.maxLen {
		return &FieldError{Field: f, Kind: TooLong, Max: d.maxLen}
	}
	if !d.match(value) {
		return &FieldError{Field: f, Kind: Malformed, Rule: d.rule}
	}
	return nil
}

// Validation is the result of validating a whole record. The zero value is
// Unvalidated.
type Validation struct {
	record Record
	state  State
	errs   []*FieldError
}

// Validate runs every field validator in field order and collects the
// failure of each rejected field.
func Validate(r Record) Validation {
	var errs []*FieldError
	for i := 0; i < NumFields; i++ {
		f := Field(i)
		if fe := checkField(f, r.Get(f)); fe != nil {
			errs = append(errs, fe)
		}
	}
	if len(errs) > 0 {
		return Validation{record: r, state: Invalid, errs: errs}
	}
	return Validation{record: r, state: Valid}
}

func (v Validation) State() State { return v.state }

func (v Validation) Valid() bool { return v.state == Valid }

// Errors returns the field failures in field order.
func (v Validation) Errors() []*FieldError {
	return append([]*FieldError(nil), v.errs...)
}

// Err returns nil for a valid record, a *ValidationError for an invalid one
// and ErrNotValidated for the zero Validation.
func (v Validation) Err() error {
	switch v.state {
	case Valid:
		return nil
	case Invalid:
		return &ValidationError{Errors: v.Errors()}
	}
	return ErrNotValidated
}

// Record returns the validated record.
func (v Validation) Record() (Record, error) {
	if v.state != Valid {
		return Record{}, ErrNotValidated
	}
	return v.record, nil
}

// Key returns the uniqueness tuple of a valid record.
func (v Validation) Key() (Key, error) {
	if v.state != Valid {
		return Key{}, ErrNotValidated
	}
	return keyOf(v.record), nil
}

// CanonicalString returns the display string of a valid record.
func (v Validation) CanonicalString() (string, error) {
	if v.state != Valid {
		return "", ErrNotValidated
	}
	return canonical(v.record), nil
}
