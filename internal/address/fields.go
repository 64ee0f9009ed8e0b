// Package address implements the validation and normalization rules for
// decomposed US street addresses.
//
// A Record holds the ten raw components. Validate checks every component
// against a fixed descriptor table and returns a Validation; only a Valid
// validation yields the canonical display string and the uniqueness Key that
// stores index on.
package address

import (
	"regexp"
	"strings"
)

// Field identifies one address component. Fields are ordered; the order is
// shared by validation, canonicalization and the uniqueness key.
type Field int

const (
	HouseNumber Field = iota
	DirectionPrefix
	StreetName
	StreetType
	DirectionSuffix
	Unit
	City
	StateCode
	PostalCode
	PostalPlus4
)

// NumFields is the number of components in a record.
const NumFields = 10

type descriptor struct {
	name     string
	label    string
	required bool
	maxLen   int
	rule     string
	message  string
	match    func(string) bool
}

var (
	houseNumberRe   = regexp.MustCompile(`^\d+[A-Z]?$`)
	directionRe     = regexp.MustCompile(`^[NS]?[EW]?$`)
	lettersSpacesRe = regexp.MustCompile(`^[A-Za-z\s]+$`)
	streetTypeRe    = regexp.MustCompile(`^[A-Za-z]+\.?$`)
	unitRe          = regexp.MustCompile(`^[A-Za-z]+\.*\s\d+$`)
	stateCodeRe     = regexp.MustCompile(`^[A-Z]{2}$`)
	postalCodeRe    = regexp.MustCompile(`^\d{5}$`)
	postalPlus4Re   = regexp.MustCompile(`^\d{4}$`)
)

// lettersAndSpaces requires at least one letter; the bare pattern would
// accept a whitespace-only value.
func lettersAndSpaces(s string) bool {
	return lettersSpacesRe.MatchString(s) && strings.TrimSpace(s) != ""
}

var descriptors = [NumFields]descriptor{
	HouseNumber: {
		name: "house_number", label: "Building Number", required: true, maxLen: 16,
		rule: houseNumberRe.String(), message: "invalid house number",
		match: houseNumberRe.MatchString,
	},
	DirectionPrefix: {
		name: "direction_prefix", label: "Direction Prefix", maxLen: 2,
		rule: directionRe.String(), message: "invalid direction prefix",
		match: directionRe.MatchString,
	},
	StreetName: {
		name: "street_name", label: "Street Name", required: true, maxLen: 32,
		rule: lettersSpacesRe.String(), message: "invalid street name",
		match: lettersAndSpaces,
	},
	StreetType: {
		name: "street_type", label: "Street Type", maxLen: 16,
		rule: streetTypeRe.String(), message: "invalid street type",
		match: streetTypeRe.MatchString,
	},
	DirectionSuffix: {
		name: "direction_suffix", label: "Direction Suffix", maxLen: 2,
		rule: directionRe.String(), message: "invalid direction suffix",
		match: directionRe.MatchString,
	},
	Unit: {
		name: "unit", label: "Internal", maxLen: 32,
		rule: unitRe.String(), message: "invalid internal address",
		match: unitRe.MatchString,
	},
	City: {
		name: "city", label: "City", required: true, maxLen: 32,
		rule: lettersSpacesRe.String(), message: "invalid city",
		match: lettersAndSpaces,
	},
	StateCode: {
		name: "state_code", label: "State", required: true, maxLen: 2,
		rule: stateCodeRe.String(), message: "invalid state",
		match: stateCodeRe.MatchString,
	},
	PostalCode: {
		name: "postal_code", label: "ZIP Code", required: true, maxLen: 5,
		rule: postalCodeRe.String(), message: "invalid ZIP code",
		match: postalCodeRe.MatchString,
	},
	PostalPlus4: {
		name: "postal_plus4", label: "ZIP+4 Code", maxLen: 4,
		rule: postalPlus4Re.String(), message: "invalid ZIP+4 code",
		match: postalPlus4Re.MatchString,
	},
}

var directions = []string{"N", "S", "E", "W", "NE", "NW", "SE", "SW"}

// Fields returns every field in table order.
func Fields() []Field {
	fs := make([]Field, NumFields)
	for i := range fs {
		fs[i] = Field(i)
	}
	return fs
}

// RequiredFields returns the fields that must be non-empty, in table order.
func RequiredFields() []Field {
	var fs []Field
	for i, d := range descriptors {
		if d.required {
			fs = append(fs, Field(i))
		}
	}
	return fs
}

// Directions returns the accepted non-empty direction abbreviations.
func Directions() []string {
	return append([]string(nil), directions...)
}

// FieldByName looks a field up by its snake_case name.
func FieldByName(name string) (Field, bool) {
	for i, d := range descriptors {
		if d.name == name {
			return Field(i), true
		}
	}
	return 0, false
}

func (f Field) valid() bool { return f >= 0 && int(f) < NumFields }

// String returns the snake_case field name.
func (f Field) String() string {
	if !f.valid() {
		return "unknown"
	}
	return descriptors[f].name
}

// Label returns the human readable field name.
func (f Field) Label() string {
	if !f.valid() {
		return "Unknown"
	}
	return descriptors[f].label
}

// Required reports whether the field must be non-empty.
func (f Field) Required() bool { return f.valid() && descriptors[f].required }

// MaxLen returns the maximum length of the field in characters.
func (f Field) MaxLen() int {
	if !f.valid() {
		return 0
	}
	return descriptors[f].maxLen
}

// Rule returns the grammar pattern the field's value must match.
func (f Field) Rule() string {
	if !f.valid() {
		return ""
	}
	return descriptors[f].rule
}
