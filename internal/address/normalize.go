package address

import "strings"

// Collapse replaces every run of whitespace with a single space and trims
// the ends. Collapse(Collapse(s)) == Collapse(s).
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func canonical(r Record) string {
	parts := make([]string, 0, NumFields)
	for i := 0; i < NumFields; i++ {
		if v := r.Get(Field(i)); v != "" {
			parts = append(parts, v)
		}
	}
	return Collapse(strings.Join(parts, " "))
}

// Canonicalize validates r and returns its display string.
func Canonicalize(r Record) (string, error) {
	v := Validate(r)
	if err := v.Err(); err != nil {
		return "", err
	}
	return v.CanonicalString()
}
