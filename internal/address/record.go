package address

// Record holds the raw, unvalidated components of an address.
type Record struct {
	HouseNumber     string `json:"house_number" form:"house_number"`
	DirectionPrefix string `json:"direction_prefix" form:"direction_prefix"`
	StreetName      string `json:"street_name" form:"street_name"`
	StreetType      string `json:"street_type" form:"street_type"`
	DirectionSuffix string `json:"direction_suffix" form:"direction_suffix"`
	Unit            string `json:"unit" form:"unit"`
	City            string `json:"city" form:"city"`
	StateCode       string `json:"state_code" form:"state_code"`
	PostalCode      string `json:"postal_code" form:"postal_code"`
	PostalPlus4     string `json:"postal_plus4" form:"postal_plus4"`
}

// Key is the uniqueness tuple of a record: the ten raw values in field order.
// Keys compare with ==, exact and case-sensitive.
type Key [NumFields]string

// Get returns the value of field f.
func (r Record) Get(f Field) string {
	switch f {
	case HouseNumber:
		return r.HouseNumber
	case DirectionPrefix:
		return r.DirectionPrefix
	case StreetName:
		return r.StreetName
	case StreetType:
		return r.StreetType
	case DirectionSuffix:
		return r.DirectionSuffix
	case Unit:
		return r.Unit
	case City:
		return r.City
	case StateCode:
		return r.StateCode
	case PostalCode:
		return r.PostalCode
	case PostalPlus4:
		return r.PostalPlus4
	}
	return ""
}

// Set assigns value to field f. Unknown fields are ignored.
func (r *Record) Set(f Field, value string) {
	switch f {
	case HouseNumber:
		r.HouseNumber = value
	case DirectionPrefix:
		r.DirectionPrefix = value
	case StreetName:
		r.StreetName = value
	case StreetType:
		r.StreetType = value
	case DirectionSuffix:
		r.DirectionSuffix = value
	case Unit:
		r.Unit = value
	case City:
		r.City = value
	case StateCode:
		r.StateCode = value
	case PostalCode:
		r.PostalCode = value
	case PostalPlus4:
		r.PostalPlus4 = value
	}
}

// Values returns the ten values in field order.
func (r Record) Values() []string {
	k := keyOf(r)
	return k[:]
}

// RecordFromValues builds a record from values in field order. Missing
// trailing values are left empty and extra values are ignored.
func RecordFromValues(values []string) Record {
	var r Record
	for i, v := range values {
		if i >= NumFields {
			break
		}
		r.Set(Field(i), v)
	}
	return r
}

func keyOf(r Record) Key {
	var k Key
	for i := range k {
		k[i] = r.Get(Field(i))
	}
	return k
}

// Record converts a stored tuple back into a record.
func (k Key) Record() Record {
	return RecordFromValues(k[:])
}
