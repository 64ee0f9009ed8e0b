package models

import (
	"fmt"

	"address-registry/internal/address"
)

// Address represents a stored address: its record id, the ten validated components, and the canonical display string derived from them.
type Address struct {
	ID int64 `json:"id"`
	address.Record
	Display string `json:"display"`
}

// NewAddress rebuilds a stored address from its uniqueness tuple
func NewAddress(id int64, key address.Key) (*Address, error) {
	rec := key.Record()
	display, err := address.Canonicalize(rec)
	if err != nil {
		return nil, fmt.Errorf("models: stored address %d is invalid: %w", id, err)
	}
	return &Address{ID: id, Record: rec, Display: display}, nil
}

// Key returns the uniqueness tuple of the stored address
func (a Address) Key() address.Key {
	var k address.Key
	copy(k[:], a.Record.Values())
	return k
}
