package models

import (
	"encoding/json"
	"testing"

	"address-registry/internal/address"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	key := address.Key{"1234", "N", "Main", "St", "", "", "Springfield", "IL", "62704", ""}

	addr, err := NewAddress(7, key)
	require.NoError(t, err)
	assert.Equal(t, int64(7), addr.ID)
	assert.Equal(t, "Main", addr.StreetName)
	assert.Equal(t, "1234 N Main St Springfield IL 62704", addr.Display)
	assert.Equal(t, key, addr.Key())
}

func TestNewAddress_InvalidTuple(t *testing.T) {
	key := address.Key{"12AB", "", "Main", "", "", "", "Springfield", "IL", "62704", ""}

	addr, err := NewAddress(1, key)
	assert.Nil(t, addr)
	assert.ErrorIs(t, err, address.ErrMalformedField)
}

func TestAddress_JSON(t *testing.T) {
	key := address.Key{"1234", "N", "Main", "St", "", "", "Springfield", "IL", "62704", ""}
	addr, err := NewAddress(1, key)
	require.NoError(t, err)

	b, err := json.Marshal(addr)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, float64(1), got["id"])
	assert.Equal(t, "1234", got["house_number"])
	assert.Equal(t, "", got["postal_plus4"])
	assert.Equal(t, "1234 N Main St Springfield IL 62704", got["display"])
}
