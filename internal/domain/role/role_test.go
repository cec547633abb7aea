package role

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for _, r := range All {
		parsed, err := Parse(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	_, err := Parse("admin")
	assert.Error(t, err)

	_, err = Parse("")
	assert.Error(t, err)
}

func TestZeroRoleIsInvalid(t *testing.T) {
	var r Role
	assert.False(t, r.Valid())

	_, err := r.Value()
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	var r Role
	require.NoError(t, r.Scan([]byte("salon_owner")))
	assert.Equal(t, Owner, r)

	assert.Error(t, r.Scan(42))
	assert.Error(t, r.Scan("barber"))
}

func TestJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{Worker})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"worker"}`, string(b))

	var out struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"customer"}`), &out))
	assert.Equal(t, Customer, out.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"root"}`), &out))
}
