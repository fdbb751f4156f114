package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)
	assert.True(t, r.IsAdmin())

	r, err = ParseRole("user")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, r)
	assert.False(t, r.IsAdmin())

	for _, bad := range []string{"", "Admin", "root", " user"} {
		_, err := ParseRole(bad)
		assert.ErrorIs(t, err, ErrInvalidRole, bad)
	}
}

func TestRoleScanAndValue(t *testing.T) {
	var r Role
	require.NoError(t, r.Scan([]byte("admin")))
	assert.Equal(t, RoleAdmin, r)
	require.NoError(t, r.Scan("user"))
	assert.Equal(t, RoleUser, r)
	assert.ErrorIs(t, r.Scan("superuser"), ErrInvalidRole)
	assert.Error(t, r.Scan(42))

	v, err := RoleAdmin.Value()
	require.NoError(t, err)
	assert.Equal(t, "admin", v)

	_, err = Role("owner").Value()
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRoleJSON(t *testing.T) {
	var body struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"admin"}`), &body))
	assert.Equal(t, RoleAdmin, body.Role)

	err := json.Unmarshal([]byte(`{"role":"god"}`), &body)
	assert.ErrorIs(t, err, ErrInvalidRole)

	out, err := json.Marshal(User{Role: RoleUser, PasswordHash: "secret"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"role":"user"`)
	assert.NotContains(t, string(out), "secret")
}
