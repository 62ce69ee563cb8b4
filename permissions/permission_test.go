package permissions_test

import (
	"net/http"
	"testing"

	"houserental/permissions"
	"houserental/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEmbedded(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name     string
		method   string
		path     string
		wantSkip bool
		allowed  []string
		denied   []string
	}{
		{
			name:     "guest booking is public",
			method:   http.MethodPost,
			path:     "/v1/bookings/guest",
			wantSkip: true,
		},
		{
			name:     "webhook is public",
			method:   http.MethodPost,
			path:     "/v1/payments/webhook",
			wantSkip: true,
		},
		{
			name:    "owner bookings for agents and admins",
			method:  http.MethodGet,
			path:    "/v1/bookings/owner",
			allowed: []string{constant.RoleAgent, constant.RoleAdmin},
			denied:  []string{constant.RoleTenant},
		},
		{
			name:    "payment status update for admins",
			method:  http.MethodPatch,
			path:    "/v1/payments/{id}/status",
			allowed: []string{constant.RoleAdmin},
			denied:  []string{constant.RoleAgent, constant.RoleTenant},
		},
		{
			name:    "unlisted route admits any role",
			method:  http.MethodPost,
			path:    "/v1/bookings/",
			allowed: []string{constant.RoleTenant, constant.RoleAgent, constant.RoleAdmin},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)

			for _, role := range tt.allowed {
				assert.True(t, permission.Allows(role), role)
			}

			for _, role := range tt.denied {
				assert.False(t, permission.Allows(role), role)
			}
		})
	}
}

func TestFindPermissionsMethodInsensitive(t *testing.T) {
	data, err := permissions.Load([]byte(`{"endpoints":[{"path":"/v1/users/","method":"get","permissions":["admin"]}]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"admin"}, data.FindPermissions("/v1/users/", http.MethodGet).Permissions)
	assert.Empty(t, data.FindPermissions("/v1/users/", http.MethodPost).Permissions)
}

func TestLoadRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "malformed json",
			data: `{"endpoints":`,
		},
		{
			name: "unknown method",
			data: `{"endpoints":[{"path":"/v1/users/","method":"FETCH"}]}`,
		},
		{
			name: "duplicate route",
			data: `{"endpoints":[{"path":"/v1/users/","method":"GET"},{"path":"/v1/users/","method":"get"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := permissions.Load([]byte(tt.data))

			assert.Error(t, err)
			assert.Nil(t, data)
		})
	}
}
