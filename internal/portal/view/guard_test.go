package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dochub/internal/auth/models"
)

func TestGuardAllow(t *testing.T) {
	ctx := context.Background()
	guard, err := NewGuard(ctx)
	require.NoError(t, err)

	now := time.Now()
	active := func(role models.Role) *models.Session {
		return &models.Session{Role: role, Status: models.SessionStatusActive, ExpiresAt: now.Add(time.Hour)}
	}
	revoked := active(models.RoleCitizen)
	revoked.Status = models.SessionStatusRevoked

	tests := []struct {
		name string
		view View
		sess *models.Session
		want bool
	}{
		{"home is public", Home, nil, true},
		{"login is public", Login, nil, true},
		{"dashboard needs a session", Citizen, nil, false},
		{"matching role", Citizen, active(models.RoleCitizen), true},
		{"officer dashboard for officer", Officer, active(models.RoleOfficer), true},
		{"admin dashboard for admin", Admin, active(models.RoleAdmin), true},
		{"different role", Admin, active(models.RoleCitizen), false},
		{"officer cannot open citizen view", Citizen, active(models.RoleOfficer), false},
		{"revoked session", Citizen, revoked, false},
		{"home with a session", Home, active(models.RoleOfficer), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := guard.Allow(ctx, NewInput(tt.view, tt.sess, now))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuardRejectsBrokenPolicy(t *testing.T) {
	_, err := NewGuardWithPolicy(context.Background(), "package dochub.views\nallow if {")
	assert.Error(t, err)
}

func TestGuardHealthCheck(t *testing.T) {
	guard, err := NewGuard(context.Background())
	require.NoError(t, err)
	assert.NoError(t, guard.HealthCheck(context.Background()))
}

func TestParse(t *testing.T) {
	v, ok := Parse(" Officer ")
	assert.True(t, ok)
	assert.Equal(t, Officer, v)

	_, ok = Parse("settings")
	assert.False(t, ok)
}
