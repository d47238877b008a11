package policies

import (
	"job-board-api/constants"
	"job-board-api/identity"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopesByRole(t *testing.T) {
	admin := &identity.Caller{ID: 1, Role: constants.RoleAdmin}
	user := &identity.Caller{ID: 2, Role: constants.RoleUser}

	tests := []struct {
		name   string
		caller *identity.Caller
		apps   Scope
		users  Scope
	}{
		{"unauthenticated", nil, ScopeNone, ScopeNone},
		{"user", user, ScopeOwn, ScopeOwn},
		{"admin", admin, ScopeAll, ScopeAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.apps, ApplicationsScope(tt.caller))
			assert.Equal(t, tt.users, UsersScope(tt.caller))
		})
	}
}

func TestUnknownRoleSeesNothing(t *testing.T) {
	c := &identity.Caller{ID: 3, Role: "guest"}
	assert.Equal(t, ScopeNone, ApplicationsScope(c))
	assert.False(t, CanSeeUserApplications(c, 3))
}

func TestCanSeeUserApplications(t *testing.T) {
	user := &identity.Caller{ID: 2, Role: constants.RoleUser}
	admin := &identity.Caller{ID: 1, Role: constants.RoleAdmin}

	assert.True(t, CanSeeUserApplications(user, 2))
	assert.False(t, CanSeeUserApplications(user, 3))
	assert.True(t, CanSeeUserApplications(admin, 3))
	assert.False(t, CanSeeUserApplications(nil, 2))
}
