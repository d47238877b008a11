package identity

import (
	"context"
	"job-board-api/constants"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	c := &Caller{ID: 7, Email: "a@example.com", Role: constants.RoleUser}
	ctx := WithCaller(context.Background(), c)
	assert.Same(t, c, FromContext(ctx))
}

func TestRoleOf(t *testing.T) {
	assert.Equal(t, constants.RoleUnauthenticated, RoleOf(nil))
	assert.Equal(t, constants.RoleAdmin, RoleOf(&Caller{Role: constants.RoleAdmin}))

	var nobody *Caller
	assert.False(t, nobody.IsAdmin())
	assert.True(t, (&Caller{Role: constants.RoleAdmin}).IsAdmin())
}
