package middlewares

import (
	"context"
	"errors"
	"fmt"
	"job-board-api/apperrors"
	"job-board-api/constants"
	"job-board-api/dto"
	"job-board-api/identity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	caller *identity.Caller
	err    error
	calls  int
}

func (f *fakeAuth) ResolveCaller(_ context.Context, header string) (*identity.Caller, error) {
	f.calls++
	if header == "" {
		return nil, nil
	}
	return f.caller, f.err
}

func (f *fakeAuth) Login(context.Context, dto.LoginInput) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeAuth) Logout(context.Context, string) error {
	return errors.New("not implemented")
}

var (
	alice = &identity.Caller{ID: 2, Email: "alice@example.com", Role: constants.RoleUser}
	admin = &identity.Caller{ID: 1, Email: "admin@example.com", Role: constants.RoleAdmin}
)

// allRoleSets 3つのロールの全ての部分集合
func allRoleSets() []RoleSet {
	roles := []string{constants.RoleUnauthenticated, constants.RoleUser, constants.RoleAdmin}
	var sets []RoleSet
	for mask := 0; mask < 1<<len(roles); mask++ {
		var picked []string
		for i, role := range roles {
			if mask&(1<<i) != 0 {
				picked = append(picked, role)
			}
		}
		sets = append(sets, Roles(picked...))
	}
	return sets
}

func TestGateAuthorizeTruthTable(t *testing.T) {
	type presented struct {
		name   string
		header string
		auth   *fakeAuth
		// 通過したときに束縛される呼び出し元
		bound *identity.Caller
		// 通過させる条件となるロール
		role string
		// 拒否したときのエラー
		denied error
	}
	cases := []presented{
		{name: "no header", header: "", auth: &fakeAuth{}, role: constants.RoleUnauthenticated, denied: apperrors.ErrInsufficientPrivileges},
		{name: "malformed header", header: "Token abc", auth: &fakeAuth{err: apperrors.ErrInvalidHeader}, role: constants.RoleUnauthenticated, denied: apperrors.ErrInvalidHeader},
		{name: "bad signature", header: "Bearer abc", auth: &fakeAuth{err: apperrors.ErrInvalidToken}, role: constants.RoleUnauthenticated, denied: apperrors.ErrInvalidToken},
		{name: "expired", header: "Bearer abc", auth: &fakeAuth{err: apperrors.ErrExpiredToken}, role: constants.RoleUnauthenticated, denied: apperrors.ErrExpiredToken},
		{name: "user", header: "Bearer abc", auth: &fakeAuth{caller: alice}, bound: alice, role: constants.RoleUser, denied: apperrors.ErrInsufficientPrivileges},
		{name: "admin", header: "Bearer abc", auth: &fakeAuth{caller: admin}, bound: admin, role: constants.RoleAdmin, denied: apperrors.ErrInsufficientPrivileges},
	}

	gate := NewGate(nil)
	for _, tc := range cases {
		for _, allowed := range allRoleSets() {
			t.Run(fmt.Sprintf("%s %s", tc.name, allowed), func(t *testing.T) {
				ctx := WithCredentials(context.Background(), tc.header, tc.auth)

				authorized, err := gate.Authorize(ctx, allowed)

				if allowed.Allows(tc.role) {
					require.NoError(t, err)
					assert.Equal(t, tc.bound, identity.FromContext(authorized))
					return
				}
				assert.ErrorIs(t, err, tc.denied)
			})
		}
	}
}

func TestGateNeverBypassesMissingUser(t *testing.T) {
	gate := NewGate(nil)
	for _, allowed := range allRoleSets() {
		ctx := WithCredentials(context.Background(), "Bearer abc", &fakeAuth{err: apperrors.ErrAuthenticatedUserNotFound})

		_, err := gate.Authorize(ctx, allowed)

		assert.ErrorIs(t, err, apperrors.ErrAuthenticatedUserNotFound, "allowed=%s", allowed)
	}
}

func TestCallerIsResolvedOncePerRequest(t *testing.T) {
	auth := &fakeAuth{caller: alice}
	ctx := WithCredentials(context.Background(), "Bearer abc", auth)
	gate := NewGate(nil)

	for i := 0; i < 3; i++ {
		_, err := gate.Authorize(ctx, Roles(constants.RoleUser))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, auth.calls)
}

func TestGuardMasksInternalErrors(t *testing.T) {
	ctx := WithCredentials(context.Background(), "Bearer abc", &fakeAuth{caller: admin})
	gate := NewGate(nil)

	_, err := Guard(ctx, gate, Roles(constants.RoleAdmin), func(context.Context) (int, error) {
		return 0, errors.New("database is locked")
	})
	require.Error(t, err)
	assert.Equal(t, constants.ErrUnexpected, err.Error())

	_, err = Guard(ctx, gate, Roles(constants.RoleAdmin), func(context.Context) (int, error) {
		return 0, apperrors.NotFound(constants.ResourceJob)
	})
	require.Error(t, err)
	assert.Equal(t, "Job not found.", err.Error())
}

func TestGuardRunsWithBoundCaller(t *testing.T) {
	ctx := WithCredentials(context.Background(), "Bearer abc", &fakeAuth{caller: alice})
	gate := NewGate(nil)

	got, err := Guard(ctx, gate, Roles(constants.RoleUser, constants.RoleAdmin), func(ctx context.Context) (uint, error) {
		return identity.FromContext(ctx).ID, nil
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got)

	called := false
	_, err = Guard(ctx, gate, Roles(constants.RoleAdmin), func(context.Context) (bool, error) {
		called = true
		return true, nil
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPrivileges)
	assert.False(t, called)
}

func TestRolesNormalizesNames(t *testing.T) {
	set := Roles(" Admin ", "USER")
	assert.True(t, set.Allows("admin"))
	assert.True(t, set.Allows("user"))
	assert.False(t, set.Allows(constants.RoleUnauthenticated))
	assert.Equal(t, "{admin,user}", set.String())
}
