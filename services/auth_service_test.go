package services

import (
	"context"
	"job-board-api/apperrors"
	"job-board-api/constants"
	"job-board-api/dto"
	"job-board-api/repositories"
	"job-board-api/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (IAuthService, *JWTService, testutil.Fixture) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	fixture := testutil.Seed(t, db)
	tokens := NewJWTService("secret", 30*time.Minute)
	auth := NewAuthService(repositories.NewUserRepository(db), repositories.NewTokenRepository(db), tokens, NewBcryptHasher(bcrypt.MinCost))
	return auth, tokens, fixture
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	for _, header := range []string{"abc.def", "Basic abc", "Bearer ", "bearer abc"} {
		_, err := ExtractBearerToken(header)
		assert.ErrorIs(t, err, apperrors.ErrInvalidHeader, header)
	}
}

func TestResolveCaller(t *testing.T) {
	auth, tokens, fixture := newAuthService(t)
	ctx := context.Background()

	caller, err := auth.ResolveCaller(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, caller)

	token, err := tokens.Sign(fixture.Admin.Email)
	require.NoError(t, err)
	caller, err = auth.ResolveCaller(ctx, constants.BearerPrefix+token)
	require.NoError(t, err)
	assert.Equal(t, fixture.Admin.ID, caller.ID)
	assert.Equal(t, constants.RoleAdmin, caller.Role)

	_, err = auth.ResolveCaller(ctx, "Token "+token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidHeader)

	_, err = auth.ResolveCaller(ctx, constants.BearerPrefix+token+"x")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	ghost, err := tokens.Sign("ghost@example.com")
	require.NoError(t, err)
	_, err = auth.ResolveCaller(ctx, constants.BearerPrefix+ghost)
	assert.ErrorIs(t, err, apperrors.ErrAuthenticatedUserNotFound)
	assert.False(t, apperrors.IsCredential(err))
}

func TestLogin(t *testing.T) {
	auth, tokens, fixture := newAuthService(t)
	ctx := context.Background()

	token, err := auth.Login(ctx, dto.LoginInput{Email: fixture.Alice.Email, Password: testutil.FixturePassword})
	require.NoError(t, err)
	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, fixture.Alice.Email, claims.Email)
	assert.True(t, claims.ExpiresAt.Time.Equal(claims.IssuedAt.Time.Add(30*time.Minute)))

	_, err = auth.Login(ctx, dto.LoginInput{Email: fixture.Alice.Email, Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	_, err = auth.Login(ctx, dto.LoginInput{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, apperrors.NotFound(constants.ResourceUser))
}

func TestLogoutBlacklistsToken(t *testing.T) {
	auth, tokens, fixture := newAuthService(t)
	ctx := context.Background()

	token, err := tokens.Sign(fixture.Bob.Email)
	require.NoError(t, err)
	header := constants.BearerPrefix + token

	require.NoError(t, auth.Logout(ctx, header))

	_, err = auth.ResolveCaller(ctx, header)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	assert.ErrorIs(t, auth.Logout(ctx, "garbage"), apperrors.ErrInvalidHeader)
}
