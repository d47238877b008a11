package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Job not found.", NotFound("Job").Error())
	assert.Equal(t, "Employer not found.", NotFound("Employer").Error())
	assert.Equal(t, KindNotFound, NotFound("User").Kind)
}

func TestAlreadyExistsMessage(t *testing.T) {
	err := AlreadyExists("Employer")
	assert.Equal(t, "Employer already exists.", err.Error())
	assert.Equal(t, KindConflict, err.Kind)
}

func TestIsMatchesByKindAndMessage(t *testing.T) {
	wrapped := fmt.Errorf("resolve caller: %w", ErrExpiredToken)
	assert.True(t, errors.Is(wrapped, ErrExpiredToken))
	assert.False(t, errors.Is(wrapped, ErrInvalidToken))
	assert.True(t, errors.Is(NotFound("Job"), NotFound("Job")))
	assert.False(t, errors.Is(NotFound("Job"), NotFound("Employer")))
}

func TestIsCredential(t *testing.T) {
	assert.True(t, IsCredential(ErrInvalidHeader))
	assert.True(t, IsCredential(fmt.Errorf("wrap: %w", ErrInvalidToken)))
	assert.True(t, IsCredential(ErrExpiredToken))
	assert.False(t, IsCredential(ErrAuthenticatedUserNotFound))
	assert.False(t, IsCredential(ErrInsufficientPrivileges))
	assert.False(t, IsCredential(errors.New("boom")))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(fmt.Errorf("x: %w", ErrNoFieldsProvided)))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, "credential", KindCredential.String())
}
