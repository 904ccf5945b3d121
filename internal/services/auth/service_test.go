package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAdminAcceptsCorrectPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	service := New(Config{AdminPasswordHash: hash})
	assert.NoError(t, service.VerifyAdmin("hunter2"))
}

func TestVerifyAdminRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	service := New(Config{AdminPasswordHash: hash})
	assert.ErrorIs(t, service.VerifyAdmin("hunter3"), ErrInvalidCredentials)
	assert.ErrorIs(t, service.VerifyAdmin(""), ErrInvalidCredentials)
}

func TestVerifyAdminDisabledWithoutHash(t *testing.T) {
	service := New(Config{})
	assert.ErrorIs(t, service.VerifyAdmin("anything"), ErrAdminDisabled)
}

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	a, err := HashPassword("hunter2")
	require.NoError(t, err)
	b, err := HashPassword("hunter2")
	require.NoError(t, err)

	// bcrypt salts every hash
	assert.NotEqual(t, a, b)
}
