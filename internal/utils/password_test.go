package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("op-secret-1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "op-secret-1"))
	assert.False(t, VerifyPassword(hash, "op-secret-2"))
}

func TestHashPasswordClampsBadCost(t *testing.T) {
	// A cost of 0 is below bcrypt's minimum; hashing must still succeed.
	hash, err := HashPassword("op-secret-1", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
