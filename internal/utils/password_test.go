package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	_, err := HashPassword("short")
	assert.Error(t, err, "passwords under the minimum length are rejected")

	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "correct horse battery"))
	assert.False(t, CheckPassword(hash, "wrong horse battery"))
	assert.False(t, CheckPassword("not-a-hash", "correct horse battery"))
}

func TestEqualConstantTime(t *testing.T) {
	assert.True(t, EqualConstantTime("admin", "admin"))
	assert.False(t, EqualConstantTime("admin", "Admin"))
	assert.False(t, EqualConstantTime("admin", "admin "))
	assert.True(t, EqualConstantTime("", ""))
}
