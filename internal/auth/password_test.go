package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := hashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=4$"))
	assert.NotContains(t, hash, "correct horse")
	assert.True(t, verifyPassword(hash, "correct horse"))
	assert.False(t, verifyPassword(hash, "correct horse "))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := hashPassword("same")
	require.NoError(t, err)
	second, err := hashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_Malformed(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=3,p=4$onlysalt",
		"$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA",
	}

	for _, encoded := range cases {
		assert.False(t, verifyPassword(encoded, "anything"), "hash %q", encoded)
	}
}
