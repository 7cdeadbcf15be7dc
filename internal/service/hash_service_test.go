package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashService_HashAndVerify(t *testing.T) {
	svc := NewPasswordHashService()

	password := "password123"
	hash, err := svc.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Format check
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v="), "hash should start with $argon2id$v=")
	assert.NotContains(t, hash, password)

	match, err := svc.Verify(password, hash)
	require.NoError(t, err)
	assert.True(t, match, "correct password should verify")
}

func TestPasswordHashService_VerifyWrongPassword(t *testing.T) {
	svc := NewPasswordHashService()

	hash, err := svc.Hash("correct-password")
	require.NoError(t, err)

	match, err := svc.Verify("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, match, "wrong password should not verify")
}

func TestPasswordHashService_UniqueSalts(t *testing.T) {
	svc := NewPasswordHashService()

	hash1, err := svc.Hash("same-password")
	require.NoError(t, err)

	hash2, err := svc.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2, "same password should produce different hashes (different salts)")
}

func TestPasswordHashService_HashContainsParams(t *testing.T) {
	svc := NewPasswordHashService()

	hash, err := svc.Hash("test")
	require.NoError(t, err)

	assert.Contains(t, hash, "m=65536,t=1,p=4", "hash should contain Argon2id params")
}

func TestPasswordHashService_VerifyBcrypt(t *testing.T) {
	svc := NewPasswordHashService()

	legacy, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	match, err := svc.Verify("password123", string(legacy))
	require.NoError(t, err)
	assert.True(t, match)

	match, err = svc.Verify("password124", string(legacy))
	require.NoError(t, err)
	assert.False(t, match)
}

func TestPasswordHashService_VerifyMalformed(t *testing.T) {
	svc := NewPasswordHashService()

	tests := []struct {
		name string
		hash string
	}{
		{"garbage", "not-a-valid-hash"},
		{"wrong algorithm", "$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"bad version", "$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$m=x,t=1,p=4$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{"empty hash", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$"},
		{"truncated bcrypt", "$2a$10$short"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			match, err := svc.Verify("password", tc.hash)
			assert.Error(t, err)
			assert.False(t, match)
		})
	}
}
