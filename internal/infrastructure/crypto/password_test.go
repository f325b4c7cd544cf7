package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func fastArgon() *Argon2idHasher {
	a := NewArgon2idHasher()
	a.Memory = 1024
	a.Iterations = 1
	a.Parallelism = 1
	return a
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	ok, err := h.Verify(hash, "password123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_InvalidCostFallsBackToDefault(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).Cost)
	assert.Equal(t, 10, NewBcryptHasher(10).Cost)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).Verify("short", "password")
	assert.Error(t, err)
}

func TestArgon2idHasher(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "ascii", password: "testPassword123"},
		{name: "empty", password: ""},
		{name: "long", password: strings.Repeat("a", 128)},
		{name: "unicode", password: "contraseña🔐"},
		{name: "null byte", password: "pass\x00word"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := fastArgon()

			hash, err := a.Hash(tt.password)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"), hash)

			ok, err := a.Verify(hash, tt.password)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = a.Verify(hash, tt.password+"x")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestArgon2idHasher_SaltsDiffer(t *testing.T) {
	a := fastArgon()
	h1, err := a.Hash("same")
	require.NoError(t, err)
	h2, err := a.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestArgon2idHasher_InvalidEncodings(t *testing.T) {
	a := fastArgon()
	for _, encoded := range []string{
		"",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!$a2V5",
	} {
		_, err := a.Verify(encoded, "password")
		assert.Error(t, err, encoded)
	}
}

func TestHasher_VerifiesEitherAlgorithm(t *testing.T) {
	h, err := NewHasher(AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)
	h.argon = fastArgon()

	bcryptHash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(bcryptHash, "$2a$"))

	argonHash, err := h.argon.Hash("password123")
	require.NoError(t, err)

	for _, hash := range []string{bcryptHash, argonHash} {
		ok, err := h.Verify(hash, "password123")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestNewHasher_Algorithms(t *testing.T) {
	h, err := NewHasher("ARGON2ID", 10)
	require.NoError(t, err)
	assert.IsType(t, &Argon2idHasher{}, h.primary)

	_, err = NewHasher("md5", 10)
	assert.Error(t, err)
}
