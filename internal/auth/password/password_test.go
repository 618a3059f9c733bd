package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash([]byte("secret1"))
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, h.Compare(hash, []byte("secret1")))
	assert.ErrorIs(t, h.Compare(hash, []byte("secret2")), ErrMismatch)
}

func TestCompare_MalformedHash(t *testing.T) {
	err := NewHasher(bcrypt.MinCost).Compare("not-a-hash", []byte("x"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}

func TestNewHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	assert.Equal(t, bcrypt.MinCost, NewHasher(1).cost)
	assert.Equal(t, bcrypt.MaxCost, NewHasher(99).cost)
}

func TestDummyCompare_DoesNotPanic(t *testing.T) {
	NewHasher(bcrypt.MinCost).DummyCompare([]byte("anything"))
}
