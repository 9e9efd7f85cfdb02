package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHasher() *Argon2Hasher {
	// Cheap parameters; cost is not under test.
	return NewArgon2Hasher(Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
}

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("trail-secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	assert.True(t, h.Verify("trail-secret", encoded))
	assert.False(t, h.Verify("trail-secret ", encoded))
	assert.False(t, h.Verify("wrong", encoded))
}

func TestArgon2Hasher_SaltedHashesDiffer(t *testing.T) {
	h := testHasher()

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestArgon2Hasher_VerifyUsesEmbeddedParams(t *testing.T) {
	encoded, err := testHasher().Hash("portable")
	require.NoError(t, err)

	// A hasher configured with different costs still verifies hashes
	// produced under the old parameters.
	other := NewArgon2Hasher(Params{Memory: 16 * 1024, Iterations: 2, Parallelism: 2, SaltLength: 16, KeyLength: 32})
	assert.True(t, other.Verify("portable", encoded))
}

func TestArgon2Hasher_RejectsMalformedEncodings(t *testing.T) {
	h := testHasher()

	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=8192,t=1,p=1$notbase64!$xx",
		"$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$aGFzaA",
	} {
		assert.False(t, h.Verify("anything", encoded), encoded)
	}
}
