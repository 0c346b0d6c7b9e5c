package slip39

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSecretThresholdOne(t *testing.T) {
	t.Parallel()

	secret := bytes.Repeat([]byte{7}, 16)
	shares, err := splitSecret(rand.Reader, 1, 1, secret)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, 0, shares[0].index)
	assert.Equal(t, secret, shares[0].value)

	shares, err = splitSecret(rand.Reader, 1, 3, secret)
	require.NoError(t, err)
	require.Len(t, shares, 3)
	for i, s := range shares {
		assert.Equal(t, i, s.index)
		assert.Equal(t, secret, s.value)
	}
}

func TestSplitRecoverSecret(t *testing.T) {
	t.Parallel()

	secret := []byte("0123456789abcdef0123")
	for threshold := 2; threshold <= 5; threshold++ {
		shares, err := splitSecret(rand.Reader, threshold, 6, secret)
		require.NoError(t, err)
		require.Len(t, shares, 6)

		for start := 0; start+threshold <= len(shares); start++ {
			got, err := recoverSecret(threshold, shares[start:start+threshold])
			require.NoError(t, err)
			assert.Equal(t, secret, got, "threshold %d start %d", threshold, start)
		}

		// Too few shares interpolate to a different polynomial.
		_, err = recoverSecret(threshold, shares[:threshold-1])
		assert.ErrorIs(t, err, ErrInvalidDigest)
	}
}

func TestSplitSecretDigestShare(t *testing.T) {
	t.Parallel()

	secret := bytes.Repeat([]byte{0x42}, 16)
	shares, err := splitSecret(rand.Reader, 3, 3, secret)
	require.NoError(t, err)

	digestShare, err := interpolate(shares, digestIndex)
	require.NoError(t, err)
	assert.Equal(t, createDigest(digestShare[digestLengthBytes:], secret), digestShare[:digestLengthBytes])

	atSecret, err := interpolate(shares, secretIndex)
	require.NoError(t, err)
	assert.Equal(t, secret, atSecret)
}

func TestSplitSecretInvalid(t *testing.T) {
	t.Parallel()

	secret := make([]byte, 16)
	_, err := splitSecret(rand.Reader, 0, 3, secret)
	assert.ErrorIs(t, err, ErrThresholdInvalid)
	_, err = splitSecret(rand.Reader, 4, 3, secret)
	assert.ErrorIs(t, err, ErrThresholdInvalid)
	_, err = splitSecret(rand.Reader, 2, 17, secret)
	assert.ErrorIs(t, err, ErrShareCountInvalid)
}

func TestInterpolate(t *testing.T) {
	t.Parallel()

	// f(x) = 5 + 3x over GF(256): f(1) = 6, f(2) = 3, f(3) = 0.
	shares := []rawShare{
		{index: 1, value: []byte{5 ^ 3}},
		{index: 2, value: []byte{5 ^ 6}},
	}
	for x, want := range map[int]byte{0: 5, 1: 6, 2: 3, 3: 5 ^ 5} {
		got, err := interpolate(shares, x)
		require.NoError(t, err)
		assert.Equal(t, []byte{want}, got, "x=%d", x)
	}

	_, err := interpolate([]rawShare{{1, []byte{1}}, {2, []byte{1, 2}}}, 0)
	assert.ErrorIs(t, err, ErrMismatchedShareLength)

	_, err = interpolate([]rawShare{{1, []byte{1}}, {1, []byte{2}}}, 0)
	assert.ErrorIs(t, err, ErrDuplicateMemberIndex)
}

func TestGFMultiply(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		a, b, want byte
	}{
		{0x57, 0x83, 0xc1},
		{0x57, 0x13, 0xfe},
		{0x80, 0x02, 0x1b},
		{0x53, 0xca, 0x01},
		{0x00, 0x9f, 0x00},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, gfMultiply(tc.a, tc.b), "%#x * %#x", tc.a, tc.b)
	}
}

func TestGFTables(t *testing.T) {
	t.Parallel()

	for a := 1; a < 256; a++ {
		assert.Equal(t, byte(a), gfExp[gfLog[a]], "a=%#x", a)
	}
	assert.Equal(t, 0x19, gfLog[2])
	assert.Equal(t, 0x01, gfLog[3])
}

func TestInterpolateReducesModuloAESPolynomial(t *testing.T) {
	t.Parallel()

	// f(x) = 0x80 * x, so f(2) overflows and reduces to 0x1b.
	shares := []rawShare{
		{index: 0, value: []byte{0x00}},
		{index: 1, value: []byte{0x80}},
	}
	got, err := interpolate(shares, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1b}, got)

	// f(x) = 0x57 + 0x83 * x evaluated at the secret and digest indices.
	shares = []rawShare{
		{index: 0, value: []byte{0x57}},
		{index: 1, value: []byte{0x57 ^ 0x83}},
	}
	for _, x := range []int{2, 17, digestIndex, secretIndex} {
		got, err := interpolate(shares, x)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x57 ^ gfMultiply(0x83, byte(x))}, got, "x=%d", x)
	}
}
