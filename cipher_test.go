package slip39

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xpbkdf2 "golang.org/x/crypto/pbkdf2"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestDecryptMasterSecret(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name       string
		ems        string
		passphrase string
		exponent   int
		identifier int
		want       string
	}{
		{"1of1 with passphrase", "11bc609d21747c49ba78c0701293e417", "TREZOR", 0, 7945, "bb54aac4b89dc868ba37d9cc21b2cece"},
		{"3of6 empty passphrase", "491b795b80fc21ccdf466c0fbc98c8fc", "", 0, 10282, "4ba7d31410fa0996f02ffb7cc3b992a1"},
	}

	for _, tc := range tests {
		got, err := DecryptMasterSecret(mustHex(t, tc.ems), []byte(tc.passphrase), tc.exponent, tc.identifier)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, hex.EncodeToString(got), tc.name)

		back, err := EncryptMasterSecret(got, []byte(tc.passphrase), tc.exponent, tc.identifier)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.ems, hex.EncodeToString(back), tc.name)
	}
}

func TestEncryptMasterSecretRoundTrip(t *testing.T) {
	t.Parallel()

	ms := mustHex(t, "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	for _, e := range []int{0, 1, 2} {
		ems, err := EncryptMasterSecret(ms, []byte("pass phrase"), e, 12345)
		require.NoError(t, err)
		assert.Len(t, ems, len(ms))
		assert.NotEqual(t, ms, ems)

		got, err := DecryptMasterSecret(ems, []byte("pass phrase"), e, 12345)
		require.NoError(t, err)
		assert.Equal(t, ms, got)

		wrong, err := DecryptMasterSecret(ems, []byte("pass phrase!"), e, 12345)
		require.NoError(t, err)
		assert.NotEqual(t, ms, wrong)
	}
}

func TestRoundFunctionMatchesReferencePBKDF2(t *testing.T) {
	t.Parallel()

	salt := getSalt(7945)
	r := mustHex(t, "0123456789abcdef")
	for i := range roundCount {
		for _, e := range []int{0, 1, 3} {
			got := roundFunction(i, []byte("TREZOR"), e, salt, r)

			password := append([]byte{byte(i)}, "TREZOR"...)
			want := xpbkdf2.Key(password, append(append([]byte(nil), salt...), r...),
				(baseIterationCount<<e)/roundCount, len(r), sha256.New)
			assert.Equal(t, want, got, "round %d exponent %d", i, e)
		}
	}
}

func TestCipherInvalidParams(t *testing.T) {
	t.Parallel()

	ms := make([]byte, 16)
	var tests = []struct {
		name       string
		secret     []byte
		passphrase []byte
		exponent   int
		identifier int
		want       error
	}{
		{"short", ms[:8], nil, 0, 0, ErrMasterSecretLengthInvalid},
		{"odd", make([]byte, 17), nil, 0, 0, ErrMasterSecretLengthInvalid},
		{"passphrase", ms, []byte{0x7f}, 0, 0, ErrPassphraseInvalid},
		{"negative exponent", ms, nil, -1, 0, ErrIterationExponentInvalid},
		{"exponent", ms, nil, 32, 0, ErrIterationExponentInvalid},
		{"identifier", ms, nil, 0, 1 << 15, ErrIdentifierInvalid},
	}

	for _, tc := range tests {
		_, err := EncryptMasterSecret(tc.secret, tc.passphrase, tc.exponent, tc.identifier)
		assert.ErrorIs(t, err, tc.want, tc.name)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, tc.name)
		_, err = DecryptMasterSecret(tc.secret, tc.passphrase, tc.exponent, tc.identifier)
		assert.ErrorIs(t, err, tc.want, tc.name)
	}
}

func TestWipe(t *testing.T) {
	t.Parallel()

	b := []byte{1, 2, 3}
	wipe(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
	wipe(nil)
}
