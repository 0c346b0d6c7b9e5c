package slip39

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShare(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name     string
		mnemonic string
		want     Share
	}{
		{
			"1of1",
			duckling,
			Share{
				Identifier: 7945, IterationExponent: 0,
				GroupIndex: 0, GroupThreshold: 1, GroupCount: 1,
				MemberIndex: 0, MemberThreshold: 1,
			},
		},
		{
			"3of6 member 5",
			"extra extend academic bishop cricket bundle tofu goat apart victim enlarge program behavior permit course armed jerky faint language modern",
			Share{
				Identifier: 10282, IterationExponent: 0,
				GroupIndex: 0, GroupThreshold: 1, GroupCount: 1,
				MemberIndex: 5, MemberThreshold: 3,
			},
		},
	}

	for _, tc := range tests {
		got, err := ParseShare(tc.mnemonic)
		require.NoError(t, err, tc.name)
		assert.Len(t, got.Value, 16, tc.name)
		got.Value = nil
		assert.Equal(t, tc.want, got, tc.name)
	}
}

func TestParseShareNormalisesInput(t *testing.T) {
	t.Parallel()

	want, err := ParseShare(duckling)
	require.NoError(t, err)

	var abbreviated []string
	for _, w := range splitMnemonicWords(duckling) {
		abbreviated = append(abbreviated, strings.ToUpper(w[:4]))
	}
	got, err := ParseShare("  " + strings.Join(abbreviated, " \t\n ") + "\n")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestShareEncodeDecode(t *testing.T) {
	t.Parallel()

	var tests = []Share{
		{Identifier: 0, IterationExponent: 0, GroupIndex: 0, GroupThreshold: 1, GroupCount: 1, MemberIndex: 0, MemberThreshold: 1, Value: make([]byte, 16)},
		{Identifier: maxIdentifier, IterationExponent: maxIterationExponent, GroupIndex: 15, GroupThreshold: 16, GroupCount: 16, MemberIndex: 15, MemberThreshold: 16, Value: bytes.Repeat([]byte{0xff}, 32)},
		{Identifier: 1234, IterationExponent: 3, GroupIndex: 2, GroupThreshold: 2, GroupCount: 5, MemberIndex: 7, MemberThreshold: 9, Value: bytes.Repeat([]byte{0x80, 0x01}, 9)},
	}

	for _, s := range tests {
		words, err := s.Words()
		require.NoError(t, err)
		assert.Len(t, words, metadataLengthWords+bitsToWords(len(s.Value)*8))

		m, err := s.Mnemonic()
		require.NoError(t, err)
		assert.Equal(t, strings.Join(words, " "), m)

		got, err := ParseShare(m)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestShareEncodeInvalid(t *testing.T) {
	t.Parallel()

	valid := Share{GroupThreshold: 1, GroupCount: 1, MemberThreshold: 1, Value: make([]byte, 16)}
	var tests = []struct {
		name   string
		mutate func(*Share)
		want   error
	}{
		{"identifier", func(s *Share) { s.Identifier = 1 << 15 }, ErrIdentifierInvalid},
		{"exponent", func(s *Share) { s.IterationExponent = 32 }, ErrIterationExponentInvalid},
		{"group count", func(s *Share) { s.GroupCount = 17 }, ErrShareCountInvalid},
		{"group threshold", func(s *Share) { s.GroupThreshold = 2 }, ErrGroupThresholdInvalid},
		{"member index", func(s *Share) { s.MemberIndex = 16 }, ErrShareCountInvalid},
		{"member threshold", func(s *Share) { s.MemberThreshold = 0 }, ErrThresholdInvalid},
		{"value", func(s *Share) { s.Value = make([]byte, 17) }, ErrMasterSecretLengthInvalid},
	}

	for _, tc := range tests {
		s := valid
		tc.mutate(&s)
		_, err := s.Mnemonic()
		assert.ErrorIs(t, err, tc.want, tc.name)
	}
}

func TestShareParameters(t *testing.T) {
	t.Parallel()

	s, err := ParseShare("extra extend academic arcade born dive legal hush gross briefing talent drug much home firefly toxic analysis idea umbrella slice")
	require.NoError(t, err)

	common := CommonParameters{Identifier: 10282, IterationExponent: 0, GroupThreshold: 1, GroupCount: 1}
	assert.Equal(t, common, s.CommonParameters())
	assert.Equal(t, GroupParameters{CommonParameters: common, GroupIndex: 0, MemberThreshold: 3}, s.GroupParameters())
	assert.Equal(t, "extra extend academic", s.groupPrefix())
}

func TestParseShareLeadingZeroValue(t *testing.T) {
	t.Parallel()

	value, _ := hex.DecodeString("0000000000000000000000000000ff01")
	s := Share{GroupThreshold: 1, GroupCount: 1, MemberThreshold: 1, Value: value}
	m, err := s.Mnemonic()
	require.NoError(t, err)

	got, err := ParseShare(m)
	require.NoError(t, err)
	assert.Equal(t, value, got.Value)
}

func TestParseShareErrors(t *testing.T) {
	t.Parallel()

	words := splitMnemonicWords(duckling)
	var tests = []struct {
		name     string
		mnemonic string
		want     error
	}{
		{"empty", "", ErrMnemonicTooShort},
		{"too short", strings.Join(words[:19], " "), ErrMnemonicTooShort},
		{"bad length", strings.Join(append(append([]string(nil), words...), "academic"), " "), ErrInvalidMnemonicLength},
		{"bad word", strings.Replace(duckling, "kidney", "kidneys", 1), ErrInvalidWord},
		{"bad checksum", strings.Replace(duckling, "keyboard", "kidney", 1), ErrInvalidChecksum},
	}

	for _, tc := range tests {
		_, err := ParseShare(tc.mnemonic)
		assert.ErrorIs(t, err, tc.want, tc.name)
		assert.ErrorIs(t, err, ErrInvalidMnemonic, tc.name)
	}
}
