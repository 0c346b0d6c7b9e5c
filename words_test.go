package slip39

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordIndex(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		word string
		want int
	}{
		{"academic", 0},
		{"acid", 1},
		{"zero", radix - 1},
		{"ZERO", radix - 1},
		{" Acid ", 1},
		{"duck", 248},
		{"ducklin", 248},
		{"acad", 0},
	}

	for _, tc := range tests {
		got, err := WordIndex(tc.word)
		require.NoError(t, err, tc.word)
		assert.Equal(t, tc.want, got, tc.word)
	}
}

func TestWordIndexInvalid(t *testing.T) {
	t.Parallel()

	for _, word := range []string{"", "aca", "academics", "qwerty", "duckz"} {
		_, err := WordIndex(word)
		assert.ErrorIs(t, err, ErrInvalidWord, word)
		assert.ErrorIs(t, err, ErrInvalidMnemonic, word)
	}
}

func TestWordlistRoundTrip(t *testing.T) {
	t.Parallel()

	for i := range radix {
		w, ok := Word(i)
		require.True(t, ok)
		got, err := WordIndex(w)
		require.NoError(t, err)
		require.Equal(t, i, got)
	}
	_, ok := Word(radix)
	assert.False(t, ok)
	_, ok = Word(-1)
	assert.False(t, ok)
}

func TestWordsWithPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"academic", "acid", "acne", "acquire", "acrobat", "activity", "actress"},
		WordsWithPrefix("ac"))
	assert.Equal(t, []string{"zero"}, WordsWithPrefix("Ze"))
	assert.Empty(t, WordsWithPrefix("xx"))
	assert.Len(t, WordsWithPrefix(""), radix)
}

func TestMnemonicToIndicesWordPosition(t *testing.T) {
	t.Parallel()

	words := splitMnemonicWords(duckling)
	words[4] = "notaword"
	_, err := mnemonicToIndices(words)
	var me *MnemonicError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 4, me.WordIndex)
	assert.ErrorIs(t, err, ErrInvalidWord)
}
