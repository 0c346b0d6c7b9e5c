package slip39

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const duckling = "duckling enlarge academic academic agency result length solution fridge kidney coal piece deal husband erode duke ajar critical decision keyboard"

func TestRS1024CreateChecksum(t *testing.T) {
	t.Parallel()

	data, err := mnemonicToIndices(splitMnemonicWords(duckling))
	require.NoError(t, err)

	body := data[:len(data)-checksumLengthWords]
	assert.Equal(t, data[len(data)-checksumLengthWords:], rs1024CreateChecksum(customizationString, body))
	assert.True(t, rs1024VerifyChecksum(customizationString, data))
	assert.False(t, rs1024VerifyChecksum("shamir_extendable", data))
}

func TestRS1024ErrorIndex(t *testing.T) {
	t.Parallel()

	data, err := mnemonicToIndices(splitMnemonicWords(duckling))
	require.NoError(t, err)
	assert.Equal(t, -1, rs1024ErrorIndex(customizationString, data))

	for pos := range data {
		for _, delta := range []int{1, 7, 512, 1023} {
			corrupt := append([]int(nil), data...)
			corrupt[pos] ^= delta
			require.False(t, rs1024VerifyChecksum(customizationString, corrupt))
			assert.Equal(t, pos, rs1024ErrorIndex(customizationString, corrupt),
				"position %d, delta %d", pos, delta)
		}
	}
}

func TestParseShareReportsSuspectWord(t *testing.T) {
	t.Parallel()

	words := splitMnemonicWords(duckling)
	words[9] = "kitchen"

	_, err := ParseShare(strings.Join(words, " "))
	var me *MnemonicError
	require.ErrorAs(t, err, &me)
	assert.ErrorIs(t, err, ErrInvalidChecksum)
	assert.Equal(t, 9, me.WordIndex)
	assert.Equal(t, "duckling enlarge academic academic", me.Prefix)
	assert.Contains(t, err.Error(), "word 10 may be wrong")
}

