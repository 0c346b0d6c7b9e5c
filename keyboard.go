package slip39

import (
	"strconv"
	"strings"
)

// KeyboardFullMask has a bit set for each of the nine keyboard buttons.
const KeyboardFullMask = 0x1ff

// keyboardButtons is the letter layout of the nine-button keyboard used to
// enter words on devices without a full keyboard. Button n carries the
// letters at keyboardButtons[n-1].
var keyboardButtons = [9]string{
	"ab", "cd", "ef", "ghij", "klm", "nopq", "rs", "tuv", "wxyz",
}

// wordButtonSequences holds the four-press sequence of every word, in
// wordlist order. Each sequence is unique.
var wordButtonSequences [radix]string

func init() {
	for i, w := range wordlist {
		wordButtonSequences[i] = buttonSequence(w)
	}
}

func buttonForLetter(c byte) (int, bool) {
	for i, letters := range keyboardButtons {
		if strings.IndexByte(letters, c) >= 0 {
			return i + 1, true
		}
	}
	return 0, false
}

func buttonSequence(word string) string {
	var sb strings.Builder
	for i := 0; i < len(word) && i < uniquePrefixLength; i++ {
		button, ok := buttonForLetter(word[i])
		if !ok {
			return ""
		}
		sb.WriteByte('0' + byte(button))
	}
	return sb.String()
}

// ButtonSequence returns the button presses (1-9) that identify word, e.g.
// 1212 for "academic". It returns 0 if word is not in the wordlist.
func ButtonSequence(word string) int {
	index, err := WordIndex(word)
	if err != nil {
		return 0
	}
	seq, _ := strconv.Atoi(wordButtonSequences[index])
	return seq
}

// ButtonSequenceToWord returns the first word, in wordlist order, whose
// button sequence starts with prefix. It returns "" for an empty prefix or
// when no word matches.
func ButtonSequenceToWord(prefix string) string {
	if prefix == "" {
		return ""
	}
	for i, seq := range wordButtonSequences {
		if strings.HasPrefix(seq, prefix) {
			return wordlist[i]
		}
	}
	return ""
}

// CompletionMask returns a 9-bit mask of the buttons that extend prefix
// towards at least one word; bit n-1 stands for button n. An empty prefix
// allows every button.
func CompletionMask(prefix string) int {
	if prefix == "" {
		return KeyboardFullMask
	}
	if len(prefix) >= uniquePrefixLength {
		return 0
	}
	mask := 0
	for _, seq := range wordButtonSequences {
		if strings.HasPrefix(seq, prefix) {
			mask |= 1 << (seq[len(prefix)] - '1')
		}
	}
	return mask
}

// ButtonSequenceCandidates returns every word whose button sequence starts
// with prefix, in wordlist order.
func ButtonSequenceCandidates(prefix string) []string {
	var words []string
	for i, seq := range wordButtonSequences {
		if strings.HasPrefix(seq, prefix) {
			words = append(words, wordlist[i])
		}
	}
	return words
}
