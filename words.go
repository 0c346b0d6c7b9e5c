package slip39

import (
	"errors"
	"sort"
	"strings"
)

// uniquePrefixLength is the number of leading letters that identify a word.
const uniquePrefixLength = 4

var wordmap map[string]int

func init() {
	wordmap = make(map[string]int, len(wordlist))
	for i, w := range wordlist {
		wordmap[w] = i
	}
	if len(wordmap) != radix {
		panic("slip39 wordlist lookup table is wrong size!")
	}
}

// WordIndex returns the index of word in the wordlist. Matching is
// case-insensitive and accepts any prefix of at least four letters, since
// the first four letters of every word are unique.
func WordIndex(word string) (int, error) {
	w := strings.ToLower(strings.TrimSpace(word))
	if index, found := wordmap[w]; found {
		return index, nil
	}
	if len(w) >= uniquePrefixLength {
		i := sort.SearchStrings(wordlist[:], w)
		if i < radix && strings.HasPrefix(wordlist[i], w) {
			return i, nil
		}
	}
	return -1, mnemonicError(ErrInvalidWord, "%q", word)
}

// Word returns the wordlist entry for a 10-bit index.
func Word(index int) (string, bool) {
	if index < 0 || index >= radix {
		return "", false
	}
	return wordlist[index], true
}

// WordsWithPrefix returns, in order, every word starting with prefix.
func WordsWithPrefix(prefix string) []string {
	p := strings.ToLower(strings.TrimSpace(prefix))
	start := sort.SearchStrings(wordlist[:], p)
	end := start
	for end < radix && strings.HasPrefix(wordlist[end], p) {
		end++
	}
	return append([]string(nil), wordlist[start:end]...)
}

func splitMnemonicWords(mnemonic string) []string {
	return strings.Fields(mnemonic)
}

func mnemonicToIndices(words []string) ([]int, error) {
	var data = make([]int, len(words))
	for i, v := range words {
		index, err := wordIndexAt(v, i)
		if err != nil {
			return nil, err
		}
		data[i] = index
	}
	return data, nil
}

func wordIndexAt(word string, position int) (int, error) {
	index, err := WordIndex(word)
	var me *MnemonicError
	if errors.As(err, &me) {
		me.WordIndex = position
	}
	return index, err
}

func indicesToWords(indices []int) []string {
	words := make([]string, len(indices))
	for i, index := range indices {
		words[i] = wordlist[index]
	}
	return words
}

func indicesToMnemonic(indices []int) string {
	return strings.Join(indicesToWords(indices), " ")
}
