package slip39

import (
	"math/big"
	"strings"
)

var (
	bigRadix      = big.NewInt(radix)
	bigLast10Bits = big.NewInt(last10Bits)
)

// Share is a single decoded mnemonic.
type Share struct {
	Identifier        int
	IterationExponent int
	GroupIndex        int
	GroupThreshold    int
	GroupCount        int
	MemberIndex       int
	MemberThreshold   int
	Value             []byte
}

// CommonParameters are the fields every share of one master secret
// carries.
type CommonParameters struct {
	Identifier        int
	IterationExponent int
	GroupThreshold    int
	GroupCount        int
}

// GroupParameters are the fields shared by every member of one group.
type GroupParameters struct {
	CommonParameters
	GroupIndex      int
	MemberThreshold int
}

// CommonParameters returns the fields that must match across all shares.
func (s Share) CommonParameters() CommonParameters {
	return CommonParameters{
		Identifier:        s.Identifier,
		IterationExponent: s.IterationExponent,
		GroupThreshold:    s.GroupThreshold,
		GroupCount:        s.GroupCount,
	}
}

// GroupParameters returns the fields that must match within a group.
func (s Share) GroupParameters() GroupParameters {
	return GroupParameters{
		CommonParameters: s.CommonParameters(),
		GroupIndex:       s.GroupIndex,
		MemberThreshold:  s.MemberThreshold,
	}
}

// ParseShare decodes a mnemonic. Words may be given in any case, separated
// by any whitespace, and abbreviated to four or more letters.
func ParseShare(mnemonic string) (Share, error) {
	var share Share

	mnemonicSlice := splitMnemonicWords(mnemonic)
	if len(mnemonicSlice) < minMnemonicLengthWords {
		return share, mnemonicError(ErrMnemonicTooShort,
			"the length of each mnemonic must be at least %d words, got %d",
			minMnemonicLengthWords, len(mnemonicSlice))
	}

	paddingLen := (radixBits * (len(mnemonicSlice) - metadataLengthWords)) % 16
	if paddingLen > 8 {
		return share, mnemonicError(ErrInvalidMnemonicLength, "%d words", len(mnemonicSlice))
	}

	data, err := mnemonicToIndices(mnemonicSlice)
	if err != nil {
		return share, err
	}
	prefix := indicesToMnemonic(data[:idExpLengthWords+2])

	if !rs1024VerifyChecksum(customizationString, data) {
		return share, &MnemonicError{
			Err:       ErrInvalidChecksum,
			Prefix:    prefix,
			WordIndex: rs1024ErrorIndex(customizationString, data),
		}
	}

	idExpInt := intFromWordIndices(data[:idExpLengthWords])
	share.Identifier = idExpInt >> iterationExponentLengthBits
	share.IterationExponent = idExpInt & maxIterationExponent

	shareParamsInt := intFromWordIndices(data[idExpLengthWords : idExpLengthWords+2])
	shareParams := intToIndices(shareParamsInt, 5, 4)
	share.GroupIndex = shareParams[0]
	share.GroupThreshold = shareParams[1] + 1
	share.GroupCount = shareParams[2] + 1
	share.MemberIndex = shareParams[3]
	share.MemberThreshold = shareParams[4] + 1

	if share.GroupCount < share.GroupThreshold {
		e := mnemonicError(ErrGroupThresholdExceedsCount, "")
		e.Prefix = prefix
		return share, e
	}

	valueData := data[idExpLengthWords+2 : len(data)-checksumLengthWords]
	if valueData[0] >= 1<<(radixBits-paddingLen) {
		e := mnemonicError(ErrInvalidPadding, "")
		e.Prefix = prefix
		return share, e
	}
	valueByteCount := bitsToBytes(radixBits*len(valueData) - paddingLen)
	share.Value = bigintFromWordIndices(valueData).FillBytes(make([]byte, valueByteCount))

	return share, nil
}

// Words encodes the share as a list of mnemonic words.
func (s Share) Words() ([]string, error) {
	indices, err := s.indices()
	if err != nil {
		return nil, err
	}
	return indicesToWords(indices), nil
}

// Mnemonic encodes the share as a space-separated mnemonic.
func (s Share) Mnemonic() (string, error) {
	words, err := s.Words()
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

func (s Share) validate() error {
	switch {
	case s.Identifier < 0 || s.Identifier > maxIdentifier:
		return configError(ErrIdentifierInvalid, "got %d", s.Identifier)
	case s.IterationExponent < 0 || s.IterationExponent > maxIterationExponent:
		return configError(ErrIterationExponentInvalid, "got %d", s.IterationExponent)
	case s.GroupCount < 1 || s.GroupCount > MaxGroupCount:
		return configError(ErrShareCountInvalid, "got %d groups", s.GroupCount)
	case s.GroupThreshold < 1 || s.GroupThreshold > s.GroupCount:
		return configError(ErrGroupThresholdInvalid, "got %d of %d", s.GroupThreshold, s.GroupCount)
	case s.GroupIndex < 0 || s.GroupIndex >= s.GroupCount:
		return configError(ErrShareCountInvalid, "group index %d", s.GroupIndex)
	case s.MemberThreshold < 1 || s.MemberThreshold > MaxShareCount:
		return configError(ErrThresholdInvalid, "member threshold %d", s.MemberThreshold)
	case s.MemberIndex < 0 || s.MemberIndex >= MaxShareCount:
		return configError(ErrShareCountInvalid, "member index %d", s.MemberIndex)
	case len(s.Value)*8 < minStrengthBits || len(s.Value)%2 != 0:
		return configError(ErrMasterSecretLengthInvalid, "share value is %d bytes", len(s.Value))
	}
	return nil
}

// indices lays the share out as word indices: identifier and exponent,
// the five 4-bit group and member fields, the value, then the checksum.
func (s Share) indices() ([]int, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	valueWordCount := bitsToWords(len(s.Value) * 8)
	data := make([]int, 0, metadataLengthWords+valueWordCount)

	idExp := s.Identifier<<iterationExponentLengthBits | s.IterationExponent
	data = append(data, intToIndices(idExp, idExpLengthWords, radixBits)...)

	params := s.GroupIndex<<16 |
		(s.GroupThreshold-1)<<12 |
		(s.GroupCount-1)<<8 |
		s.MemberIndex<<4 |
		(s.MemberThreshold - 1)
	data = append(data, intToIndices(params, 2, radixBits)...)

	data = append(data, bigintToIndices(new(big.Int).SetBytes(s.Value), valueWordCount)...)
	data = append(data, rs1024CreateChecksum(customizationString, data)...)
	return data, nil
}

// groupPrefix returns the leading words shared by all members of the
// share's group.
func (s Share) groupPrefix() string {
	idExp := s.Identifier<<iterationExponentLengthBits | s.IterationExponent
	indices := intToIndices(idExp, idExpLengthWords, radixBits)
	indices = append(indices,
		s.GroupIndex<<6|(s.GroupThreshold-1)<<2|(s.GroupCount-1)>>2)
	return indicesToMnemonic(indices)
}

func intFromWordIndices(indices []int) int {
	if len(indices) > 4 {
		panic("intFromWordIndices: indices length must be <= 4")
	}
	value := 0
	for _, index := range indices {
		value = (value << radixBits) + index
	}
	return value
}

func bigintFromWordIndices(indices []int) *big.Int {
	b := new(big.Int)
	for _, index := range indices {
		b.Mul(b, bigRadix)
		b.Or(b, big.NewInt(int64(index)))
	}
	return b
}

func bigintToIndices(value *big.Int, length int) []int {
	v := new(big.Int).Set(value)
	word := new(big.Int)
	indices := make([]int, length)
	for i := length - 1; i >= 0; i-- {
		indices[i] = int(word.And(v, bigLast10Bits).Int64())
		v.Rsh(v, radixBits)
	}
	return indices
}

func intToIndices(value, length, bits int) []int {
	mask := (1 << bits) - 1
	indices := make([]int, 0, length)
	for i := length - 1; i >= 0; i-- {
		indices = append(indices, (value>>(i*bits))&mask)
	}
	return indices
}

func bitsToBytes(n int) int {
	return (n + 8 - 1) / 8
}

func bitsToWords(n int) int {
	return (n + radixBits - 1) / radixBits
}
