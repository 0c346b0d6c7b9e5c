// Package slip39 is a Go implementation of the SLIP-0039 standard for
// Shamir's Secret Sharing Scheme.
//
// A master secret is encrypted with a passphrase, split into groups, and each
// group secret is split again between the members of the group. Every share
// is encoded as a mnemonic of 10-bit words protected by an RS1024 checksum.
// Recovery needs GroupThreshold groups, each with at least its
// MemberThreshold mnemonics.
//
// The SLIP-0039 document is at
// https://github.com/satoshilabs/slips/blob/master/slip-0039.md
package slip39

import (
	"crypto/rand"
	"encoding/binary"
	"io"
)

const (
	radixBits = 10
	radix     = 1 << radixBits

	idLengthBits                = 15
	idLengthBytes               = 2
	iterationExponentLengthBits = 5
	idExpLengthWords            = 2
	checksumLengthWords         = 3
	digestLengthBytes           = 4
	metadataLengthWords         = idExpLengthWords + 2 + checksumLengthWords

	minStrengthBits        = 128
	minMnemonicLengthWords = metadataLengthWords + (minStrengthBits+radixBits-1)/radixBits

	customizationString = "shamir"

	baseIterationCount = 10000
	roundCount         = 4

	secretIndex = 255
	digestIndex = 254

	maxIdentifier        = 1<<idLengthBits - 1
	maxIterationExponent = 1<<iterationExponentLengthBits - 1

	last10Bits = 1<<10 - 1
)

const (
	// MaxShareCount is the maximum number of shares in a group.
	MaxShareCount = 16
	// MaxGroupCount is the maximum number of groups.
	MaxGroupCount = 16
	// DefaultIterationExponent gives 20000 PBKDF2 iterations in total.
	DefaultIterationExponent = 1
	// MinStrengthBits is the minimum entropy of a master secret.
	MinStrengthBits = minStrengthBits
)

// MemberGroupParameters describes one group: MemberCount shares are
// generated, and MemberThreshold of them are needed to recover the group.
type MemberGroupParameters struct {
	MemberThreshold int
	MemberCount     int
}

// EncryptedMasterSecret is the result of combining mnemonics, before the
// passphrase is applied.
type EncryptedMasterSecret struct {
	Identifier        int
	IterationExponent int
	Value             []byte
}

// Decrypt applies passphrase to recover the master secret.
func (ems EncryptedMasterSecret) Decrypt(passphrase []byte) ([]byte, error) {
	return DecryptMasterSecret(ems.Value, passphrase, ems.IterationExponent, ems.Identifier)
}

// GenerateMnemonics splits masterSecret into mnemonic shares with an empty
// passphrase and the default iteration exponent. The result is indexed by
// group, then by member.
func GenerateMnemonics(
	groupThreshold int,
	groups []MemberGroupParameters,
	masterSecret []byte,
) ([][]string, error) {
	return GenerateMnemonicsWithOptions(
		groupThreshold, groups, masterSecret, nil, DefaultIterationExponent,
	)
}

// GenerateMnemonicsWithPassphrase is GenerateMnemonics with a passphrase.
func GenerateMnemonicsWithPassphrase(
	groupThreshold int,
	groups []MemberGroupParameters,
	masterSecret, passphrase []byte,
) ([][]string, error) {
	return GenerateMnemonicsWithOptions(
		groupThreshold, groups, masterSecret, passphrase, DefaultIterationExponent,
	)
}

// GenerateMnemonicsWithOptions encrypts masterSecret with passphrase and
// splits it into groupThreshold-of-len(groups) groups of mnemonics.
// PBKDF2 runs 10000 << iterationExponent iterations in total.
func GenerateMnemonicsWithOptions(
	groupThreshold int,
	groups []MemberGroupParameters,
	masterSecret, passphrase []byte,
	iterationExponent int,
) ([][]string, error) {
	return generateMnemonics(
		rand.Reader, groupThreshold, groups, masterSecret, passphrase, iterationExponent,
	)
}

// GenerateMnemonicsRandom generates a random master secret of strengthBits
// bits and splits it like GenerateMnemonicsWithOptions.
func GenerateMnemonicsRandom(
	groupThreshold int,
	groups []MemberGroupParameters,
	strengthBits int,
	passphrase []byte,
	iterationExponent int,
) ([][]string, error) {
	return generateMnemonicsRandom(
		rand.Reader, groupThreshold, groups, strengthBits, passphrase, iterationExponent,
	)
}

// SplitEncryptedMasterSecret splits an already encrypted master secret
// into mnemonics carrying identifier and iterationExponent, which must be
// the values it was encrypted with.
func SplitEncryptedMasterSecret(
	groupThreshold int,
	groups []MemberGroupParameters,
	identifier, iterationExponent int,
	encryptedMasterSecret []byte,
) ([][]string, error) {
	if err := validateGroups(groupThreshold, groups); err != nil {
		return nil, err
	}
	if err := validateCipherParams(encryptedMasterSecret, nil, iterationExponent, identifier); err != nil {
		return nil, err
	}
	return splitEMS(rand.Reader, groupThreshold, groups, identifier, iterationExponent, encryptedMasterSecret)
}

// GenerateRandomIdentifier returns a uniformly random 15-bit identifier.
func GenerateRandomIdentifier() (int, error) {
	return randomIdentifier(rand.Reader)
}

// RecoverEncryptedMasterSecret combines mnemonics into the encrypted master
// secret, without applying a passphrase.
func RecoverEncryptedMasterSecret(mnemonics []string) (EncryptedMasterSecret, error) {
	return combineMnemonics(mnemonics)
}

// CombineMnemonics recovers the master secret from mnemonics created with
// an empty passphrase.
func CombineMnemonics(mnemonics []string) ([]byte, error) {
	return CombineMnemonicsWithPassphrase(mnemonics, nil)
}

// CombineMnemonicsWithPassphrase recovers the master secret from mnemonics
// and decrypts it with passphrase.
func CombineMnemonicsWithPassphrase(mnemonics []string, passphrase []byte) ([]byte, error) {
	if err := validatePassphrase(passphrase); err != nil {
		return nil, err
	}
	ems, err := combineMnemonics(mnemonics)
	if err != nil {
		return nil, err
	}
	defer wipe(ems.Value)
	return ems.Decrypt(passphrase)
}

func generateMnemonicsRandom(
	rnd io.Reader,
	groupThreshold int,
	groups []MemberGroupParameters,
	strengthBits int,
	passphrase []byte,
	iterationExponent int,
) ([][]string, error) {
	if strengthBits < minStrengthBits || strengthBits%16 != 0 {
		return nil, configError(ErrStrengthInvalid, "got %d bits", strengthBits)
	}
	masterSecret, err := randomBytes(rnd, strengthBits/8)
	if err != nil {
		return nil, err
	}
	defer wipe(masterSecret)
	return generateMnemonics(rnd, groupThreshold, groups, masterSecret, passphrase, iterationExponent)
}

func generateMnemonics(
	rnd io.Reader,
	groupThreshold int,
	groups []MemberGroupParameters,
	masterSecret, passphrase []byte,
	iterationExponent int,
) ([][]string, error) {
	if err := validateGroups(groupThreshold, groups); err != nil {
		return nil, err
	}
	if err := validateCipherParams(masterSecret, passphrase, iterationExponent, 0); err != nil {
		return nil, err
	}

	identifier, err := randomIdentifier(rnd)
	if err != nil {
		return nil, err
	}
	ems := feistel(masterSecret, passphrase, iterationExponent, identifier, false)
	defer wipe(ems)

	return splitEMS(rnd, groupThreshold, groups, identifier, iterationExponent, ems)
}

func splitEMS(
	rnd io.Reader,
	groupThreshold int,
	groups []MemberGroupParameters,
	identifier, iterationExponent int,
	ems []byte,
) ([][]string, error) {
	groupShares, err := splitSecret(rnd, groupThreshold, len(groups), ems)
	if err != nil {
		return nil, err
	}

	mnemonics := make([][]string, len(groups))
	for i, group := range groups {
		groupShare := groupShares[i]
		memberShares, err := splitSecret(rnd, group.MemberThreshold, group.MemberCount, groupShare.value)
		if err != nil {
			return nil, err
		}
		mnemonics[i] = make([]string, 0, len(memberShares))
		for _, member := range memberShares {
			share := Share{
				Identifier:        identifier,
				IterationExponent: iterationExponent,
				GroupIndex:        groupShare.index,
				GroupThreshold:    groupThreshold,
				GroupCount:        len(groups),
				MemberIndex:       member.index,
				MemberThreshold:   group.MemberThreshold,
				Value:             member.value,
			}
			m, err := share.Mnemonic()
			if err != nil {
				return nil, err
			}
			mnemonics[i] = append(mnemonics[i], m)
		}
	}
	return mnemonics, nil
}

func validateGroups(groupThreshold int, groups []MemberGroupParameters) error {
	if len(groups) == 0 || len(groups) > MaxGroupCount {
		return configError(ErrShareCountInvalid, "got %d groups", len(groups))
	}
	if groupThreshold < 1 || groupThreshold > len(groups) {
		return configError(ErrGroupThresholdInvalid,
			"the requested group threshold (%d) must not exceed the number of groups (%d)",
			groupThreshold, len(groups))
	}
	for i, g := range groups {
		if g.MemberCount < 1 || g.MemberCount > MaxShareCount {
			return configError(ErrShareCountInvalid, "group %d has %d members", i+1, g.MemberCount)
		}
		if g.MemberThreshold < 1 || g.MemberThreshold > g.MemberCount {
			return configError(ErrThresholdInvalid,
				"group %d: the requested member threshold (%d) must not exceed the number of members (%d)",
				i+1, g.MemberThreshold, g.MemberCount)
		}
		if g.MemberThreshold == 1 && g.MemberCount > 1 {
			return configError(ErrSingleMemberMultipleShares,
				"group %d: use 1-of-1 member sharing instead of 1-of-%d", i+1, g.MemberCount)
		}
	}
	return nil
}

func randomBytes(rnd io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rnd, b); err != nil {
		return nil, err
	}
	return b, nil
}

func randomIdentifier(rnd io.Reader) (int, error) {
	b, err := randomBytes(rnd, idLengthBytes)
	if err != nil {
		return 0, err
	}
	return int(binary.BigEndian.Uint16(b)) & maxIdentifier, nil
}
