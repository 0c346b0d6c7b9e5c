package slip39

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"io"
)

// rawShare is a point (index, value) on a polynomial over GF(256), applied
// bytewise to value.
type rawShare struct {
	index int
	value []byte
}

// GF(256) with the AES polynomial x^8 + x^4 + x^3 + x + 1 and generator 3.
var (
	gfExp [255]byte
	gfLog [256]int
)

func init() {
	x := byte(1)
	for i := range 255 {
		gfExp[i] = x
		gfLog[x] = i
		x = gfMultiply(x, 0x03)
	}
}

// gfMultiply multiplies bitwise; used to build the tables.
func gfMultiply(a, b byte) byte {
	var p byte
	for range 8 {
		if b&1 != 0 {
			p ^= a
		}
		high := a & 0x80
		a <<= 1
		if high != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

// interpolate returns the value at x of the polynomial through shares,
// evaluated bytewise by Lagrange interpolation.
func interpolate(shares []rawShare, x int) ([]byte, error) {
	if len(shares) == 0 {
		return nil, mnemonicError(ErrInsufficientShares, "nothing to interpolate")
	}
	length := len(shares[0].value)
	seen := make(map[int]bool, len(shares))
	for _, s := range shares {
		if len(s.value) != length {
			return nil, mnemonicError(ErrMismatchedShareLength, "")
		}
		if seen[s.index] {
			return nil, mnemonicError(ErrDuplicateMemberIndex, "index %d", s.index)
		}
		seen[s.index] = true
	}
	for _, s := range shares {
		if s.index == x {
			return append([]byte(nil), s.value...), nil
		}
	}

	// Subtraction is XOR, so x - index is x ^ index and never zero here.
	logProd := 0
	for _, s := range shares {
		logProd += gfLog[s.index^x]
	}

	result := make([]byte, length)
	for _, s := range shares {
		logBasis := logProd - gfLog[s.index^x]
		for _, o := range shares {
			if o.index != s.index {
				logBasis -= gfLog[s.index^o.index]
			}
		}
		logBasis = (logBasis%255 + 255) % 255

		for i, v := range s.value {
			if v != 0 {
				result[i] ^= gfExp[(gfLog[v]+logBasis)%255]
			}
		}
	}
	return result, nil
}

// splitSecret splits secret into shareCount shares, any threshold of which
// reconstruct it. Randomness is read from rnd.
func splitSecret(rnd io.Reader, threshold, shareCount int, secret []byte) ([]rawShare, error) {
	if threshold < 1 {
		return nil, configError(ErrThresholdInvalid, "threshold %d", threshold)
	}
	if threshold > shareCount {
		return nil, configError(ErrThresholdInvalid,
			"threshold %d exceeds the number of shares %d", threshold, shareCount)
	}
	if shareCount > MaxShareCount {
		return nil, configError(ErrShareCountInvalid, "got %d shares", shareCount)
	}

	if threshold == 1 {
		shares := make([]rawShare, shareCount)
		for i := range shares {
			shares[i] = rawShare{index: i, value: append([]byte(nil), secret...)}
		}
		return shares, nil
	}

	shares := make([]rawShare, 0, shareCount)
	for i := range threshold - 2 {
		value, err := randomBytes(rnd, len(secret))
		if err != nil {
			return nil, err
		}
		shares = append(shares, rawShare{index: i, value: value})
	}

	randomPart, err := randomBytes(rnd, len(secret)-digestLengthBytes)
	if err != nil {
		return nil, err
	}
	digest := createDigest(randomPart, secret)

	base := append([]rawShare(nil), shares...)
	base = append(base,
		rawShare{index: digestIndex, value: append(digest, randomPart...)},
		rawShare{index: secretIndex, value: secret},
	)

	for i := threshold - 2; i < shareCount; i++ {
		value, err := interpolate(base, i)
		if err != nil {
			return nil, err
		}
		shares = append(shares, rawShare{index: i, value: value})
	}
	return shares, nil
}

// recoverSecret reverses splitSecret and checks the embedded digest.
func recoverSecret(threshold int, shares []rawShare) ([]byte, error) {
	if threshold == 1 {
		return append([]byte(nil), shares[0].value...), nil
	}

	secret, err := interpolate(shares, secretIndex)
	if err != nil {
		return nil, err
	}
	digestShare, err := interpolate(shares, digestIndex)
	if err != nil {
		return nil, err
	}

	digest := digestShare[:digestLengthBytes]
	randomPart := digestShare[digestLengthBytes:]
	if !hmac.Equal(digest, createDigest(randomPart, secret)) {
		return nil, mnemonicError(ErrInvalidDigest, "")
	}
	return secret, nil
}

func createDigest(randomData, sharedSecret []byte) []byte {
	mac := hmac.New(sha256.New, randomData)
	mac.Write(sharedSecret)
	return mac.Sum(nil)[:digestLengthBytes]
}

// sameValues reports whether a and b hold the same share.
func sameValues(a, b rawShare) bool {
	return a.index == b.index && bytes.Equal(a.value, b.value)
}
