package slip39

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"

	"github.com/xdg-go/pbkdf2"
)

// EncryptMasterSecret converts a master secret into the encrypted master
// secret that is split into shares, using a four-round Feistel network whose
// round function is PBKDF2-HMAC-SHA256 over the passphrase.
func EncryptMasterSecret(
	masterSecret, passphrase []byte,
	iterationExponent, identifier int,
) ([]byte, error) {
	if err := validateCipherParams(masterSecret, passphrase, iterationExponent, identifier); err != nil {
		return nil, err
	}
	return feistel(masterSecret, passphrase, iterationExponent, identifier, false), nil
}

// DecryptMasterSecret reverses EncryptMasterSecret. Any passphrase decrypts
// successfully; a wrong one yields a different (but valid) master secret.
func DecryptMasterSecret(
	encryptedMasterSecret, passphrase []byte,
	iterationExponent, identifier int,
) ([]byte, error) {
	if err := validateCipherParams(encryptedMasterSecret, passphrase, iterationExponent, identifier); err != nil {
		return nil, err
	}
	return feistel(encryptedMasterSecret, passphrase, iterationExponent, identifier, true), nil
}

func validateCipherParams(secret, passphrase []byte, iterationExponent, identifier int) error {
	if len(secret)*8 < minStrengthBits || len(secret)%2 != 0 {
		return configError(ErrMasterSecretLengthInvalid, "got %d bytes", len(secret))
	}
	if err := validatePassphrase(passphrase); err != nil {
		return err
	}
	if iterationExponent < 0 || iterationExponent > maxIterationExponent {
		return configError(ErrIterationExponentInvalid, "got %d", iterationExponent)
	}
	if identifier < 0 || identifier > maxIdentifier {
		return configError(ErrIdentifierInvalid, "got %d", identifier)
	}
	return nil
}

// validatePassphrase rejects anything outside printable ASCII (32-126).
func validatePassphrase(passphrase []byte) error {
	for i, c := range passphrase {
		if c < 32 || c > 126 {
			return configError(ErrPassphraseInvalid, "byte %d is 0x%02x", i, c)
		}
	}
	return nil
}

func feistel(input, passphrase []byte, e, id int, reverse bool) []byte {
	half := len(input) / 2
	l := append([]byte(nil), input[:half]...)
	r := append([]byte(nil), input[half:]...)
	salt := getSalt(id)

	for n := range roundCount {
		i := n
		if reverse {
			i = roundCount - 1 - n
		}
		f := roundFunction(i, passphrase, e, salt, r)
		l, r = r, xor(l, f)
		wipe(f)
	}

	out := make([]byte, 0, len(input))
	out = append(out, r...)
	out = append(out, l...)
	wipe(l)
	wipe(r)
	return out
}

func roundFunction(i int, passphrase []byte, e int, salt, r []byte) []byte {
	password := make([]byte, 0, 1+len(passphrase))
	password = append(password, byte(i))
	password = append(password, passphrase...)

	s := make([]byte, 0, len(salt)+len(r))
	s = append(s, salt...)
	s = append(s, r...)

	iterations := (baseIterationCount << e) / roundCount
	key := pbkdf2.Key(password, s, iterations, len(r), sha256.New)
	wipe(password)
	return key
}

func getSalt(identifier int) []byte {
	salt := make([]byte, len(customizationString)+idLengthBytes)
	copy(salt, customizationString)
	binary.BigEndian.PutUint16(salt[len(customizationString):], uint16(identifier))
	return salt
}

// xor returns a XOR b, truncated to the shorter of the two.
func xor(a, b []byte) []byte {
	n := min(len(a), len(b))
	out := make([]byte, n)
	subtle.XORBytes(out, a[:n], b[:n])
	return out
}

// wipe overwrites key material once it is no longer needed.
func wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}
