package slip39

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	// ErrInvalidConfiguration is matched by errors caused by structurally
	// invalid parameters supplied by the caller.
	ErrInvalidConfiguration = errors.New("Invalid configuration")

	// ErrInvalidMnemonic is matched by errors caused by the content of the
	// mnemonics being decoded or combined.
	ErrInvalidMnemonic = errors.New("Invalid mnemonic")
)

// Mnemonic errors
var (
	ErrInvalidWord                = errors.New("Invalid mnemonic word")
	ErrMnemonicTooShort           = errors.New("Mnemonic too short")
	ErrInvalidMnemonicLength      = errors.New("Invalid mnemonic length")
	ErrInvalidChecksum            = errors.New("Invalid checksum")
	ErrInvalidPadding             = errors.New("Invalid mnemonic padding")
	ErrGroupThresholdExceedsCount = errors.New("Group threshold cannot be greater than group count")
	ErrNoMnemonics                = errors.New("The list of mnemonics is empty")
	ErrMismatchedIdentifier       = errors.New("All mnemonics must begin with the same identifier and iteration exponent")
	ErrMismatchedGroupThreshold   = errors.New("All mnemonics must have the same group threshold")
	ErrMismatchedGroupCount       = errors.New("All mnemonics must have the same group count")
	ErrMismatchedMemberThreshold  = errors.New("All mnemonics in a group must have the same member threshold")
	ErrDuplicateMemberIndex       = errors.New("Member indices in each group must be unique")
	ErrMismatchedShareLength      = errors.New("All share values must have the same length")
	ErrInsufficientGroups         = errors.New("Insufficient number of mnemonic groups")
	ErrInsufficientShares         = errors.New("Insufficient number of mnemonics")
	ErrInvalidDigest              = errors.New("Invalid digest of the shared secret")
)

// Configuration errors
var (
	// ErrMasterSecretLengthInvalid is returned when trying to use a master
	// secret with an invalid size
	ErrMasterSecretLengthInvalid  = errors.New("Master secret length must be >= 128 bits and be a multiple of 16 bits")
	ErrStrengthInvalid            = errors.New("Strength must be >= 128 bits and be a multiple of 16 bits")
	ErrThresholdInvalid           = errors.New("Threshold must be a positive integer not exceeding the share count")
	ErrShareCountInvalid          = errors.New("Share count must be between 1 and 16")
	ErrGroupThresholdInvalid      = errors.New("Group threshold must be between 1 and the number of groups")
	ErrSingleMemberMultipleShares = errors.New("Creating multiple member shares with member threshold 1 is not allowed")
	ErrPassphraseInvalid          = errors.New("Passphrase must contain only printable ASCII characters")
	ErrIterationExponentInvalid   = errors.New("Iteration exponent must be between 0 and 31")
	ErrIdentifierInvalid          = errors.New("Identifier must fit in 15 bits")
)

// MnemonicError describes a failure to decode or combine mnemonics. It
// matches both ErrInvalidMnemonic and the specific sentinel in Err.
type MnemonicError struct {
	Err error

	// Prefix holds the first words of the offending mnemonic, or of the
	// group that still needs shares. Empty if not applicable.
	Prefix string

	// WordIndex is the position of the word suspected to be wrong, or -1.
	WordIndex int

	// Required is the number of mnemonics starting with Prefix that are
	// needed to complete the group, or 0. Missing is how many more of them
	// must be supplied.
	Required int
	Missing  int

	detail string
}

func (e *MnemonicError) Error() string {
	msg := e.Err.Error()
	if e.Prefix != "" {
		if e.Required > 0 {
			msg = fmt.Sprintf("%s. At least %d mnemonics starting with %q are required (%d more)",
				msg, e.Required, e.Prefix+" ...", e.Missing)
		} else {
			msg = fmt.Sprintf("%s for %q", msg, e.Prefix+" ...")
		}
	}
	if e.WordIndex >= 0 {
		msg = fmt.Sprintf("%s (word %d may be wrong)", msg, e.WordIndex+1)
	}
	if e.detail != "" {
		msg += ": " + e.detail
	}
	return msg
}

func (e *MnemonicError) Unwrap() []error {
	return []error{ErrInvalidMnemonic, e.Err}
}

func mnemonicError(err error, format string, args ...any) *MnemonicError {
	e := &MnemonicError{Err: err, WordIndex: -1}
	if format != "" {
		e.detail = fmt.Sprintf(format, args...)
	}
	return e
}

// ConfigurationError describes parameters that can never produce a valid
// split. It matches both ErrInvalidConfiguration and the sentinel in Err.
type ConfigurationError struct {
	Err    error
	detail string
}

func (e *ConfigurationError) Error() string {
	if e.detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.detail
}

func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrInvalidConfiguration, e.Err}
}

func configError(err error, format string, args ...any) *ConfigurationError {
	e := &ConfigurationError{Err: err}
	if format != "" {
		e.detail = fmt.Sprintf(format, args...)
	}
	return e
}
