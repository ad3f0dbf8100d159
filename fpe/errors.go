// Package fpe implements Format-Preserving Encryption (FPE) under the FFX
// mode of operation, variant FFX-A2, using AES-128 as the underlying
// pseudorandom function.
//
// See the original FFX submission to NIST (Bellare, Rogaway, Spies) and
// NIST SP 800-38G for background on format-preserving encryption and the
// Feistel-based constructions it builds on.
package fpe

import "errors"

// Error kinds returned by this package. All failures are synchronous and
// deterministic; no operation retries or recovers internally.
var (
	// ErrInvalidRadix is returned when a radix falls outside [2, 36].
	ErrInvalidRadix = errors.New("fpe: radix must be in [2, 36]")
	// ErrInvalidKeyLength is returned when a key is not exactly 16 bytes.
	ErrInvalidKeyLength = errors.New("fpe: key must be exactly 16 bytes")
	// ErrInvalidDigit is returned when a textual digit string contains a
	// character outside the alphabet or whose value is >= radix.
	ErrInvalidDigit = errors.New("fpe: digit out of range for radix")
	// ErrInvalidBlocksize is returned when a declared length is shorter
	// than the supplied content.
	ErrInvalidBlocksize = errors.New("fpe: blocksize shorter than supplied content")
	// ErrValueOutOfRange is returned when a numeric value is >= radix^length.
	ErrValueOutOfRange = errors.New("fpe: value out of range for radix and length")
	// ErrRadixMismatch is returned when arithmetic or concatenation mixes
	// digit strings of different radices.
	ErrRadixMismatch = errors.New("fpe: operands have different radices")
	// ErrDomainTooSmall is returned when radix^length < 100 on encrypt/decrypt.
	ErrDomainTooSmall = errors.New("fpe: radix^length domain is smaller than 100")
	// ErrInvalidArgument is returned when the length or radix of a tweak or
	// message disagrees with the encrypter's configuration at call time.
	ErrInvalidArgument = errors.New("fpe: tweak or message is not valid for this encrypter")
	// ErrInvalidByteLength is returned when a caller-requested byte length
	// is too small to hold a digit string's numeric value.
	ErrInvalidByteLength = errors.New("fpe: value does not fit in the requested byte length")
)
