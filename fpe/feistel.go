package fpe

import (
	"crypto/aes"
	"crypto/cipher"
	"math/big"
)

const (
	maxMessageLength = 255
	maxTweakLength   = 1 << 16 // implementation limit; spec requires at least 128
	minDomainSize    = 100
)

// Encrypter is an immutable binding of (key, radix) that performs FFX-A2
// encrypt/decrypt. Construct one with NewEncrypter and reuse it across
// tweaks and messages; concurrent use from multiple goroutines is safe.
type Encrypter struct {
	aesBlock cipher.Block
	radix    int
}

// NewEncrypter builds an Encrypter for the given 16-byte AES-128 key and
// radix in [2, 36].
func NewEncrypter(key []byte, radix int) (*Encrypter, error) {
	if len(key) != 16 {
		return nil, ErrInvalidKeyLength
	}
	if !validRadix(radix) {
		return nil, ErrInvalidRadix
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &Encrypter{aesBlock: block, radix: radix}, nil
}

// Radix returns the radix this encrypter was constructed with.
func (e *Encrypter) Radix() int { return e.radix }

// validate checks the structural constraints from spec.md section 4.4 step
// 1. The domain-size check is reported as ErrDomainTooSmall specifically
// (per section 7's error table and the worked example in section 8); every
// other mismatch is ErrInvalidArgument. For any radix in [2, 36], a message
// of length 1 always fails the domain check too, since radix^1 <= 36 <
// minDomainSize, so no separate length-floor check is needed here.
func (e *Encrypter) validate(tweak, message DigitString) error {
	if tweak.Radix() != e.radix || message.Radix() != e.radix {
		return ErrInvalidArgument
	}
	n := message.Length()
	if n > maxMessageLength {
		return ErrInvalidArgument
	}
	if tweak.Length() > maxTweakLength {
		return ErrInvalidArgument
	}
	domain := new(big.Int).Exp(big.NewInt(int64(e.radix)), big.NewInt(int64(n)), nil)
	if domain.Cmp(big.NewInt(minDomainSize)) < 0 {
		return ErrDomainTooSmall
	}
	return nil
}

// Encrypt applies the 10-round balanced Feistel network to plaintext under
// tweak, returning a digit string of the same radix and length.
func (e *Encrypter) Encrypt(tweak, plaintext DigitString) (DigitString, error) {
	if err := e.validate(tweak, plaintext); err != nil {
		return DigitString{}, err
	}

	n := plaintext.Length()
	t := tweak.Length()
	l := n / 2
	rgt := n - l

	f := newRoundFunction(e.aesBlock, e.radix, n, t, l)
	tweakBytes, err := tweak.Bytes(byteLen(e.radix, t))
	if err != nil {
		return DigitString{}, err
	}

	a, b, err := plaintext.Split(l)
	if err != nil {
		return DigitString{}, err
	}

	for i := 0; i < numRounds; i++ {
		m := l
		if i%2 != 0 {
			m = rgt
		}
		cPrime, err := f.compute(tweakBytes, i, b, m)
		if err != nil {
			return DigitString{}, err
		}
		c, err := a.AddMod(cPrime, m)
		if err != nil {
			return DigitString{}, err
		}
		a, b = b, c
	}

	return Concat(a, b)
}

// Decrypt inverts Encrypt: it recovers plaintext from ciphertext under the
// same tweak.
func (e *Encrypter) Decrypt(tweak, ciphertext DigitString) (DigitString, error) {
	if err := e.validate(tweak, ciphertext); err != nil {
		return DigitString{}, err
	}

	n := ciphertext.Length()
	t := tweak.Length()
	l := n / 2
	rgt := n - l

	f := newRoundFunction(e.aesBlock, e.radix, n, t, l)
	tweakBytes, err := tweak.Bytes(byteLen(e.radix, t))
	if err != nil {
		return DigitString{}, err
	}

	a, b, err := ciphertext.Split(l)
	if err != nil {
		return DigitString{}, err
	}

	for i := numRounds - 1; i >= 0; i-- {
		m := l
		if i%2 != 0 {
			m = rgt
		}
		// a plays the role b played at the same round during encryption.
		cPrime, err := f.compute(tweakBytes, i, a, m)
		if err != nil {
			return DigitString{}, err
		}
		newA, err := b.SubMod(cPrime, m)
		if err != nil {
			return DigitString{}, err
		}
		a, b = newA, a
	}

	return Concat(a, b)
}
