package fpe

import (
	"math/big"
)

// alphabet is the canonical digit alphabet this package supports: decimal
// digits followed by lowercase letters, giving radices up to 36.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// DigitString is a fixed-length digit sequence in a given radix. Two digit
// strings are equal iff their (radix, length, value) triples are equal.
// DigitStrings are immutable; every operation produces a new value.
type DigitString struct {
	radix  int
	length int
	value  big.Int
}

// Radix returns the digit string's radix.
func (d DigitString) Radix() int { return d.radix }

// Length returns the number of digits.
func (d DigitString) Length() int { return d.length }

// Int returns a copy of the digit string's numeric value.
func (d DigitString) Int() *big.Int {
	return new(big.Int).Set(&d.value)
}

// Equal reports whether two digit strings have the same radix, length and
// numeric value.
func (d DigitString) Equal(other DigitString) bool {
	return d.radix == other.radix && d.length == other.length && d.value.Cmp(&other.value) == 0
}

func digitValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	}
	return 0, false
}

func validRadix(radix int) bool {
	return radix >= 2 && radix <= 36
}

// NewDigitStringFromText decodes text under the alphabet 0-9a-z (accepted
// case-insensitively) into a digit string of the given radix. If blocksize
// is provided it becomes the result's length, left-zero-padded; it must be
// no shorter than len(text). When omitted, the length is len(text).
func NewDigitStringFromText(text string, radix int, blocksize ...int) (DigitString, error) {
	if !validRadix(radix) {
		return DigitString{}, ErrInvalidRadix
	}
	size := len(text)
	if len(blocksize) > 0 {
		size = blocksize[0]
	}
	if size < len(text) {
		return DigitString{}, ErrInvalidBlocksize
	}

	value := new(big.Int)
	r := big.NewInt(int64(radix))
	digit := new(big.Int)
	for i := 0; i < len(text); i++ {
		d, ok := digitValue(text[i])
		if !ok || d >= radix {
			return DigitString{}, ErrInvalidDigit
		}
		value.Mul(value, r)
		digit.SetInt64(int64(d))
		value.Add(value, digit)
	}
	return DigitString{radix: radix, length: size, value: *value}, nil
}

// NewDigitStringFromInt builds a digit string of the given radix and length
// from a nonnegative integer. The value must be strictly less than
// radix^blocksize.
func NewDigitStringFromInt(value *big.Int, radix, blocksize int) (DigitString, error) {
	if !validRadix(radix) {
		return DigitString{}, ErrInvalidRadix
	}
	if blocksize < 0 || value.Sign() < 0 {
		return DigitString{}, ErrValueOutOfRange
	}
	max := new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(blocksize)), nil)
	if value.Cmp(max) >= 0 {
		return DigitString{}, ErrValueOutOfRange
	}
	var v big.Int
	v.Set(value)
	return DigitString{radix: radix, length: blocksize, value: v}, nil
}

// Text returns the lowercase, zero-padded canonical textual form.
func (d DigitString) Text() string {
	out := make([]byte, d.length)
	v := new(big.Int).Set(&d.value)
	r := big.NewInt(int64(d.radix))
	rem := new(big.Int)
	for i := d.length - 1; i >= 0; i-- {
		v.DivMod(v, r, rem)
		out[i] = alphabet[rem.Int64()]
	}
	return string(out)
}

// byteLen returns ceil(ceil(length * log2(radix)) / 8): the number of bytes
// needed to hold any value < radix^length.
func byteLen(radix, length int) int {
	if length == 0 {
		return 0
	}
	bits := bitsForDigits(radix, length)
	return (bits + 7) / 8
}

// bitsForDigits returns ceil(length * log2(radix)) using exact big.Int
// arithmetic rather than floating point, so results stay exact up to the ~128 digit,
// radix-36 domains this package supports.
func bitsForDigits(radix, length int) int {
	// ceil(length * log2(radix)) computed exactly via big.Int: find the
	// smallest b such that 2^b >= radix^length.
	target := new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(length)), nil)
	b := target.BitLen() - 1
	two := new(big.Int).Lsh(big.NewInt(1), uint(b))
	if two.Cmp(target) < 0 {
		b++
	}
	return b
}

// Bytes returns the big-endian byte form of the digit string's numeric
// value. If n is provided it is the exact output length (left-zero-padded);
// the call fails with ErrInvalidByteLength if the value doesn't fit. When
// omitted, n defaults to ceil(length*log2(radix)/8).
func (d DigitString) Bytes(n ...int) ([]byte, error) {
	width := byteLen(d.radix, d.length)
	if len(n) > 0 {
		width = n[0]
	}
	raw := d.value.Bytes()
	if len(raw) > width {
		return nil, ErrInvalidByteLength
	}
	out := make([]byte, width)
	copy(out[width-len(raw):], raw)
	return out, nil
}

// AddMod returns (self.value + other.value) mod radix^m as a new digit
// string of length m. Both operands must share the same radix.
func (d DigitString) AddMod(other DigitString, m int) (DigitString, error) {
	if d.radix != other.radix {
		return DigitString{}, ErrRadixMismatch
	}
	mod := new(big.Int).Exp(big.NewInt(int64(d.radix)), big.NewInt(int64(m)), nil)
	v := new(big.Int).Add(&d.value, &other.value)
	v.Mod(v, mod)
	return DigitString{radix: d.radix, length: m, value: *v}, nil
}

// SubMod returns (self.value - other.value) mod radix^m as a new digit
// string of length m. Both operands must share the same radix.
func (d DigitString) SubMod(other DigitString, m int) (DigitString, error) {
	if d.radix != other.radix {
		return DigitString{}, ErrRadixMismatch
	}
	mod := new(big.Int).Exp(big.NewInt(int64(d.radix)), big.NewInt(int64(m)), nil)
	v := new(big.Int).Sub(&d.value, &other.value)
	v.Mod(v, mod)
	return DigitString{radix: d.radix, length: m, value: *v}, nil
}

// Concat returns a digit string of length lhs.Length()+rhs.Length() whose
// numeric value is lhs.value*radix^rhs.Length() + rhs.value. Both operands
// must share the same radix.
func Concat(lhs, rhs DigitString) (DigitString, error) {
	if lhs.radix != rhs.radix {
		return DigitString{}, ErrRadixMismatch
	}
	shift := new(big.Int).Exp(big.NewInt(int64(lhs.radix)), big.NewInt(int64(rhs.length)), nil)
	v := new(big.Int).Mul(&lhs.value, shift)
	v.Add(v, &rhs.value)
	return DigitString{radix: lhs.radix, length: lhs.length + rhs.length, value: *v}, nil
}

// Split returns (left, right) where left has length k, right has length
// self.Length()-k, and Concat(left, right) reproduces self.
func (d DigitString) Split(k int) (DigitString, DigitString, error) {
	if k < 0 || k > d.length {
		return DigitString{}, DigitString{}, ErrInvalidArgument
	}
	rightLen := d.length - k
	mod := new(big.Int).Exp(big.NewInt(int64(d.radix)), big.NewInt(int64(rightLen)), nil)
	right := new(big.Int).Mod(&d.value, mod)
	left := new(big.Int).Sub(&d.value, right)
	left.Div(left, mod)
	return DigitString{radix: d.radix, length: k, value: *left},
		DigitString{radix: d.radix, length: rightLen, value: *right},
		nil
}
