package fpe

import (
	"crypto/cipher"
	"encoding/binary"
	"math/big"
)

// numRounds is the fixed Feistel round count for FFX-A2.
const numRounds = 10

// roundFunction builds the per-round input block P||Q, invokes the PRF, and
// expands its output into a digit string modulo a chosen power of the
// radix. One instance is built per encrypt/decrypt call, since P is fixed
// across all 10 rounds of that call but depends on (radix, n, t, l). beta is
// likewise fixed for the whole call: it is the byte width of rgt = n - l,
// the larger of the two alternating half-lengths, and sizes the B suffix of
// Q on every round. Only the PRF's output width (outLen, passed to compute)
// alternates per round.
type roundFunction struct {
	aesBlock cipher.Block
	radix    int
	beta     int
	p        [16]byte
}

// newRoundFunction derives the fixed P block (vers, method, addition,
// radix, n, split(n), round count, tweak length) for one encrypt/decrypt
// call, along with the fixed B-suffix byte width beta = byteLen(radix, n-l).
func newRoundFunction(aesBlock cipher.Block, radix, n, t, l int) *roundFunction {
	f := &roundFunction{aesBlock: aesBlock, radix: radix, beta: byteLen(radix, n-l)}
	p := f.p[:]
	p[0] = 1 // vers
	p[1] = 2 // method: addition
	p[2] = 1 // addition, per FFX-A2
	r := uint32(radix)
	p[3] = byte(r >> 16)
	p[4] = byte(r >> 8)
	p[5] = byte(r)
	p[6] = byte(n)
	p[7] = byte(l)
	binary.BigEndian.PutUint32(p[8:12], uint32(numRounds))
	binary.BigEndian.PutUint32(p[12:16], uint32(t))
	return f
}

// compute evaluates F(K, T, round, b) and returns an outLen-digit string in
// this round function's radix. tweakBytes is the tweak's fixed big-endian
// byte encoding (computed once per call, shared across rounds). The B
// suffix is always encoded in f.beta bytes, fixed for the whole call,
// independent of b's own length.
func (f *roundFunction) compute(tweakBytes []byte, round int, b DigitString, outLen int) (DigitString, error) {
	beta := f.beta
	bBytes, err := b.Bytes(beta)
	if err != nil {
		return DigitString{}, err
	}

	// Q = tweakBytes || zero_pad || [round] || bBytes, padded so that the
	// whole P||Q is a multiple of 16 bytes. tail is always >= 1 (the round
	// index byte), so pad never needs to add a full extra block.
	tail := len(tweakBytes) + 1 + beta
	pad := (16 - tail%16) % 16
	q := make([]byte, 0, tail+pad)
	q = append(q, tweakBytes...)
	q = append(q, make([]byte, pad)...)
	q = append(q, byte(round))
	q = append(q, bBytes...)

	pq := make([]byte, 16+len(q))
	copy(pq, f.p[:])
	copy(pq[16:], q)

	y := cbcMAC(f.aesBlock, pq)

	z := f.expand(y, beta)

	zInt := new(big.Int).SetBytes(z)
	mod := new(big.Int).Exp(big.NewInt(int64(f.radix)), big.NewInt(int64(outLen)), nil)
	zInt.Mod(zInt, mod)
	return NewDigitStringFromInt(zInt, f.radix, outLen)
}

// expand produces beta bytes of pseudorandom output from the 16-byte PRF
// tag y, extending via single-block AES re-encryption under a big-endian
// counter when beta exceeds one block.
func (f *roundFunction) expand(y []byte, beta int) []byte {
	if beta <= 16 {
		return y[:beta]
	}
	z := make([]byte, 16, beta+16)
	copy(z, y)
	block := make([]byte, 16)
	for j := 1; len(z) < beta; j++ {
		binary.BigEndian.PutUint64(block[8:], uint64(j))
		for i := 0; i < 16; i++ {
			block[i] ^= y[i]
		}
		f.aesBlock.Encrypt(block, block)
		z = append(z, block...)
		for i := 0; i < 16; i++ {
			block[i] = 0
		}
	}
	return z[:beta]
}
