package fpe

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAESBlock(t *testing.T) cipher.Block {
	t.Helper()
	key, err := hex.DecodeString("2b7e151628aed2a6abf7158809cf4f3c")
	require.NoError(t, err)
	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	return block
}

func TestNewRoundFunctionPBlock(t *testing.T) {
	f := newRoundFunction(testAESBlock(t), 10, 9, 5, 4)

	assert.Equal(t, byte(1), f.p[0], "vers")
	assert.Equal(t, byte(2), f.p[1], "method")
	assert.Equal(t, byte(1), f.p[2], "addition")
	assert.Equal(t, []byte{0, 0, 10}, f.p[3:6], "radix, 3 bytes big-endian")
	assert.Equal(t, byte(9), f.p[6], "n")
	assert.Equal(t, byte(4), f.p[7], "l = floor(n/2)")
	assert.Equal(t, []byte{0, 0, 0, 10}, f.p[8:12], "round count")
	assert.Equal(t, []byte{0, 0, 0, 5}, f.p[12:16], "tweak length")
}

func TestRoundFunctionComputeDeterministic(t *testing.T) {
	f := newRoundFunction(testAESBlock(t), 10, 10, 10, 5)
	b := mustDigits(t, "54321", 10)
	tweakBytes := []byte{0x98, 0x76, 0x54, 0x32, 0x10}

	z1, err := f.compute(tweakBytes, 0, b, 5)
	require.NoError(t, err)
	z2, err := f.compute(tweakBytes, 0, b, 5)
	require.NoError(t, err)
	assert.True(t, z1.Equal(z2))
	assert.Equal(t, 5, z1.Length())
	assert.Equal(t, 10, z1.Radix())
}

func TestRoundFunctionComputeVariesByRound(t *testing.T) {
	f := newRoundFunction(testAESBlock(t), 10, 10, 10, 5)
	b := mustDigits(t, "54321", 10)
	tweakBytes := []byte{0x98, 0x76, 0x54, 0x32, 0x10}

	z0, err := f.compute(tweakBytes, 0, b, 5)
	require.NoError(t, err)
	z1, err := f.compute(tweakBytes, 1, b, 5)
	require.NoError(t, err)
	assert.False(t, z0.Equal(z1), "round index must perturb the PRF input")
}

func TestRoundFunctionComputeVariesByTweak(t *testing.T) {
	f := newRoundFunction(testAESBlock(t), 10, 10, 10, 5)
	b := mustDigits(t, "54321", 10)

	z0, err := f.compute([]byte{0, 0, 0, 0, 0}, 0, b, 5)
	require.NoError(t, err)
	z1, err := f.compute([]byte{0, 0, 0, 0, 1}, 0, b, 5)
	require.NoError(t, err)
	assert.False(t, z0.Equal(z1))
}

func TestRoundFunctionBetaFixedAcrossOddRounds(t *testing.T) {
	// n=9, l=4, rgt=5: beta must be byteLen(10, 5) for every round,
	// regardless of whether the incoming half this round has length 4 or
	// 5, since only the PRF output width alternates, not the B-suffix
	// width.
	f := newRoundFunction(testAESBlock(t), 10, 9, 0, 4)
	assert.Equal(t, byteLen(10, 5), f.beta)

	four := mustDigits(t, "1234", 10)
	five := mustDigits(t, "12345", 10)

	zFour, err := f.compute(nil, 0, four, 5)
	require.NoError(t, err)
	zFive, err := f.compute(nil, 1, five, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, zFour.Length())
	assert.Equal(t, 4, zFive.Length())
}

func TestRoundFunctionComputeOutputInRange(t *testing.T) {
	f := newRoundFunction(testAESBlock(t), 36, 16, 0, 8)
	b := mustDigits(t, "c4xpwulb", 36)

	z, err := f.compute(nil, 3, b, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, z.Length())
	assert.Equal(t, 36, z.Radix())
}

func TestRoundFunctionExpandSingleBlock(t *testing.T) {
	f := &roundFunction{aesBlock: testAESBlock(t), radix: 10}
	y := make([]byte, 16)
	for i := range y {
		y[i] = byte(i)
	}
	out := f.expand(y, 10)
	assert.Len(t, out, 10)
	assert.Equal(t, y[:10], out)
}

func TestRoundFunctionExpandMultiBlock(t *testing.T) {
	f := &roundFunction{aesBlock: testAESBlock(t), radix: 36}
	y := make([]byte, 16)
	for i := range y {
		y[i] = byte(i * 7)
	}
	out := f.expand(y, 30)
	assert.Len(t, out, 30)
	assert.Equal(t, y, out[:16], "the first block is always the raw PRF tag")

	// Expansion must be deterministic given the same tag.
	out2 := f.expand(y, 30)
	assert.Equal(t, out, out2)
}
