package fpe

import "crypto/cipher"

// cbcMAC computes AES-CBC-MAC over x under the given block cipher: a zero
// IV, standard CBC chaining, and the final ciphertext block as the tag. x's
// length must be a positive multiple of the cipher's block size; this
// function never pads.
func cbcMAC(block cipher.Block, x []byte) []byte {
	bs := block.BlockSize()
	iv := make([]byte, bs)
	mode := cipher.NewCBCEncrypter(block, iv)
	out := make([]byte, len(x))
	mode.CryptBlocks(out, x)
	return out[len(out)-bs:]
}
