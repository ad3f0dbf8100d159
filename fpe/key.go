package fpe

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveKey derives a 16-byte AES-128 key suitable for NewEncrypter from
// arbitrary-length secret material using HKDF-SHA256. salt and info are
// public parameters that separate independent derivations from the same
// secret; info is typically a fixed, purpose-specific label.
func DeriveKey(secret, salt []byte, info string) ([]byte, error) {
	key := make([]byte, 16)
	kdf := hkdf.New(sha256.New, secret, salt, []byte(info))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("fpe: derive key: %w", err)
	}
	return key, nil
}
