// Package kdf derives symmetric keys from the canonical encoding of a
// shared elliptic curve point.
package kdf

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

var ErrKeySize = errors.New("kdf: unsupported key size")

// Func turns a shared secret into a key of size bytes.
type Func func(secret []byte, size int) ([]byte, error)

// SHA256 hashes the secret and truncates the digest to size bytes. It is
// the default for the DH channel, where size is 32.
func SHA256(secret []byte, size int) ([]byte, error) {
	if size <= 0 || size > sha256.Size {
		return nil, fmt.Errorf("%w: %d", ErrKeySize, size)
	}
	h := sha256.Sum256(secret)
	key := make([]byte, size)
	copy(key, h[:size])
	return key, nil
}

// HKDF returns an HKDF-SHA256 Func with no salt and the given info string
// for domain separation.
func HKDF(info []byte) Func {
	info = append([]byte(nil), info...)
	return func(secret []byte, size int) ([]byte, error) {
		if size <= 0 || size > 255*sha256.Size {
			return nil, fmt.Errorf("%w: %d", ErrKeySize, size)
		}
		r := hkdf.New(sha256.New, secret, nil, info)
		key := make([]byte, size)
		if _, err := io.ReadFull(r, key); err != nil {
			return nil, fmt.Errorf("kdf: hkdf expand: %w", err)
		}
		return key, nil
	}
}
