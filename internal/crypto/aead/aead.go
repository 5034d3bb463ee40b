// Package aead wraps AES-GCM with the 16-byte nonce and detached tag used
// by the DH channel.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

const (
	// KeySize is the AES-256 key size used by the DH channel.
	KeySize = 32
	// MessageKeySize is the AES-128 key size of EncryptMessage.
	MessageKeySize = 16
	NonceSize      = 16
	TagSize        = 16
)

var ErrInvalidKey = errors.New("aead: invalid key size")

// Seal encrypts plaintext under key with a fresh random nonce. The key may
// be any AES key size.
func Seal(key, plaintext, aad []byte) (nonce, data, tag []byte, err error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, nil, err
	}
	nonce = make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, nil, fmt.Errorf("aead: failed to generate nonce: %w", err)
	}
	sealed := gcm.Seal(nil, nonce, plaintext, aad)
	split := len(sealed) - TagSize
	return nonce, sealed[:split], sealed[split:], nil
}

// Open authenticates and decrypts. Any failure, including a malformed
// nonce or tag, returns ecc.ErrDecryptionFailed.
func Open(key, nonce, data, tag, aad []byte) ([]byte, error) {
	if len(nonce) != NonceSize || len(tag) != TagSize {
		return nil, ecc.ErrDecryptionFailed
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, ecc.ErrDecryptionFailed
	}
	sealed := make([]byte, 0, len(data)+len(tag))
	sealed = append(sealed, data...)
	sealed = append(sealed, tag...)
	plaintext, err := gcm.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, ecc.ErrDecryptionFailed
	}
	return plaintext, nil
}

// EncryptMessage encrypts message under a 16-byte AES-128 key.
func EncryptMessage(key, message []byte) (nonce, data, tag []byte, err error) {
	if len(key) != MessageKeySize {
		return nil, nil, nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKey, MessageKeySize, len(key))
	}
	return Seal(key, message, nil)
}

// DecryptMessage reverses EncryptMessage.
func DecryptMessage(key, nonce, data, tag []byte) ([]byte, error) {
	if len(key) != MessageKeySize {
		return nil, ecc.ErrDecryptionFailed
	}
	return Open(key, nonce, data, tag, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return cipher.NewGCMWithNonceSize(block, NonceSize)
}
