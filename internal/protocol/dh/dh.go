// Package dh implements a Diffie-Hellman channel over an ecc.Group. The
// sender generates an ephemeral key pair, multiplies the recipient's
// public point by the ephemeral scalar, derives an AES-256 key from the
// shared point's encoding and seals the message with AES-GCM.
//
// Decrypt reports every failure as ecc.ErrDecryptionFailed so that callers
// cannot distinguish a forged tag from a bad key or a malformed point.
package dh

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/smallyu/go-ecbasics/internal/crypto/aead"
	"github.com/smallyu/go-ecbasics/internal/protocol/keygen"
	"github.com/smallyu/go-ecbasics/internal/protocol/sign"
	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

const maxSignatureSize = 0xffff

// Encrypt encrypts message for the holder of the private key behind pub.
// An invalid or identity recipient key fails with ecc.ErrInvalidPoint.
func Encrypt(group ecc.Group, pub ecc.Point, message []byte, opts ...Option) (*Ciphertext, error) {
	o := newOptions(opts)

	recipient, err := validatePoint(group, pub)
	if err != nil {
		return nil, fmt.Errorf("dh: recipient key: %w", err)
	}

	eph, err := keygen.Generate(group)
	if err != nil {
		return nil, fmt.Errorf("dh: ephemeral key: %w", err)
	}
	defer eph.Destroy()

	key, err := deriveKey(group, o, eph.Private, recipient)
	if err != nil {
		return nil, fmt.Errorf("dh: %w", err)
	}

	ct := &Ciphertext{Ephemeral: eph.Public.Bytes()}
	plaintext := message
	if o.sender != nil {
		sig, err := sign.Sign(o.sender.Group, o.sender.Private, message)
		if err != nil {
			return nil, fmt.Errorf("dh: sender signature: %w", err)
		}
		if len(sig) > maxSignatureSize {
			return nil, fmt.Errorf("dh: sender signature of %d bytes", len(sig))
		}
		plaintext = make([]byte, 2, 2+len(sig)+len(message))
		binary.BigEndian.PutUint16(plaintext, uint16(len(sig)))
		plaintext = append(plaintext, sig...)
		plaintext = append(plaintext, message...)
		ct.Signed = true
	}

	ct.Nonce, ct.Data, ct.Tag, err = aead.Seal(key, plaintext, ct.aad())
	if err != nil {
		return nil, fmt.Errorf("dh: %w", err)
	}
	return ct, nil
}

// Decrypt recovers the message from ct with the recipient's private scalar.
// With WithVerifier the ciphertext must carry a valid sender signature.
func Decrypt(group ecc.Group, priv *big.Int, ct *Ciphertext, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	if group == nil || ct == nil || priv == nil || priv.Sign() <= 0 {
		return nil, ecc.ErrDecryptionFailed
	}

	eph, err := group.ParsePoint(ct.Ephemeral)
	if err != nil || eph.IsIdentity() {
		return nil, ecc.ErrDecryptionFailed
	}
	key, err := deriveKey(group, o, priv, eph)
	if err != nil {
		return nil, ecc.ErrDecryptionFailed
	}
	plaintext, err := aead.Open(key, ct.Nonce, ct.Data, ct.Tag, ct.aad())
	if err != nil {
		return nil, ecc.ErrDecryptionFailed
	}

	if !ct.Signed {
		if o.verifyKey != nil {
			return nil, ecc.ErrDecryptionFailed
		}
		return plaintext, nil
	}

	if len(plaintext) < 2 {
		return nil, ecc.ErrDecryptionFailed
	}
	sigLen := int(binary.BigEndian.Uint16(plaintext))
	if len(plaintext) < 2+sigLen {
		return nil, ecc.ErrDecryptionFailed
	}
	sig, message := plaintext[2:2+sigLen], plaintext[2+sigLen:]
	if o.verifyKey != nil && !sign.Verify(o.verifyGroup, o.verifyKey, message, sig) {
		return nil, ecc.ErrDecryptionFailed
	}
	return message, nil
}

// DecryptBytes decodes a marshalled ciphertext and decrypts it. A malformed
// encoding is reported as ecc.ErrDecryptionFailed like any other failure.
func DecryptBytes(group ecc.Group, priv *big.Int, data []byte, opts ...Option) ([]byte, error) {
	var ct Ciphertext
	if err := ct.UnmarshalBinary(data); err != nil {
		return nil, ecc.ErrDecryptionFailed
	}
	return Decrypt(group, priv, &ct, opts...)
}

// validatePoint round-trips p through the group's decoder, which rejects
// points of the wrong engine, points off the curve and points outside the
// prime-order subgroup.
func validatePoint(group ecc.Group, p ecc.Point) (ecc.Point, error) {
	if group == nil {
		return nil, fmt.Errorf("%w: nil group", ecc.ErrUnsupported)
	}
	if p == nil {
		return nil, ecc.ErrInvalidPoint
	}
	q, err := group.ParsePoint(p.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ecc.ErrInvalidPoint, err)
	}
	if q.IsIdentity() || !q.Equal(p) {
		return nil, ecc.ErrInvalidPoint
	}
	return q, nil
}

func deriveKey(group ecc.Group, o *options, priv *big.Int, peer ecc.Point) ([]byte, error) {
	shared, err := group.ScalarMult(peer, priv)
	if err != nil {
		return nil, err
	}
	if shared.IsIdentity() {
		return nil, ecc.ErrInvalidPoint
	}
	return o.kdf(shared.Bytes(), aead.KeySize)
}
