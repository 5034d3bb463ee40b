// Package sign hashes messages with SHA-256 and produces ECDSA signatures
// through the group's digest signer. Signatures are ASN.1 DER.
package sign

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

// Sign signs SHA-256(message) with priv.
func Sign(group ecc.Group, priv *big.Int, message []byte) ([]byte, error) {
	signer, err := digestSigner(group)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(message)
	sig, err := signer.SignDigest(priv, digest[:])
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return sig, nil
}

// Verify reports whether sig is a valid signature of message under pub.
// It never returns an error; unsupported groups simply fail verification.
func Verify(group ecc.Group, pub ecc.Point, message, sig []byte) bool {
	signer, err := digestSigner(group)
	if err != nil || pub == nil {
		return false
	}
	digest := sha256.Sum256(message)
	return signer.VerifyDigest(pub, digest[:], sig)
}

func digestSigner(group ecc.Group) (ecc.DigestSigner, error) {
	if group == nil {
		return nil, fmt.Errorf("sign: %w: nil group", ecc.ErrUnsupported)
	}
	signer, ok := group.(ecc.DigestSigner)
	if !ok {
		return nil, fmt.Errorf("sign: %w: no ECDSA backend for %s", ecc.ErrUnsupported, group.Name())
	}
	return signer, nil
}
