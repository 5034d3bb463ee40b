package dh

import (
	"github.com/smallyu/go-ecbasics/internal/crypto/kdf"
	"github.com/smallyu/go-ecbasics/internal/protocol/keygen"
	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

type options struct {
	kdf         kdf.Func
	sender      *keygen.KeyPair
	verifyGroup ecc.Group
	verifyKey   ecc.Point
}

// Option configures Encrypt and Decrypt.
type Option func(*options)

// WithKDF replaces the default SHA-256 key derivation. Both sides must use
// the same function.
func WithKDF(f kdf.Func) Option {
	return func(o *options) {
		if f != nil {
			o.kdf = f
		}
	}
}

// WithSender signs the plaintext with the sender's key. The key pair's
// group must support ECDSA and need not match the DH group.
func WithSender(kp *keygen.KeyPair) Option {
	return func(o *options) {
		o.sender = kp
	}
}

// WithVerifier makes Decrypt require a sender signature that verifies
// under pub in group.
func WithVerifier(group ecc.Group, pub ecc.Point) Option {
	return func(o *options) {
		o.verifyGroup = group
		o.verifyKey = pub
	}
}

func newOptions(opts []Option) *options {
	o := &options{kdf: kdf.SHA256}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
