package ecc

import "math/big"

// Point represents an element of an elliptic-curve group.
// Implementations are immutable values; operations always return new points.
type Point interface {
	// Bytes returns the canonical serialization of the point.
	// The identity encodes as a single zero byte for Weierstrass groups.
	Bytes() []byte

	// Equal reports whether two points hold the same group element.
	Equal(other Point) bool

	// IsIdentity reports whether this is the point at infinity.
	IsIdentity() bool
}

// Group is the engine for a single elliptic-curve group: it supplies the
// order, the generator, scalar sampling, scalar multiplication and point
// parsing used by key generation, ECDSA and the DH channel.
type Group interface {
	// Name returns the curve identifier (e.g. "secp256k1", "ed25519").
	Name() string

	// Order returns a copy of the order of the generator.
	Order() *big.Int

	// Generator returns the base point G.
	Generator() Point

	// NewScalar samples a scalar uniformly from [1, Order()).
	NewScalar() (*big.Int, error)

	// ScalarBaseMult computes k * G. Scalars are reduced modulo Order().
	ScalarBaseMult(k *big.Int) (Point, error)

	// ScalarMult computes k * P.
	ScalarMult(p Point, k *big.Int) (Point, error)

	// Add computes P + Q.
	Add(p, q Point) (Point, error)

	// ParsePoint decodes a canonical encoding and rejects anything that is
	// not a valid group element.
	ParsePoint(b []byte) (Point, error)
}

// DigestSigner is implemented by groups that carry an ECDSA backend.
// Signatures are ASN.1 DER encoded.
type DigestSigner interface {
	// SignDigest signs a message digest with the private scalar.
	SignDigest(priv *big.Int, digest []byte) ([]byte, error)

	// VerifyDigest reports whether sig is a valid signature of digest
	// under the public point.
	VerifyDigest(pub Point, digest, sig []byte) bool
}
