package curves

import (
	"crypto/subtle"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

// Secp256k1 is the secp256k1 group backed by the decred implementation.
// Its variable-base scalar multiplication is not constant time; use the
// ladder-backed group from NewSecp256k1Ladder for secret scalars.
type Secp256k1 struct{}

// NewSecp256k1 returns the decred-backed secp256k1 group.
func NewSecp256k1() *Secp256k1 {
	return &Secp256k1{}
}

// Secp256k1Point is a secp256k1 point in affine form.
type Secp256k1Point struct {
	p secp256k1.JacobianPoint
}

func (p *Secp256k1Point) IsIdentity() bool {
	return (p.p.X.IsZero() && p.p.Y.IsZero()) || p.p.Z.IsZero()
}

// Bytes returns the 33-byte compressed encoding, or a single zero byte for
// the identity.
func (p *Secp256k1Point) Bytes() []byte {
	if p.IsIdentity() {
		return []byte{0x00}
	}
	return secp256k1.NewPublicKey(&p.p.X, &p.p.Y).SerializeCompressed()
}

func (p *Secp256k1Point) Equal(other ecc.Point) bool {
	o, ok := other.(*Secp256k1Point)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare(p.Bytes(), o.Bytes()) == 1
}

func (c *Secp256k1) Name() string {
	return "secp256k1"
}

func (c *Secp256k1) Order() *big.Int {
	return new(big.Int).Set(secp256k1.S256().Params().N)
}

func (c *Secp256k1) NewScalar() (*big.Int, error) {
	return randomScalar(c.Order())
}

func (c *Secp256k1) Generator() ecc.Point {
	g, _ := c.ScalarBaseMult(one)
	return g
}

func (c *Secp256k1) ScalarBaseMult(k *big.Int) (ecc.Point, error) {
	s, err := c.modN(k)
	if err != nil {
		return nil, err
	}
	var r secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(s, &r)
	r.ToAffine()
	return &Secp256k1Point{p: r}, nil
}

func (c *Secp256k1) ScalarMult(p ecc.Point, k *big.Int) (ecc.Point, error) {
	pt, ok := p.(*Secp256k1Point)
	if !ok {
		return nil, fmt.Errorf("%w: expected secp256k1 point, got %T", ecc.ErrInvalidPoint, p)
	}
	s, err := c.modN(k)
	if err != nil {
		return nil, err
	}
	if pt.IsIdentity() {
		return &Secp256k1Point{}, nil
	}
	in := pt.p
	var r secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(s, &in, &r)
	r.ToAffine()
	return &Secp256k1Point{p: r}, nil
}

func (c *Secp256k1) Add(p, q ecc.Point) (ecc.Point, error) {
	a, ok := p.(*Secp256k1Point)
	if !ok {
		return nil, fmt.Errorf("%w: expected secp256k1 point, got %T", ecc.ErrInvalidPoint, p)
	}
	b, ok := q.(*Secp256k1Point)
	if !ok {
		return nil, fmt.Errorf("%w: expected secp256k1 point, got %T", ecc.ErrInvalidPoint, q)
	}
	in1, in2 := a.p, b.p
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&in1, &in2, &r)
	r.ToAffine()
	return &Secp256k1Point{p: r}, nil
}

// ParsePoint accepts the 33-byte compressed or 65-byte uncompressed SEC 1
// encodings and the single zero byte of the identity.
func (c *Secp256k1) ParsePoint(b []byte) (ecc.Point, error) {
	if len(b) == 1 && b[0] == 0x00 {
		return &Secp256k1Point{}, nil
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ecc.ErrInvalidPoint, err)
	}
	var r secp256k1.JacobianPoint
	pub.AsJacobian(&r)
	return &Secp256k1Point{p: r}, nil
}

// SignDigest produces a DER encoded ECDSA signature with RFC 6979 nonces.
func (c *Secp256k1) SignDigest(priv *big.Int, digest []byte) ([]byte, error) {
	b, err := reduce(priv, c.Order(), 32)
	if err != nil {
		return nil, err
	}
	key := secp256k1.PrivKeyFromBytes(b)
	defer key.Zero()
	if key.Key.IsZero() {
		return nil, ecc.ErrInvalidScalar
	}
	return ecdsa.Sign(key, digest).Serialize(), nil
}

// VerifyDigest accepts any point whose encoding is a valid secp256k1 key,
// so points of the ladder-backed group verify as well.
func (c *Secp256k1) VerifyDigest(pub ecc.Point, digest, sig []byte) bool {
	if pub == nil || pub.IsIdentity() {
		return false
	}
	key, err := secp256k1.ParsePubKey(pub.Bytes())
	if err != nil {
		return false
	}
	s, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return s.Verify(digest, key)
}

func (c *Secp256k1) modN(k *big.Int) (*secp256k1.ModNScalar, error) {
	b, err := reduce(k, c.Order(), 32)
	if err != nil {
		return nil, err
	}
	s := new(secp256k1.ModNScalar)
	s.SetByteSlice(b)
	return s, nil
}
