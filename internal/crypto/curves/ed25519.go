package curves

import (
	"fmt"
	"math/big"

	"filippo.io/edwards25519"

	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

// l = 2^252 + 27742317777372353535851937790883648493
var ed25519Order, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

// Ed25519 is the prime-order subgroup of the edwards25519 curve. Decoded
// points are checked for membership, so every Ed25519Point has order
// dividing l.
type Ed25519 struct{}

// NewEd25519 returns the edwards25519 prime-order group.
func NewEd25519() *Ed25519 {
	return &Ed25519{}
}

// Ed25519Point is an element of the prime-order subgroup.
type Ed25519Point struct {
	p *edwards25519.Point
}

func (p *Ed25519Point) Bytes() []byte {
	return p.p.Bytes()
}

func (p *Ed25519Point) Equal(other ecc.Point) bool {
	o, ok := other.(*Ed25519Point)
	if !ok {
		return false
	}
	return p.p.Equal(o.p) == 1
}

func (p *Ed25519Point) IsIdentity() bool {
	return p.p.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (c *Ed25519) Name() string {
	return "ed25519"
}

func (c *Ed25519) Order() *big.Int {
	return new(big.Int).Set(ed25519Order)
}

func (c *Ed25519) NewScalar() (*big.Int, error) {
	return randomScalar(ed25519Order)
}

func (c *Ed25519) Generator() ecc.Point {
	return &Ed25519Point{p: edwards25519.NewGeneratorPoint()}
}

func (c *Ed25519) ScalarBaseMult(k *big.Int) (ecc.Point, error) {
	s, err := ed25519Scalar(k)
	if err != nil {
		return nil, err
	}
	return &Ed25519Point{p: edwards25519.NewIdentityPoint().ScalarBaseMult(s)}, nil
}

func (c *Ed25519) ScalarMult(p ecc.Point, k *big.Int) (ecc.Point, error) {
	pt, ok := p.(*Ed25519Point)
	if !ok {
		return nil, fmt.Errorf("%w: expected ed25519 point, got %T", ecc.ErrInvalidPoint, p)
	}
	s, err := ed25519Scalar(k)
	if err != nil {
		return nil, err
	}
	return &Ed25519Point{p: edwards25519.NewIdentityPoint().ScalarMult(s, pt.p)}, nil
}

func (c *Ed25519) Add(p, q ecc.Point) (ecc.Point, error) {
	a, ok := p.(*Ed25519Point)
	if !ok {
		return nil, fmt.Errorf("%w: expected ed25519 point, got %T", ecc.ErrInvalidPoint, p)
	}
	b, ok := q.(*Ed25519Point)
	if !ok {
		return nil, fmt.Errorf("%w: expected ed25519 point, got %T", ecc.ErrInvalidPoint, q)
	}
	return &Ed25519Point{p: edwards25519.NewIdentityPoint().Add(a.p, b.p)}, nil
}

// ParsePoint decodes a 32-byte point encoding. Points outside the
// prime-order subgroup are rejected, including mixed-order points such as
// G plus a torsion point, so a peer cannot push a torsion component into
// the shared point.
func (c *Ed25519) ParsePoint(b []byte) (ecc.Point, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", ecc.ErrInvalidPoint, len(b))
	}
	p, err := edwards25519.NewIdentityPoint().SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ecc.ErrInvalidPoint, err)
	}
	if !inPrimeOrderSubgroup(p) {
		return nil, fmt.Errorf("%w: point not in the prime-order subgroup", ecc.ErrInvalidPoint)
	}
	return &Ed25519Point{p: p}, nil
}

// orderMinusOne is l-1, the largest canonical scalar.
var orderMinusOne = func() *edwards25519.Scalar {
	s, err := ed25519Scalar(new(big.Int).Sub(ed25519Order, one))
	if err != nil {
		panic("curves: invalid ed25519 order constant")
	}
	return s
}()

// mulByOrder returns [l]p. l itself is not a canonical scalar, so the
// product is formed as [l-1]p + p.
func mulByOrder(p *edwards25519.Point) *edwards25519.Point {
	r := edwards25519.NewIdentityPoint().ScalarMult(orderMinusOne, p)
	return r.Add(r, p)
}

// inPrimeOrderSubgroup reports whether [l]p is the identity.
func inPrimeOrderSubgroup(p *edwards25519.Point) bool {
	return mulByOrder(p).Equal(edwards25519.NewIdentityPoint()) == 1
}

// ed25519Scalar converts k mod l into the little-endian scalar encoding.
func ed25519Scalar(k *big.Int) (*edwards25519.Scalar, error) {
	b, err := reduce(k, ed25519Order, 32)
	if err != nil {
		return nil, err
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(reverse(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ecc.ErrInvalidScalar, err)
	}
	return s, nil
}
