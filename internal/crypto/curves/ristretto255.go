package curves

import (
	"fmt"
	"math/big"

	"github.com/gtank/ristretto255"

	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

// Ristretto255 is the prime-order group built over edwards25519. It has
// the same order as Ed25519 without the cofactor.
type Ristretto255 struct{}

func NewRistretto255() *Ristretto255 {
	return &Ristretto255{}
}

type Ristretto255Point struct {
	e *ristretto255.Element
}

// Bytes returns the canonical 32-byte encoding of the element.
func (p *Ristretto255Point) Bytes() []byte {
	return p.e.Encode(nil)
}

func (p *Ristretto255Point) Equal(other ecc.Point) bool {
	o, ok := other.(*Ristretto255Point)
	if !ok {
		return false
	}
	return p.e.Equal(o.e) == 1
}

func (p *Ristretto255Point) IsIdentity() bool {
	return p.e.Equal(ristretto255.NewIdentityElement()) == 1
}

func (c *Ristretto255) Name() string {
	return "ristretto255"
}

func (c *Ristretto255) Order() *big.Int {
	return new(big.Int).Set(ed25519Order)
}

func (c *Ristretto255) NewScalar() (*big.Int, error) {
	return randomScalar(ed25519Order)
}

func (c *Ristretto255) Generator() ecc.Point {
	g, _ := c.ScalarBaseMult(one)
	return g
}

func (c *Ristretto255) ScalarBaseMult(k *big.Int) (ecc.Point, error) {
	s, err := ristrettoScalar(k)
	if err != nil {
		return nil, err
	}
	return &Ristretto255Point{e: ristretto255.NewIdentityElement().ScalarBaseMult(s)}, nil
}

func (c *Ristretto255) ScalarMult(p ecc.Point, k *big.Int) (ecc.Point, error) {
	pt, ok := p.(*Ristretto255Point)
	if !ok {
		return nil, fmt.Errorf("%w: expected ristretto255 point, got %T", ecc.ErrInvalidPoint, p)
	}
	s, err := ristrettoScalar(k)
	if err != nil {
		return nil, err
	}
	return &Ristretto255Point{e: ristretto255.NewIdentityElement().ScalarMult(s, pt.e)}, nil
}

func (c *Ristretto255) Add(p, q ecc.Point) (ecc.Point, error) {
	a, ok := p.(*Ristretto255Point)
	if !ok {
		return nil, fmt.Errorf("%w: expected ristretto255 point, got %T", ecc.ErrInvalidPoint, p)
	}
	b, ok := q.(*Ristretto255Point)
	if !ok {
		return nil, fmt.Errorf("%w: expected ristretto255 point, got %T", ecc.ErrInvalidPoint, q)
	}
	return &Ristretto255Point{e: ristretto255.NewIdentityElement().Add(a.e, b.e)}, nil
}

// ParsePoint decodes a canonical 32-byte element encoding.
func (c *Ristretto255) ParsePoint(b []byte) (ecc.Point, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", ecc.ErrInvalidPoint, len(b))
	}
	e := ristretto255.NewIdentityElement()
	if _, err := e.SetCanonicalBytes(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ecc.ErrInvalidPoint, err)
	}
	return &Ristretto255Point{e: e}, nil
}

func ristrettoScalar(k *big.Int) (*ristretto255.Scalar, error) {
	b, err := reduce(k, ed25519Order, 32)
	if err != nil {
		return nil, err
	}
	s := ristretto255.NewScalar()
	if _, err := s.SetCanonicalBytes(reverse(b)); err != nil {
		return nil, fmt.Errorf("%w: %v", ecc.ErrInvalidScalar, err)
	}
	return s, nil
}
