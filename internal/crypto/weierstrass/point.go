package weierstrass

import (
	"fmt"
	"math/big"
)

// Point is an affine curve point or the point at infinity.
// The zero value is the point at infinity.
type Point struct {
	x, y   *big.Int
	affine bool
}

// Infinity returns the additive identity.
func Infinity() Point {
	return Point{}
}

// NewPoint returns the affine point (x, y). The coordinates are copied.
// The result is not validated; use IsOnCurve for untrusted input.
func NewPoint(x, y *big.Int) Point {
	return Point{
		x:      new(big.Int).Set(x),
		y:      new(big.Int).Set(y),
		affine: true,
	}
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return !p.affine
}

// X returns a copy of the x coordinate, or nil for the point at infinity.
func (p Point) X() *big.Int {
	if !p.affine {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y coordinate, or nil for the point at infinity.
func (p Point) Y() *big.Int {
	if !p.affine {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// Equal compares two points by value.
func (p Point) Equal(q Point) bool {
	if !p.affine || !q.affine {
		return p.affine == q.affine
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

func (p Point) String() string {
	if !p.affine {
		return "(inf)"
	}
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}

// IsOnCurve reports whether p satisfies y² ≡ x³ + ax + b (mod p).
// The point at infinity is always on the curve. Coordinates outside
// [0, p) are rejected.
func IsOnCurve(c *Params, p Point) bool {
	if !p.affine {
		return true
	}
	if p.x.Sign() < 0 || p.x.Cmp(c.P) >= 0 ||
		p.y.Sign() < 0 || p.y.Cmp(c.P) >= 0 {
		return false
	}

	lhs := new(big.Int).Mul(p.y, p.y)
	lhs.Mod(lhs, c.P)

	return lhs.Cmp(c.polynomial(p.x)) == 0
}
