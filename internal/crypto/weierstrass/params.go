// Package weierstrass implements affine point arithmetic on short
// Weierstrass curves y² = x³ + ax + b over a prime field, using math/big
// for the field.
//
// Points are immutable values. The point at infinity is a distinct variant
// (the zero Point), never a pair of sentinel coordinates.
//
// Two scalar multiplication algorithms are provided as a tagged choice
// (Method). MethodDoubleAndAdd leaks the scalar's bit pattern through its
// operation sequence; MethodLadder performs one addition and one doubling
// per bit and must be used for secret scalars.
package weierstrass

import (
	"fmt"
	"math/big"
)

// Params contains the parameters of a short Weierstrass curve.
// A Params value must not be modified after construction.
type Params struct {
	A, B   *big.Int // Curve coefficients
	P      *big.Int // Field prime
	Gx, Gy *big.Int // Generator (optional)
	N      *big.Int // Order of the generator (optional)

	BitSize int    // Size of the field in bits
	Name    string // Canonical name of the curve
}

// NewParams returns curve parameters for y² = x³ + ax + b (mod p).
// The inputs are copied. The curve is assumed non-singular and p prime.
func NewParams(a, b, p *big.Int) *Params {
	return &Params{
		A:       new(big.Int).Mod(a, p),
		B:       new(big.Int).Mod(b, p),
		P:       new(big.Int).Set(p),
		BitSize: p.BitLen(),
	}
}

// WithGenerator returns a copy of the parameters carrying a generator
// (gx, gy) of order n and a name.
func (c *Params) WithGenerator(name string, gx, gy, n *big.Int) *Params {
	out := *c
	out.Name = name
	out.Gx = new(big.Int).Set(gx)
	out.Gy = new(big.Int).Set(gy)
	out.N = new(big.Int).Set(n)
	return &out
}

// Generator returns the base point, or an error if the curve has none.
func (c *Params) Generator() (Point, error) {
	if c.Gx == nil || c.Gy == nil {
		return Point{}, fmt.Errorf("weierstrass: curve %q has no generator", c.Name)
	}
	return NewPoint(c.Gx, c.Gy), nil
}

func (c *Params) String() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("y^2 = x^3 + %sx + %s (mod %s)", c.A, c.B, c.P)
}

// polynomial returns x³ + ax + b (mod p).
func (c *Params) polynomial(x *big.Int) *big.Int {
	x3 := new(big.Int).Mul(x, x)
	x3.Mul(x3, x)

	ax := new(big.Int).Mul(c.A, x)

	x3.Add(x3, ax)
	x3.Add(x3, c.B)
	x3.Mod(x3, c.P)

	return x3
}

// byteLen is the length of one encoded field element.
func (c *Params) byteLen() int {
	bits := c.BitSize
	if bits == 0 {
		bits = c.P.BitLen()
	}
	return (bits + 7) / 8
}
