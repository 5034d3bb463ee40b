package weierstrass

import (
	"math/big"

	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

var (
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// Add returns p + q under the curve group law.
//
// Adding a point to itself is rejected with ecc.ErrEqualPoints, compared by
// value; callers must use Double for that case. The result for points that
// are not on the curve is undefined.
func Add(c *Params, p, q Point) (Point, error) {
	if !p.affine {
		return q, nil
	}
	if !q.affine {
		return p, nil
	}
	if p.Equal(q) {
		return Point{}, ecc.NewError("Add", ecc.ErrEqualPoints)
	}

	dx := new(big.Int).Sub(q.x, p.x)
	dx.Mod(dx, c.P)
	if dx.Sign() == 0 {
		// Same x, so q = -p and the chord is vertical.
		sy := new(big.Int).Add(p.y, q.y)
		if sy.Mod(sy, c.P).Sign() == 0 {
			return Infinity(), nil
		}
	}

	inv, err := modInverse(dx, c.P)
	if err != nil {
		return Point{}, ecc.NewError("Add", err)
	}

	// λ = (yq - yp) / (xq - xp)
	lambda := new(big.Int).Sub(q.y, p.y)
	lambda.Mul(lambda, inv)
	lambda.Mod(lambda, c.P)

	return chord(c, lambda, p, q.x), nil
}

// Double returns 2p. It fails with ecc.ErrNotOnCurve if p is not on the
// curve and with ecc.ErrUndefinedInverse when the tangent at p is vertical.
func Double(c *Params, p Point) (Point, error) {
	if !p.affine {
		return Infinity(), nil
	}
	if !IsOnCurve(c, p) {
		return Point{}, ecc.NewError("Double", ecc.ErrNotOnCurve)
	}

	den := new(big.Int).Mul(two, p.y)
	inv, err := modInverse(den.Mod(den, c.P), c.P)
	if err != nil {
		return Point{}, ecc.NewError("Double", err)
	}

	// λ = (3x² + a) / 2y
	lambda := new(big.Int).Mul(p.x, p.x)
	lambda.Mul(lambda, three)
	lambda.Add(lambda, c.A)
	lambda.Mul(lambda, inv)
	lambda.Mod(lambda, c.P)

	return chord(c, lambda, p, p.x), nil
}

// Neg returns -p.
func Neg(c *Params, p Point) Point {
	if !p.affine {
		return p
	}
	y := new(big.Int).Neg(p.y)
	y.Mod(y, c.P)
	return Point{x: new(big.Int).Set(p.x), y: y, affine: true}
}

// chord completes an addition or doubling given the slope λ through p:
// xr = λ² - xp - xq, yr = λ(xp - xr) - yp.
func chord(c *Params, lambda *big.Int, p Point, xq *big.Int) Point {
	xr := new(big.Int).Mul(lambda, lambda)
	xr.Sub(xr, p.x)
	xr.Sub(xr, xq)
	xr.Mod(xr, c.P)

	yr := new(big.Int).Sub(p.x, xr)
	yr.Mul(yr, lambda)
	yr.Sub(yr, p.y)
	yr.Mod(yr, c.P)

	return Point{x: xr, y: yr, affine: true}
}

// modInverse returns a⁻¹ mod m, failing loudly when a ≡ 0.
func modInverse(a, m *big.Int) (*big.Int, error) {
	if new(big.Int).Mod(a, m).Sign() == 0 {
		return nil, ecc.ErrUndefinedInverse
	}
	inv := new(big.Int).ModInverse(a, m)
	if inv == nil {
		return nil, ecc.ErrUndefinedInverse
	}
	return inv, nil
}
