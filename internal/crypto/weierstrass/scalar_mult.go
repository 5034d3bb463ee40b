package weierstrass

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

// Method selects a scalar multiplication algorithm.
type Method int

const (
	// MethodDoubleAndAdd scans the scalar from the least significant bit and
	// adds only for set bits. Its running time depends on the scalar, so it
	// must not be used with secrets.
	MethodDoubleAndAdd Method = iota + 1

	// MethodLadder is the Montgomery ladder: one addition and one doubling
	// for every bit, over a scan length that depends only on the curve.
	MethodLadder
)

func (m Method) String() string {
	switch m {
	case MethodDoubleAndAdd:
		return "double-and-add"
	case MethodLadder:
		return "ladder"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod returns the Method named by s.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "double-and-add", "doubleandadd", "daa":
		return MethodDoubleAndAdd, nil
	case "ladder", "montgomery", "montgomery-ladder":
		return MethodLadder, nil
	default:
		return 0, fmt.Errorf("%w: unknown scalar multiplication method %q", ecc.ErrUnsupported, s)
	}
}

// ScalarMult returns k * p using the selected method.
func ScalarMult(c *Params, p Point, k *big.Int, m Method) (Point, error) {
	switch m {
	case MethodDoubleAndAdd:
		return ScalarMultDoubleAndAdd(c, p, k)
	case MethodLadder:
		return ScalarMultLadder(c, p, k)
	default:
		return Point{}, fmt.Errorf("%w: scalar multiplication method %s", ecc.ErrUnsupported, m)
	}
}

// ScalarBaseMult returns k * G for the curve's generator.
func ScalarBaseMult(c *Params, k *big.Int, m Method) (Point, error) {
	g, err := c.Generator()
	if err != nil {
		return Point{}, err
	}
	return ScalarMult(c, g, k, m)
}

// ScalarMultDoubleAndAdd computes k * p by scanning k from bit 0 upwards:
// the accumulator absorbs the running point for every set bit and the
// running point is doubled on every step.
func ScalarMultDoubleAndAdd(c *Params, p Point, k *big.Int) (Point, error) {
	if k.Sign() < 0 {
		return Point{}, ecc.NewError("ScalarMultDoubleAndAdd", ecc.ErrInvalidScalar)
	}

	q := Infinity()
	run := p

	var err error
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			if q, err = sum(c, q, run); err != nil {
				return Point{}, err
			}
		}
		if run, err = Double(c, run); err != nil {
			return Point{}, err
		}
	}
	return q, nil
}

// ScalarMultLadder computes k * p with the Montgomery ladder.
//
// The pair (R0, R1) keeps the invariant R1 - R0 = p. Each step swaps the
// pair according to the current bit, performs R1 = R0 + R1 and R0 = 2R0, and
// swaps back, so the same two operations run whatever the bit value. The
// scan covers max(bitlen(k), bitlen(p)) bits; leading zero bits leave R0 at
// infinity.
func ScalarMultLadder(c *Params, p Point, k *big.Int) (Point, error) {
	if k.Sign() < 0 {
		return Point{}, ecc.NewError("ScalarMultLadder", ecc.ErrInvalidScalar)
	}

	bits := c.P.BitLen()
	if k.BitLen() > bits {
		bits = k.BitLen()
	}

	r := [2]Point{Infinity(), p}

	var err error
	for i := bits - 1; i >= 0; i-- {
		b := k.Bit(i)
		r = [2]Point{r[b], r[1-b]}

		if r[1], err = sum(c, r[0], r[1]); err != nil {
			return Point{}, err
		}
		if r[0], err = Double(c, r[0]); err != nil {
			return Point{}, err
		}

		r = [2]Point{r[b], r[1-b]}
	}
	return r[0], nil
}

// sum adds p and q, doubling instead when the two operands coincide.
func sum(c *Params, p, q Point) (Point, error) {
	r, err := Add(c, p, q)
	if errors.Is(err, ecc.ErrEqualPoints) {
		return Double(c, p)
	}
	return r, err
}
