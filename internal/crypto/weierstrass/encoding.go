package weierstrass

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

// SEC 1 point encoding tags.
const (
	tagInfinity     = 0x00
	tagCompressed   = 0x02
	tagUncompressed = 0x04
)

// Marshal encodes p in the uncompressed form of SEC 1, Version 2.0,
// Section 2.3.3. The point at infinity encodes as a single zero byte.
func Marshal(c *Params, p Point) []byte {
	if !p.affine {
		return []byte{tagInfinity}
	}
	byteLen := c.byteLen()

	ret := make([]byte, 1+2*byteLen)
	ret[0] = tagUncompressed

	p.x.FillBytes(ret[1 : 1+byteLen])
	p.y.FillBytes(ret[1+byteLen:])

	return ret
}

// MarshalCompressed encodes p in the compressed form of SEC 1. This is the
// canonical encoding used for key derivation.
func MarshalCompressed(c *Params, p Point) []byte {
	if !p.affine {
		return []byte{tagInfinity}
	}
	compressed := make([]byte, 1+c.byteLen())
	compressed[0] = byte(p.y.Bit(0)) | tagCompressed
	p.x.FillBytes(compressed[1:])
	return compressed
}

// Unmarshal decodes a point produced by Marshal or MarshalCompressed and
// checks that it lies on the curve.
func Unmarshal(c *Params, data []byte) (Point, error) {
	if len(data) == 0 {
		return Point{}, fmt.Errorf("%w: empty encoding", ecc.ErrInvalidPoint)
	}
	byteLen := c.byteLen()

	switch data[0] {
	case tagInfinity:
		if len(data) != 1 {
			return Point{}, fmt.Errorf("%w: trailing bytes after infinity", ecc.ErrInvalidPoint)
		}
		return Infinity(), nil

	case tagUncompressed:
		if len(data) != 1+2*byteLen {
			return Point{}, fmt.Errorf("%w: expected %d bytes, got %d", ecc.ErrInvalidPoint, 1+2*byteLen, len(data))
		}
		x := new(big.Int).SetBytes(data[1 : 1+byteLen])
		y := new(big.Int).SetBytes(data[1+byteLen:])
		p := Point{x: x, y: y, affine: true}
		if !IsOnCurve(c, p) {
			return Point{}, ecc.NewError("Unmarshal", ecc.ErrNotOnCurve)
		}
		return p, nil

	case tagCompressed, tagCompressed | 1:
		if len(data) != 1+byteLen {
			return Point{}, fmt.Errorf("%w: expected %d bytes, got %d", ecc.ErrInvalidPoint, 1+byteLen, len(data))
		}
		x := new(big.Int).SetBytes(data[1:])
		if x.Cmp(c.P) >= 0 {
			return Point{}, ecc.NewError("Unmarshal", ecc.ErrNotOnCurve)
		}
		y := new(big.Int).ModSqrt(c.polynomial(x), c.P)
		if y == nil {
			return Point{}, ecc.NewError("Unmarshal", ecc.ErrNotOnCurve)
		}
		if byte(y.Bit(0)) != data[0]&1 {
			y.Neg(y).Mod(y, c.P)
		}
		p := Point{x: x, y: y, affine: true}
		if !IsOnCurve(c, p) {
			return Point{}, ecc.NewError("Unmarshal", ecc.ErrNotOnCurve)
		}
		return p, nil

	default:
		return Point{}, fmt.Errorf("%w: unknown encoding tag 0x%02x", ecc.ErrInvalidPoint, data[0])
	}
}
