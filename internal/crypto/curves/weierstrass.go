package curves

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/smallyu/go-ecbasics/internal/crypto/weierstrass"
	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

// Weierstrass is a group over short Weierstrass parameters that uses the
// affine arithmetic of the weierstrass package. Every scalar multiplication
// goes through the Montgomery ladder.
type Weierstrass struct {
	params *weierstrass.Params
	signer ecc.DigestSigner
}

// NewWeierstrass returns a group over params. The parameters must carry a
// generator and its order. The returned group does not implement ECDSA.
func NewWeierstrass(params *weierstrass.Params) (*Weierstrass, error) {
	if params == nil || params.N == nil || params.N.Sign() <= 0 {
		return nil, fmt.Errorf("curves: %w: parameters without a group order", ecc.ErrUnsupported)
	}
	if _, err := params.Generator(); err != nil {
		return nil, err
	}
	return &Weierstrass{params: params}, nil
}

// NewSecp256k1Ladder returns secp256k1 over the ladder arithmetic. Signing
// is delegated to the decred backend, which reads the same SEC 1 keys.
func NewSecp256k1Ladder() *Weierstrass {
	return &Weierstrass{params: weierstrass.Secp256k1(), signer: NewSecp256k1()}
}

// NewP256 returns NIST P-256 over the ladder arithmetic with crypto/ecdsa
// as its signing backend.
func NewP256() *Weierstrass {
	return &Weierstrass{params: weierstrass.P256(), signer: p256Signer{}}
}

// WeierstrassPoint wraps an affine point together with its parameters.
type WeierstrassPoint struct {
	p      weierstrass.Point
	params *weierstrass.Params
}

// Affine returns the underlying affine point.
func (p *WeierstrassPoint) Affine() weierstrass.Point {
	return p.p
}

// Bytes returns the compressed SEC 1 encoding.
func (p *WeierstrassPoint) Bytes() []byte {
	return weierstrass.MarshalCompressed(p.params, p.p)
}

func (p *WeierstrassPoint) Equal(other ecc.Point) bool {
	o, ok := other.(*WeierstrassPoint)
	if !ok || o.params != p.params {
		return false
	}
	return p.p.Equal(o.p)
}

func (p *WeierstrassPoint) IsIdentity() bool {
	return p.p.IsInfinity()
}

// Params returns the curve parameters of the group.
func (c *Weierstrass) Params() *weierstrass.Params {
	return c.params
}

func (c *Weierstrass) Name() string {
	switch c.params.Name {
	case "secp256k1":
		return "secp256k1-ladder"
	case "P-256":
		return "p256"
	}
	return c.params.Name
}

func (c *Weierstrass) Order() *big.Int {
	return new(big.Int).Set(c.params.N)
}

func (c *Weierstrass) NewScalar() (*big.Int, error) {
	return randomScalar(c.params.N)
}

func (c *Weierstrass) Generator() ecc.Point {
	g, _ := c.params.Generator()
	return c.wrap(g)
}

func (c *Weierstrass) ScalarBaseMult(k *big.Int) (ecc.Point, error) {
	g, err := c.params.Generator()
	if err != nil {
		return nil, err
	}
	return c.mult(g, k)
}

func (c *Weierstrass) ScalarMult(p ecc.Point, k *big.Int) (ecc.Point, error) {
	pt, err := c.unwrap(p)
	if err != nil {
		return nil, err
	}
	return c.mult(pt, k)
}

// Add returns p+q, doubling when the operands are equal.
func (c *Weierstrass) Add(p, q ecc.Point) (ecc.Point, error) {
	a, err := c.unwrap(p)
	if err != nil {
		return nil, err
	}
	b, err := c.unwrap(q)
	if err != nil {
		return nil, err
	}
	r, err := weierstrass.Add(c.params, a, b)
	if errors.Is(err, ecc.ErrEqualPoints) {
		r, err = weierstrass.Double(c.params, a)
	}
	if err != nil {
		return nil, err
	}
	return c.wrap(r), nil
}

func (c *Weierstrass) ParsePoint(b []byte) (ecc.Point, error) {
	p, err := weierstrass.Unmarshal(c.params, b)
	if err != nil {
		return nil, err
	}
	return c.wrap(p), nil
}

// SignDigest implements ecc.DigestSigner when the group has a backend.
func (c *Weierstrass) SignDigest(priv *big.Int, digest []byte) ([]byte, error) {
	if c.signer == nil {
		return nil, fmt.Errorf("curves: %w: no ECDSA backend for %s", ecc.ErrUnsupported, c.Name())
	}
	return c.signer.SignDigest(priv, digest)
}

func (c *Weierstrass) VerifyDigest(pub ecc.Point, digest, sig []byte) bool {
	if c.signer == nil {
		return false
	}
	return c.signer.VerifyDigest(pub, digest, sig)
}

func (c *Weierstrass) mult(p weierstrass.Point, k *big.Int) (ecc.Point, error) {
	if k == nil {
		return nil, ecc.ErrInvalidScalar
	}
	r, err := weierstrass.ScalarMult(c.params, p, new(big.Int).Mod(k, c.params.N), weierstrass.MethodLadder)
	if err != nil {
		return nil, err
	}
	return c.wrap(r), nil
}

func (c *Weierstrass) wrap(p weierstrass.Point) *WeierstrassPoint {
	return &WeierstrassPoint{p: p, params: c.params}
}

func (c *Weierstrass) unwrap(p ecc.Point) (weierstrass.Point, error) {
	pt, ok := p.(*WeierstrassPoint)
	if !ok || pt.params != c.params {
		return weierstrass.Point{}, fmt.Errorf("%w: expected %s point, got %T", ecc.ErrInvalidPoint, c.Name(), p)
	}
	return pt.p, nil
}

// p256Signer signs with crypto/ecdsa. Public keys are derived through the
// ladder so the private scalar never reaches a variable-time path here.
type p256Signer struct{}

func (p256Signer) SignDigest(priv *big.Int, digest []byte) ([]byte, error) {
	params := weierstrass.P256()
	if priv == nil {
		return nil, ecc.ErrInvalidScalar
	}
	d := new(big.Int).Mod(priv, params.N)
	if d.Sign() == 0 {
		return nil, ecc.ErrInvalidScalar
	}
	pub, err := weierstrass.ScalarBaseMult(params, d, weierstrass.MethodLadder)
	if err != nil {
		return nil, err
	}
	key := &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: elliptic.P256(), X: pub.X(), Y: pub.Y()},
		D:         d,
	}
	return ecdsa.SignASN1(rand.Reader, key, digest)
}

func (p256Signer) VerifyDigest(pub ecc.Point, digest, sig []byte) bool {
	if pub == nil || pub.IsIdentity() {
		return false
	}
	pt, err := weierstrass.Unmarshal(weierstrass.P256(), pub.Bytes())
	if err != nil || pt.IsInfinity() {
		return false
	}
	key := &ecdsa.PublicKey{Curve: elliptic.P256(), X: pt.X(), Y: pt.Y()}
	return ecdsa.VerifyASN1(key, digest, sig)
}
