// Package keygen generates elliptic curve key pairs over any ecc.Group.
package keygen

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

// KeyPair holds a private scalar d in [1, order) and its public point d*G.
type KeyPair struct {
	Group   ecc.Group
	Private *big.Int
	Public  ecc.Point
}

// Generate samples a fresh key pair. Groups backed by the weierstrass
// arithmetic compute the public point with the Montgomery ladder.
func Generate(group ecc.Group) (*KeyPair, error) {
	if group == nil {
		return nil, fmt.Errorf("keygen: %w: nil group", ecc.ErrUnsupported)
	}
	d, err := group.NewScalar()
	if err != nil {
		return nil, fmt.Errorf("keygen: %w", err)
	}
	return FromPrivate(group, d)
}

// FromPrivate rebuilds a key pair from an existing private scalar.
func FromPrivate(group ecc.Group, d *big.Int) (*KeyPair, error) {
	if d == nil || d.Sign() <= 0 || d.Cmp(group.Order()) >= 0 {
		return nil, ecc.NewError("FromPrivate", ecc.ErrInvalidScalar)
	}
	pub, err := group.ScalarBaseMult(d)
	if err != nil {
		return nil, fmt.Errorf("keygen: %w", err)
	}
	return &KeyPair{
		Group:   group,
		Private: new(big.Int).Set(d),
		Public:  pub,
	}, nil
}

// Destroy clears the private scalar. The key pair must not be used after.
func (k *KeyPair) Destroy() {
	if k == nil || k.Private == nil {
		return
	}
	words := k.Private.Bits()
	for i := range words {
		words[i] = 0
	}
	k.Private.SetInt64(0)
	k.Private = nil
}
