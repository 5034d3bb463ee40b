package curves

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

var one = big.NewInt(1)

// randomScalar returns a uniformly random integer in [1, order).
func randomScalar(order *big.Int) (*big.Int, error) {
	max := new(big.Int).Sub(order, one)
	k, err := rand.Int(rand.Reader, max)
	if err != nil {
		return nil, fmt.Errorf("curves: failed to sample scalar: %w", err)
	}
	return k.Add(k, one), nil
}

// reduce returns k mod order as a fixed-size big-endian byte slice.
func reduce(k, order *big.Int, size int) ([]byte, error) {
	if k == nil {
		return nil, ecc.ErrInvalidScalar
	}
	r := new(big.Int).Mod(k, order)
	return r.FillBytes(make([]byte, size)), nil
}

// reverse returns a reversed copy of b, converting between the big-endian
// big.Int encoding and the little-endian encoding of the Edwards scalars.
func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}
