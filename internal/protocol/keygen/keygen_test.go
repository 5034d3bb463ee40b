package keygen

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-ecbasics/internal/crypto/curves"
	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

func TestGenerate(t *testing.T) {
	for _, name := range curves.SupportedCurves() {
		t.Run(name, func(t *testing.T) {
			group, err := curves.FromName(name)
			require.NoError(t, err)

			kp, err := Generate(group)
			require.NoError(t, err)
			assert.Equal(t, 1, kp.Private.Sign())
			assert.Equal(t, -1, kp.Private.Cmp(group.Order()))

			want, err := group.ScalarBaseMult(kp.Private)
			require.NoError(t, err)
			assert.True(t, kp.Public.Equal(want))
			assert.False(t, kp.Public.IsIdentity())
		})
	}
}

func TestGenerateDistinct(t *testing.T) {
	group := curves.NewSecp256k1Ladder()
	a, err := Generate(group)
	require.NoError(t, err)
	b, err := Generate(group)
	require.NoError(t, err)
	assert.NotEqual(t, 0, a.Private.Cmp(b.Private))
}

func TestFromPrivate(t *testing.T) {
	group := curves.NewP256()

	kp, err := FromPrivate(group, big.NewInt(1))
	require.NoError(t, err)
	assert.True(t, kp.Public.Equal(group.Generator()))

	for _, d := range []*big.Int{nil, big.NewInt(0), big.NewInt(-3), group.Order()} {
		_, err := FromPrivate(group, d)
		assert.ErrorIs(t, err, ecc.ErrInvalidScalar)
	}

	_, err = Generate(nil)
	assert.ErrorIs(t, err, ecc.ErrUnsupported)
}

func TestFromPrivateCopiesScalar(t *testing.T) {
	d := big.NewInt(42)
	kp, err := FromPrivate(curves.NewSecp256k1(), d)
	require.NoError(t, err)
	d.SetInt64(7)
	assert.Equal(t, int64(42), kp.Private.Int64())
}

func TestDestroy(t *testing.T) {
	kp, err := Generate(curves.NewEd25519())
	require.NoError(t, err)
	priv := kp.Private
	kp.Destroy()
	assert.Nil(t, kp.Private)
	assert.Equal(t, 0, priv.Sign())
	kp.Destroy()
}
