package timing

import (
	"context"
	"crypto/rand"
	"math/big"
	"math/bits"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-ecbasics/internal/crypto/weierstrass"
)

func popcount(k *big.Int) int {
	n := 0
	for _, w := range k.Bits() {
		n += bits.OnesCount(uint(w))
	}
	return n
}

func TestScalarWithWeight(t *testing.T) {
	for _, tc := range []struct{ bits, weight int }{
		{8, 1}, {8, 8}, {64, 3}, {256, 16}, {256, 128}, {256, 256},
	} {
		for i := 0; i < 10; i++ {
			k, err := ScalarWithWeight(rand.Reader, tc.bits, tc.weight)
			require.NoError(t, err)
			assert.Equal(t, tc.bits, k.BitLen())
			assert.Equal(t, tc.weight, popcount(k))
		}
	}

	for _, tc := range []struct{ bits, weight int }{{0, 1}, {8, 0}, {8, 9}} {
		_, err := ScalarWithWeight(rand.Reader, tc.bits, tc.weight)
		assert.ErrorIs(t, err, ErrInvalidWeight)
	}
}

func TestRun(t *testing.T) {
	report, err := Run(context.Background(), Options{
		Params:  weierstrass.Secp256k1(),
		Methods: []weierstrass.Method{weierstrass.MethodDoubleAndAdd, weierstrass.MethodLadder},
		Weights: []int{60, 4},
		Bits:    64,
		Samples: 3,
		Warmup:  1,
	}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "secp256k1", report.Curve)
	require.Len(t, report.Measurements, 4)
	assert.Equal(t, 4, report.Measurements[0].Weight, "weights are sorted")
	for _, m := range report.Measurements {
		assert.Equal(t, 3, m.Samples)
		assert.Positive(t, m.Mean)
		assert.LessOrEqual(t, m.Min, m.Mean)
		assert.GreaterOrEqual(t, m.Max, m.Mean)
	}
	assert.Positive(t, report.Ratio(weierstrass.MethodLadder))
	assert.Zero(t, report.Ratio(weierstrass.Method(0)))
}

func TestRunErrors(t *testing.T) {
	_, err := Run(context.Background(), Options{}, zerolog.Nop())
	assert.Error(t, err)

	noGen := weierstrass.NewParams(big.NewInt(0), big.NewInt(7), big.NewInt(10477))
	_, err = Run(context.Background(), Options{Params: noGen, Samples: 1}, zerolog.Nop())
	assert.Error(t, err)

	_, err = Run(context.Background(), Options{Params: weierstrass.P256()}, zerolog.Nop())
	assert.Error(t, err)

	_, err = Run(context.Background(), Options{
		Params: weierstrass.P256(), Methods: []weierstrass.Method{weierstrass.MethodLadder},
		Weights: []int{20}, Bits: 16, Samples: 1,
	}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrInvalidWeight)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, Options{
		Params: weierstrass.P256(), Methods: []weierstrass.Method{weierstrass.MethodLadder},
		Weights: []int{2}, Bits: 16, Samples: 1,
	}, zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReportRatio(t *testing.T) {
	r := &Report{Measurements: []Measurement{
		{Method: weierstrass.MethodDoubleAndAdd, Weight: 10, Mean: 100},
		{Method: weierstrass.MethodDoubleAndAdd, Weight: 200, Mean: 300},
		{Method: weierstrass.MethodDoubleAndAdd, Weight: 50, Mean: 150},
		{Method: weierstrass.MethodLadder, Weight: 10, Mean: 400},
	}}
	assert.InDelta(t, 3.0, r.Ratio(weierstrass.MethodDoubleAndAdd), 1e-9)
	assert.Zero(t, r.Ratio(weierstrass.MethodLadder))
}
