// Package timing measures how the running time of scalar multiplication
// depends on the Hamming weight of the scalar.
//
// Double-and-add performs one addition per set bit, so its mean time grows
// with the weight. The Montgomery ladder does the same work for every bit
// and should show a low/high ratio close to one.
package timing

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/smallyu/go-ecbasics/internal/crypto/weierstrass"
)

var ErrInvalidWeight = errors.New("timing: invalid Hamming weight")

// Options describes one timing run.
type Options struct {
	Params  *weierstrass.Params
	Methods []weierstrass.Method
	Weights []int
	Bits    int
	Samples int
	Warmup  int
	// Rand defaults to crypto/rand.
	Rand io.Reader
}

// Measurement is the result for one method and weight.
type Measurement struct {
	Method  weierstrass.Method
	Weight  int
	Samples int
	Mean    time.Duration
	Min     time.Duration
	Max     time.Duration
}

// Report collects all measurements of a run.
type Report struct {
	Curve        string
	Bits         int
	Measurements []Measurement
}

// Ratio returns mean(highest weight) / mean(lowest weight) for method, or
// zero when the method was not measured at two weights.
func (r *Report) Ratio(method weierstrass.Method) float64 {
	var lo, hi *Measurement
	for i := range r.Measurements {
		m := &r.Measurements[i]
		if m.Method != method {
			continue
		}
		if lo == nil || m.Weight < lo.Weight {
			lo = m
		}
		if hi == nil || m.Weight > hi.Weight {
			hi = m
		}
	}
	if lo == nil || hi == nil || lo == hi || lo.Mean == 0 {
		return 0
	}
	return float64(hi.Mean) / float64(lo.Mean)
}

// Run times every method at every weight. Scalars have exactly opts.Bits
// bits and the requested number of set bits, with the top bit always set.
func Run(ctx context.Context, opts Options, logger zerolog.Logger) (*Report, error) {
	if opts.Params == nil {
		return nil, errors.New("timing: missing curve parameters")
	}
	g, err := opts.Params.Generator()
	if err != nil {
		return nil, err
	}
	if opts.Samples < 1 {
		return nil, fmt.Errorf("timing: samples must be positive, got %d", opts.Samples)
	}
	if opts.Rand == nil {
		opts.Rand = rand.Reader
	}
	weights := append([]int(nil), opts.Weights...)
	sort.Ints(weights)

	report := &Report{Curve: opts.Params.Name, Bits: opts.Bits}
	for _, method := range opts.Methods {
		for _, w := range weights {
			scalars := make([]*big.Int, opts.Warmup+opts.Samples)
			for i := range scalars {
				if scalars[i], err = ScalarWithWeight(opts.Rand, opts.Bits, w); err != nil {
					return nil, err
				}
			}

			m := Measurement{Method: method, Weight: w, Samples: opts.Samples}
			var total time.Duration
			for i, k := range scalars {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				start := time.Now()
				if _, err := weierstrass.ScalarMult(opts.Params, g, k, method); err != nil {
					return nil, err
				}
				d := time.Since(start)
				if i < opts.Warmup {
					continue
				}
				total += d
				if m.Min == 0 || d < m.Min {
					m.Min = d
				}
				if d > m.Max {
					m.Max = d
				}
			}
			m.Mean = total / time.Duration(opts.Samples)
			report.Measurements = append(report.Measurements, m)

			logger.Debug().
				Stringer("method", method).
				Int("weight", w).
				Dur("mean", m.Mean).
				Msg("series done")
		}
		logger.Info().
			Stringer("method", method).
			Float64("ratio", report.Ratio(method)).
			Msg("method done")
	}
	return report, nil
}

// ScalarWithWeight returns a random integer of exactly bits bits with
// weight bits set. The most significant bit counts toward the weight.
func ScalarWithWeight(rnd io.Reader, bits, weight int) (*big.Int, error) {
	if bits < 1 || weight < 1 || weight > bits {
		return nil, fmt.Errorf("%w: %d of %d bits", ErrInvalidWeight, weight, bits)
	}

	// Partial Fisher-Yates over the lower bit positions.
	positions := make([]int, bits-1)
	for i := range positions {
		positions[i] = i
	}
	k := new(big.Int).SetBit(new(big.Int), bits-1, 1)
	for i := 0; i < weight-1; i++ {
		j, err := rand.Int(rnd, big.NewInt(int64(len(positions)-i)))
		if err != nil {
			return nil, fmt.Errorf("timing: %w", err)
		}
		pick := i + int(j.Int64())
		positions[i], positions[pick] = positions[pick], positions[i]
		k.SetBit(k, positions[i], 1)
	}
	return k, nil
}
