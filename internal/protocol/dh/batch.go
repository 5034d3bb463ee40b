package dh

import (
	"context"
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

// Result is the outcome of one decryption in a batch.
type Result struct {
	Plaintext []byte
	Err       error
}

// DecryptBatch decrypts each ciphertext independently with at most limit
// running at once; a limit below one uses GOMAXPROCS. Per-item failures
// are reported in the results. The returned error is non-nil only when
// ctx is done before the batch completes.
func DecryptBatch(ctx context.Context, group ecc.Group, priv *big.Int, cts []*Ciphertext, limit int, opts ...Option) ([]Result, error) {
	if limit < 1 {
		limit = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(cts))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i := range cts {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			pt, err := Decrypt(group, priv, cts[i], opts...)
			results[i] = Result{Plaintext: pt, Err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
