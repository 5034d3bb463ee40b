package sign

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

// Item is one signature to check in a batch.
type Item struct {
	Public    ecc.Point
	Message   []byte
	Signature []byte
}

// VerifyBatch verifies every item independently and returns one result per
// item in input order. At most limit verifications run at once; a limit
// below one uses GOMAXPROCS. The error is non-nil only when ctx is done
// before the batch completes.
func VerifyBatch(ctx context.Context, group ecc.Group, items []Item, limit int) ([]bool, error) {
	if limit < 1 {
		limit = runtime.GOMAXPROCS(0)
	}
	results := make([]bool, len(items))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i := range items {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = Verify(group, items[i].Public, items[i].Message, items[i].Signature)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
