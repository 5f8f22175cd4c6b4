package metaads

import (
	"context"
	"log/slog"
	"sync"

	"adsync/internal/logging"
)

// fanOutWidth bounds how many per-item lookups run concurrently.
const fanOutWidth = 10

// fanOut runs fn for every item in fixed-width batches. Each batch executes
// concurrently and is fully awaited before the next starts, so at most
// fanOutWidth requests are outstanding at once. Per-item failures are logged
// and dropped; the caller receives only the successes, in input order.
func fanOut[I any, O any](ctx context.Context, logger *slog.Logger, items []I, fn func(context.Context, I) (O, error)) []O {
	if logger == nil {
		logger = logging.NewNop()
	}

	results := make([]*O, len(items))
	for start := 0; start < len(items); start += fanOutWidth {
		end := start + fanOutWidth
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				out, err := fn(ctx, items[idx])
				if err != nil {
					logger.Warn("fan-out item failed",
						logging.Int("index", idx),
						logging.Error(err))
					return
				}
				results[idx] = &out
			}(i)
		}
		wg.Wait()
	}

	kept := make([]O, 0, len(items))
	for _, r := range results {
		if r != nil {
			kept = append(kept, *r)
		}
	}
	return kept
}
