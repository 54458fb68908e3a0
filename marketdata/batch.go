package marketdata

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/finquery/finquery/types"
)

// Batch operations use a partial-success policy: each instrument's outcome is
// reported independently, successes in the result map and failures in a
// parallel error map keyed the same way. Only pre-I/O validation fails the
// whole call.

// FetchBatch retrieves bar series for many instruments, chunked by the
// configured batch size and fetched with bounded concurrency inside each
// chunk.
func (c *Client) FetchBatch(ctx context.Context, instruments []types.Instrument, rng types.Range, interval types.Interval) (map[string]*types.InstrumentSeries, map[string]error, error) {
	if err := types.ValidatePair(interval, rng); err != nil {
		return nil, nil, err
	}
	return batchApply(ctx, c, instruments, func(ctx context.Context, in types.Instrument) (*types.InstrumentSeries, error) {
		return c.FetchData(ctx, in, rng, interval)
	})
}

// FetchInfoBatch retrieves fundamentals for many instruments under the same
// partial-success policy as FetchBatch.
func (c *Client) FetchInfoBatch(ctx context.Context, instruments []types.Instrument) (map[string]*types.InstrumentInfo, map[string]error, error) {
	return batchApply(ctx, c, instruments, c.FetchInfo)
}

// GetCurrentPriceBatch retrieves the latest close for many instruments under
// the same partial-success policy as FetchBatch.
func (c *Client) GetCurrentPriceBatch(ctx context.Context, instruments []types.Instrument) (map[string]float64, map[string]error, error) {
	return batchApply(ctx, c, instruments, c.GetCurrentPrice)
}

// batchApply partitions instruments into chunks and applies fn to each one,
// merging per-instrument outcomes under a single writer. Chunks run in order;
// fetches within a chunk run concurrently up to the configured limit.
func batchApply[T any](ctx context.Context, c *Client, instruments []types.Instrument, fn func(context.Context, types.Instrument) (T, error)) (map[string]T, map[string]error, error) {
	chunks, err := chunkInstruments(instruments, c.cfg.BatchSize)
	if err != nil {
		return nil, nil, err
	}

	results := make(map[string]T, len(instruments))
	failures := make(map[string]error)
	var mu sync.Mutex

	for _, chunk := range chunks {
		g, chunkCtx := errgroup.WithContext(ctx)
		g.SetLimit(c.cfg.Concurrency)

		for _, instrument := range chunk {
			instrument := instrument
			g.Go(func() error {
				key := instrument.RemoteSymbol()
				value, err := fn(chunkCtx, instrument)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failures[key] = err
				} else {
					results[key] = value
				}
				// Per-instrument failures never abort the group.
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
	}

	return results, failures, nil
}

// chunkInstruments partitions instruments into order-preserving chunks of
// exactly size elements, except possibly a shorter final chunk.
func chunkInstruments(instruments []types.Instrument, size int) ([][]types.Instrument, error) {
	if size <= 0 {
		return nil, types.NewValidationError(fmt.Sprintf("batch size must be positive, got %d", size))
	}

	var chunks [][]types.Instrument
	for start := 0; start < len(instruments); start += size {
		end := min(start+size, len(instruments))
		chunks = append(chunks, instruments[start:end:end])
	}
	return chunks, nil
}
