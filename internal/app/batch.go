package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/skyviewhq/skyview/internal/domain"
	"github.com/skyviewhq/skyview/pkg/log"
)

// DefaultWorkers is the batch concurrency bound when none is configured.
const DefaultWorkers = 8

// FetchMany runs the pipeline over every raw token with a bounded worker
// pool. The returned slice is index-aligned with the input regardless of
// completion order: result[i] always belongs to raws[i]. A failure on one
// target never aborts the batch; it is recorded in that target's slot.
//
// The whole call fails up front, before any work begins, on an invalid
// worker count or an unknown requested survey.
func (f *Fetcher) FetchMany(ctx context.Context, raws []string, opts Options) ([]domain.FetchResult, error) {
	workers := opts.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}
	if workers < 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", domain.ErrInvalidConfig, workers)
	}
	if err := f.catalog.Validate(opts.Survey); err != nil {
		return nil, err
	}

	if len(raws) == 0 {
		return []domain.FetchResult{}, nil
	}
	if workers > len(raws) {
		workers = len(raws)
	}

	f.logger.Info("batch fetch starting",
		log.Int("targets", len(raws)),
		log.Int("workers", workers),
		log.String("survey", opts.Survey))

	// Each result slot is written exactly once, by the worker that
	// claimed its index; the slice itself needs no locking.
	results := make([]domain.FetchResult, len(raws))
	var next atomic.Int64

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				i := int(next.Add(1)) - 1
				if i >= len(raws) {
					return nil
				}
				results[i] = f.fetchOne(ctx, raws[i], opts)
			}
		})
	}
	// Workers record failures per slot and never return an error.
	_ = g.Wait()

	ok := 0
	for _, r := range results {
		if r.OK() {
			ok++
		}
	}
	f.logger.Info("batch fetch done",
		log.Int("targets", len(raws)),
		log.Int("succeeded", ok))

	return results, nil
}
