// Package schedule implements the cooperative task model of spec §5:
// scans and operators yield at batch boundaries rather than running to
// completion, so a query's goroutines share cancellation cleanly and a
// long scan cannot starve the rest of the engine.
package schedule

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Batch is one unit of cooperative work produced by a YieldFunc; Columns
// is a caller-supplied column-count hint used only for pre-sizing
// downstream buffers.
type Batch struct {
	Columns int
}

// YieldFunc produces the next batch, or (zero Batch, false, nil) at
// end-of-stream, or an error if the scan failed. It must check
// ctx.Err() at each call and return promptly on cancellation (spec §5
// "in-flight scans observe cancellation at the next batch boundary").
type YieldFunc func(ctx context.Context) (Batch, bool, error)

// CooperativeScan wraps a YieldFunc so that its caller can drive it one
// batch at a time without blocking the group's other goroutines for
// longer than a single batch.
type CooperativeScan struct {
	yield YieldFunc
}

func NewCooperativeScan(yield YieldFunc) *CooperativeScan {
	return &CooperativeScan{yield: yield}
}

// Next returns the next batch, honoring ctx cancellation between
// batches.
func (s *CooperativeScan) Next(ctx context.Context) (Batch, bool, error) {
	select {
	case <-ctx.Done():
		return Batch{}, false, ctx.Err()
	default:
	}
	return s.yield(ctx)
}

// Drain pulls every batch from s, invoking fn per batch, stopping early
// on the first error or on context cancellation. It is the cooperative
// equivalent of "run this scan to completion", used for operators with
// no downstream backpressure (e.g. building a hash table for a join).
func Drain(ctx context.Context, s *CooperativeScan, fn func(Batch) error) error {
	for {
		b, ok, err := s.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(b); err != nil {
			return err
		}
	}
}

// FanOut runs each scan concurrently, feeding its batches to fn, sharing
// one cancellation scope: the first scan or fn to fail cancels the
// others (spec §5 "fan out independent scan/operator goroutines with
// shared cancellation"). It blocks until every scan has finished or one
// has failed.
func FanOut(ctx context.Context, scans []*CooperativeScan, fn func(scanIndex int, b Batch) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range scans {
		i, s := i, s
		g.Go(func() error {
			return Drain(gctx, s, func(b Batch) error { return fn(i, b) })
		})
	}
	return g.Wait()
}
