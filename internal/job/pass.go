package job

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"richards/internal/sched"
)

// ErrChecksumMismatch is returned when a verified run disagrees with the
// known-good checksum for its count.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Spec describes one pass of simulation runs.
type Spec struct {
	Inner    int  // runs per pass
	Count    int  // idle countdown per run
	Parallel int  // max concurrent runs; <= 1 runs them in order
	Verify   bool // compare each run against sched.Expected

	// Options are applied to every run's scheduler. Observers are only safe
	// with Parallel <= 1.
	Options []sched.Option
}

// Sum accumulates the results of a pass.
type Sum struct {
	Runs      int
	Delivered int
	Held      int
	Steps     int
}

func (s *Sum) add(r sched.Result) {
	s.Runs++
	s.Delivered += r.Delivered
	s.Held += r.Held
	s.Steps += r.Steps
}

// Pass performs spec.Inner independent runs of the canonical graph.
// Each run owns its scheduler, so parallel runs share nothing.
func Pass(ctx context.Context, spec Spec) (Sum, error) {
	want, verify := sched.Expected(spec.Count)
	verify = verify && spec.Verify

	if spec.Parallel <= 1 {
		var sum Sum
		for i := 0; i < spec.Inner; i++ {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			r, err := runOne(spec, want, verify)
			if err != nil {
				return sum, err
			}
			sum.add(r)
		}
		return sum, nil
	}

	results := make([]sched.Result, spec.Inner)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(spec.Parallel)
	for i := 0; i < spec.Inner; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := runOne(spec, want, verify)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Sum{}, err
	}

	var sum Sum
	for _, r := range results {
		sum.add(r)
	}
	return sum, nil
}

func runOne(spec Spec, want sched.Checksum, verify bool) (sched.Result, error) {
	r, err := sched.RunCanonical(spec.Count, spec.Options...)
	if err != nil {
		return r, err
	}
	if verify && r.Checksum != want {
		return r, fmt.Errorf("%w: count %d got delivered=%d held=%d, want delivered=%d held=%d",
			ErrChecksumMismatch, spec.Count, r.Delivered, r.Held, want.Delivered, want.Held)
	}
	return r, nil
}
