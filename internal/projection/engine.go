package projection

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	applog "goal-forecast/internal/log"
	"goal-forecast/internal/model"
)

// Engine runs seeded Monte Carlo projections on a bounded worker pool.
// The zero value is usable: it runs GOMAXPROCS workers and logs nothing.
type Engine struct {
	// Workers bounds the number of trials in flight. <= 0 means GOMAXPROCS.
	Workers int
	Logger  *applog.Logger
	// Progress, if set, is called after each finished trial with (done, total).
	// It may be called from several goroutines at once.
	Progress func(done, total int)
}

func NewEngine(workers int, logger *applog.Logger) *Engine {
	return &Engine{Workers: workers, Logger: logger}
}

// Simulate validates in, runs every trial and reduces the paths to percentile bands.
func (e *Engine) Simulate(ctx context.Context, in model.ProjectionInput, seed int64) (*ResultSet, error) {
	in = in.WithDefaults()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	paths, err := e.RunPaths(ctx, in, seed)
	if err != nil {
		return nil, err
	}
	return Analyze(paths), nil
}

// RunPaths runs in.NumSimulations trials. Trial i always draws from TrialSource(seed, i),
// so the result does not depend on Workers or on scheduling. Paths are returned in trial order.
func (e *Engine) RunPaths(ctx context.Context, in model.ProjectionInput, seed int64) ([]Path, error) {
	if in.NumSimulations <= 0 {
		return []Path{}, nil
	}
	workers := e.workers()
	start := time.Now()
	e.debug(ctx, "monte carlo run started",
		applog.FieldSimulations, in.NumSimulations,
		applog.FieldMonths, in.Months,
		applog.FieldWorkers, workers,
		applog.FieldSeed, seed,
	)

	step := newMonthlyStep(in)
	paths := make([]Path, in.NumSimulations)
	total := in.NumSimulations
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < total; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			paths[i] = step.path(TrialSource(seed, i))
			if e.Progress != nil {
				e.Progress(int(done.Add(1)), total)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("monte carlo: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("monte carlo: %w", err)
	}

	e.debug(ctx, "monte carlo run finished",
		applog.FieldSimulations, total,
		applog.FieldDuration, time.Since(start).Milliseconds(),
	)
	return paths, nil
}

func (e *Engine) workers() int {
	if e.Workers > 0 {
		return e.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (e *Engine) debug(ctx context.Context, msg string, args ...any) {
	if e.Logger == nil {
		return
	}
	e.Logger.WithComponent(applog.ComponentEngine).DebugContext(ctx, msg, args...)
}
