// Package batch fans a single solver.Driver out across many departments
// concurrently, bounded by a fixed worker count. Unlike a long-lived
// retrying job queue, a Runner is one-shot: it accepts a fixed list
// of department ids, blocks until every one of them has been solved (or
// failed), and returns all results together. There is nothing here to
// Start or Stop.
package batch

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-solver/internal/solver"
)

// Generator is the subset of solver.Driver a Runner depends on.
type Generator interface {
	Generate(ctx context.Context, req solver.Request) (*solver.Result, error)
}

// Outcome pairs one department's request with whatever Generate returned.
type Outcome struct {
	DepartmentID string
	Result       *solver.Result
	Err          error
}

// RunnerConfig bounds worker concurrency.
type RunnerConfig struct {
	Workers int
	Logger  *zap.Logger
}

// Runner dispatches a batch of solver.Requests across a bounded pool of
// goroutines and collects every Outcome.
type Runner struct {
	generator Generator
	workers   int
	logger    *zap.Logger
}

// NewRunner builds a Runner. Workers defaults to 1 if non-positive, and
// logger defaults to a no-op logger if nil.
func NewRunner(generator Generator, cfg RunnerConfig) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Runner{generator: generator, workers: cfg.Workers, logger: cfg.Logger}
}

// Run solves every request in requests concurrently (bounded by the
// Runner's worker count) and returns one Outcome per request, in the same
// order requests were given. Run blocks until all requests complete or ctx
// is cancelled; a cancelled request's Outcome carries the cancellation
// error rather than aborting the rest of the batch.
func (r *Runner) Run(ctx context.Context, requests []solver.Request) []Outcome {
	outcomes := make([]Outcome, len(requests))
	if len(requests) == 0 {
		return outcomes
	}

	type indexed struct {
		index int
		req   solver.Request
	}

	jobs := make(chan indexed)
	var wg sync.WaitGroup

	workers := r.workers
	if workers > len(requests) {
		workers = len(requests)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				result, err := r.generator.Generate(ctx, item.req)
				if err != nil {
					r.logger.Warn("department solve failed",
						zap.String("departmentId", item.req.DepartmentID),
						zap.Error(err),
					)
				}
				outcomes[item.index] = Outcome{
					DepartmentID: item.req.DepartmentID,
					Result:       result,
					Err:          err,
				}
			}
		}()
	}

	for i, req := range requests {
		jobs <- indexed{index: i, req: req}
	}
	close(jobs)

	wg.Wait()
	return outcomes
}
