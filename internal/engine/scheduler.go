package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/semaphore"

	"auh/internal/build"
	"auh/internal/pkgname"
)

// Request is one package to install, with its pipeline already resolved.
// A request is consumed exactly once and yields exactly one Result.
type Request struct {
	Name     string
	Pipeline build.Pipeline
}

// JobRunner executes one build job inside scratch and returns its classified
// result. scratch is a uniquely named directory owned by that job alone.
type JobRunner func(ctx context.Context, name string, pipeline build.Pipeline, scratch string) build.Result

// Scheduler dispatches build jobs under a hard concurrency cap.
type Scheduler struct {
	run         JobRunner
	concurrency int

	// scratchBase overrides the scratch-directory parent (tests); empty
	// means the system temp directory.
	scratchBase string
}

func NewScheduler(run JobRunner, concurrency int) (*Scheduler, error) {
	if run == nil {
		return nil, errors.New("job runner is nil")
	}
	if concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be >= 1, got %d", concurrency)
	}
	return &Scheduler{run: run, concurrency: concurrency}, nil
}

// Execute streams one Result per request.
//
// Channel semantics:
//   - In the normal (non-canceled) case, exactly one Result is sent per request.
//   - On context cancellation, the scheduler stops admitting promptly; it may
//     emit fewer than len(requests) results.
//   - The results channel and error channel are both closed reliably.
//
// Admission: requests are taken in order. An invalid name is recorded
// immediately without consuming a worker slot or spawning any subprocess.
// A valid request waits for a free slot (never more than the cap live at
// once); a completing worker frees its slot for the next pending request, so
// refill is greedy rather than batched. Completion order is unconstrained.
func (s *Scheduler) Execute(ctx context.Context, requests []Request) (<-chan build.Result, <-chan error) {
	resultsCh := make(chan build.Result)
	errCh := make(chan error, 1)

	go func() {
		defer close(resultsCh)
		defer close(errCh)

		trySendErr := func(err error) {
			if err == nil {
				return
			}
			select {
			case errCh <- err:
			default:
			}
		}

		if ctx == nil {
			trySendErr(errors.New("context is nil"))
			return
		}
		if s == nil || s.run == nil {
			trySendErr(errors.New("scheduler is not initialized; use NewScheduler"))
			return
		}
		if s.concurrency <= 0 {
			trySendErr(fmt.Errorf("scheduler concurrency must be >= 1, got %d", s.concurrency))
			return
		}

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		send := func(res build.Result) {
			select {
			case resultsCh <- res:
			case <-runCtx.Done():
			}
		}

		// Limit live workers (hard cap, greedy refill).
		sem := semaphore.NewWeighted(int64(s.concurrency))
		var wg sync.WaitGroup

		for _, req := range requests {
			if runCtx.Err() != nil {
				break
			}

			if !pkgname.Valid(req.Name) {
				send(build.Result{
					Package:  req.Name,
					Pipeline: req.Pipeline,
					Kind:     build.KindInvalidName,
					Message:  "invalid package name",
				})
				continue
			}

			if err := sem.Acquire(runCtx, 1); err != nil {
				break
			}

			wg.Add(1)
			go func(req Request) {
				defer wg.Done()
				defer sem.Release(1)

				scratch, err := os.MkdirTemp(s.scratchBase, "auh-"+req.Name+"-")
				if err != nil {
					send(build.Result{
						Package:  req.Name,
						Pipeline: req.Pipeline,
						Kind:     build.KindDispatchFailure,
						Message:  fmt.Sprintf("create scratch directory: %v", err),
					})
					return
				}
				defer os.RemoveAll(scratch)

				if runCtx.Err() != nil {
					return
				}
				send(s.run(runCtx, req.Name, req.Pipeline, scratch))
			}(req)
		}

		wg.Wait()
		trySendErr(ctx.Err())
	}()

	return resultsCh, errCh
}
