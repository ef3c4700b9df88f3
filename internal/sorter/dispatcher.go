package sorter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Observer receives progress callbacks from a Dispatcher.
// FileDone is called concurrently from worker goroutines.
type Observer interface {
	DispatchStarted(total int)
	FileDone(res Result)
}

type nopObserver struct{}

func (nopObserver) DispatchStarted(int) {}
func (nopObserver) FileDone(Result)     {}

// Dispatcher fans a list of files out to a FileProcessor with bounded
// parallelism. Each file is processed exactly once, in no particular order.
type Dispatcher struct {
	processor FileProcessor
	workers   int
	observer  Observer
}

// NewDispatcher creates a Dispatcher. workers <= 0 selects runtime.NumCPU().
func NewDispatcher(p FileProcessor, workers int) *Dispatcher {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Dispatcher{processor: p, workers: workers, observer: nopObserver{}}
}

// Workers returns the parallelism bound.
func (d *Dispatcher) Workers() int { return d.workers }

// SetObserver installs o. A nil observer disables callbacks.
func (d *Dispatcher) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	d.observer = o
}

// Dispatch processes files and returns one Result per file, index-aligned
// with files. The index of each file is its fallback ordinal.
//
// When ctx is cancelled no further files are started; files already in
// flight finish, and the rest are reported as OutcomeCancelled.
func (d *Dispatcher) Dispatch(ctx context.Context, files []FileHandle, outRoot string) []Result {
	results := make([]Result, len(files))
	d.observer.DispatchStarted(len(files))

	var g errgroup.Group
	g.SetLimit(d.workers)

	for i, h := range files {
		i, h := i, h
		if ctx.Err() != nil {
			for j := i; j < len(files); j++ {
				results[j] = Result{File: files[j], Ordinal: j, Outcome: OutcomeCancelled, Err: ctx.Err()}
				d.observer.FileDone(results[j])
			}
			break
		}
		g.Go(func() error {
			results[i] = d.processor.Process(ctx, h, i, outRoot)
			d.observer.FileDone(results[i])
			return nil
		})
	}

	// Workers never return errors; per-file failures live in results.
	_ = g.Wait()
	return results
}
