package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Task processes a single file.
type Task func(ctx context.Context, path string) (FileResult, error)

// Runner runs a Task over discovered files.
type Runner struct {
	Task Task
}

// New creates a Runner for task.
func New(task Task) *Runner {
	return &Runner{Task: task}
}

// Run discovers files under opts.Paths and runs the task on each with up
// to opts.Jobs workers. Outcomes are returned in discovery order whatever
// order the workers finish in. A cancelled context stops the feed and
// returns the outcomes collected so far with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files, opts.Jobs)
}

// RunFiles runs the task on files without discovery.
func (r *Runner) RunFiles(ctx context.Context, files []string, jobs int) (*Result, error) {
	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: path}
		outcome.Result, outcome.Error = r.Task(ctx, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
