package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Worker processes batches of dated drops concurrently. Drops are
// independent directories, so a failed drop never blocks the others; the
// first error is reported after the whole batch has been attempted.
type Worker struct {
	runner *Runner
	config Config
}

// NewWorker creates a worker around the given runner.
func NewWorker(runner *Runner, config Config) *Worker {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultConfig().WorkerCount
	}
	return &Worker{
		runner: runner,
		config: config,
	}
}

// ProcessDrops reconciles every drop using a pool of workers.
func (w *Worker) ProcessDrops(ctx context.Context, drops []Drop) error {
	if len(drops) == 0 {
		return nil
	}

	jobChan := make(chan Drop, len(drops))
	errChan := make(chan error, len(drops))
	var wg sync.WaitGroup

	for i := 0; i < w.config.WorkerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for drop := range jobChan {
				if err := w.processDrop(ctx, drop); err != nil {
					select {
					case errChan <- err:
					default:
					}
				}
			}
		}()
	}

	for _, drop := range drops {
		jobChan <- drop
	}
	close(jobChan)

	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return err
	}
	return nil
}

func (w *Worker) processDrop(ctx context.Context, drop Drop) error {
	log.Printf("Processing drop %s", drop.Date.Format("2006-01-02"))

	run, err := w.runner.Run(ctx, drop.InputDir, drop.OutputDir)
	if err != nil {
		return fmt.Errorf("drop %s: %w", drop.Date.Format("2006-01-02"), err)
	}

	log.Printf("Drop %s done: run %s", drop.Date.Format("2006-01-02"), run.ID)
	return nil
}

// RetryFailed re-executes every failed run recorded in the ledger. Each
// retry is a fresh run over the same directories; the failed row stays in
// the ledger for audit.
func (w *Worker) RetryFailed(ctx context.Context) (int, error) {
	if w.runner.repo == nil {
		return 0, fmt.Errorf("retry requires a ledger repository")
	}

	failed, err := w.runner.repo.GetFailedRuns(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch failed runs: %w", err)
	}
	if len(failed) == 0 {
		log.Printf("No failed runs to retry")
		return 0, nil
	}

	log.Printf("Retrying %d failed runs", len(failed))

	retried := 0
	for _, prev := range failed {
		if _, err := w.runner.Run(ctx, prev.InputDir, prev.OutputDir); err != nil {
			log.Printf("Retry of run %s failed again: %v", prev.ID, err)
			continue
		}
		retried++
	}
	return retried, nil
}
