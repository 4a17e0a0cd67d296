package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/estoqueops/estqop/internal/loader"
	"github.com/estoqueops/estqop/internal/reconcile"
	"github.com/estoqueops/estqop/internal/report"
)

// MissingInputError reports which input files a run directory lacks.
type MissingInputError struct {
	Paths []string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input files not found: %s", strings.Join(e.Paths, ", "))
}

// Runner executes one reconciliation over an input directory and writes the
// three report files to an output directory. A nil repository is allowed;
// the run then executes without a ledger record.
type Runner struct {
	repo *Repository
}

// NewRunner creates a runner backed by the given ledger repository.
func NewRunner(repo *Repository) *Runner {
	return &Runner{repo: repo}
}

// Validate checks that the input directory holds both input files.
func (r *Runner) Validate(inputDir string) error {
	var missing []string
	for _, name := range []string{ProductsFilename, SalesFilename} {
		path := filepath.Join(inputDir, name)
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			abs, absErr := filepath.Abs(path)
			if absErr != nil {
				abs = path
			}
			missing = append(missing, abs)
		}
	}
	if len(missing) > 0 {
		return &MissingInputError{Paths: missing}
	}
	return nil
}

// Run reconciles inputDir into outputDir and records the outcome in the
// ledger. The returned Run carries the row counts even when the ledger is
// disabled.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		InputDir:  inputDir,
		OutputDir: outputDir,
		Status:    StatusPending,
		StartedAt: time.Now(),
	}

	if r.repo != nil {
		if err := r.repo.CreateRun(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to create run record: %w", err)
		}
	}

	if err := r.process(ctx, run); err != nil {
		r.markFailed(ctx, run, err)
		return run, err
	}

	now := time.Now()
	run.Status = StatusCompleted
	run.CompletedAt = &now
	if r.repo != nil {
		if err := r.repo.UpdateRun(ctx, run); err != nil {
			return run, fmt.Errorf("failed to update run record: %w", err)
		}
	}

	log.Printf("Run %s completed: %d transfers, %d divergences, %d channels",
		run.ID, run.TransferCount, run.DivergenceCount, run.ChannelCount)
	return run, nil
}

func (r *Runner) process(ctx context.Context, run *Run) error {
	if err := r.Validate(run.InputDir); err != nil {
		return err
	}

	run.Status = StatusProcessing
	if r.repo != nil {
		if err := r.repo.UpdateRun(ctx, run); err != nil {
			return fmt.Errorf("failed to update run record: %w", err)
		}
	}

	products, err := loader.Catalog(filepath.Join(run.InputDir, ProductsFilename))
	if err != nil {
		return fmt.Errorf("failed to load product catalog: %w", err)
	}
	sales, err := loader.Sales(filepath.Join(run.InputDir, SalesFilename))
	if err != nil {
		return fmt.Errorf("failed to load sales: %w", err)
	}
	run.ProductsRead = len(products)
	run.SalesRead = len(sales)

	result, err := reconcile.Run(ctx, products, sales)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}
	run.TransferCount = len(result.TransferNeeds)
	run.DivergenceCount = len(result.Divergences)
	run.ChannelCount = len(result.ChannelTotals)

	if err := report.Write(run.OutputDir, result.TransferNeeds, result.Divergences, result.ChannelTotals); err != nil {
		return fmt.Errorf("failed to write reports: %w", err)
	}
	return nil
}

func (r *Runner) markFailed(ctx context.Context, run *Run, cause error) {
	now := time.Now()
	run.Status = StatusFailed
	run.CompletedAt = &now
	run.ErrorMessage = cause.Error()
	if r.repo == nil {
		return
	}
	if err := r.repo.UpdateRun(ctx, run); err != nil {
		log.Printf("Failed to mark run %s as failed: %v", run.ID, err)
	}
}
