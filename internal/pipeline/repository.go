package pipeline

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository persists run records in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a ledger repository over an open database handle.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateRun inserts a new run record.
func (r *Repository) CreateRun(ctx context.Context, run *Run) error {
	query := `
		INSERT INTO reconciliation_runs (
			id, input_dir, output_dir, status, products_read, sales_read,
			transfer_count, divergence_count, channel_count, error_text, started_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.InputDir, run.OutputDir, run.Status,
		run.ProductsRead, run.SalesRead,
		run.TransferCount, run.DivergenceCount, run.ChannelCount,
		run.ErrorMessage, run.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// UpdateRun updates an existing run record.
func (r *Repository) UpdateRun(ctx context.Context, run *Run) error {
	query := `
		UPDATE reconciliation_runs
		SET status = $1, products_read = $2, sales_read = $3,
		    transfer_count = $4, divergence_count = $5, channel_count = $6,
		    error_text = $7, completed_at = $8
		WHERE id = $9`

	_, err := r.db.ExecContext(ctx, query,
		run.Status, run.ProductsRead, run.SalesRead,
		run.TransferCount, run.DivergenceCount, run.ChannelCount,
		run.ErrorMessage, run.CompletedAt, run.ID)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// GetFailedRuns fetches all failed runs, oldest first.
func (r *Repository) GetFailedRuns(ctx context.Context) ([]*Run, error) {
	query := `
		SELECT id, input_dir, output_dir, status, products_read, sales_read,
		       transfer_count, divergence_count, channel_count,
		       COALESCE(error_text, ''), started_at, completed_at
		FROM reconciliation_runs
		WHERE status = $1
		ORDER BY started_at`

	rows, err := r.db.QueryContext(ctx, query, StatusFailed)
	if err != nil {
		return nil, fmt.Errorf("failed to query failed runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(
			&run.ID, &run.InputDir, &run.OutputDir, &run.Status,
			&run.ProductsRead, &run.SalesRead,
			&run.TransferCount, &run.DivergenceCount, &run.ChannelCount,
			&run.ErrorMessage, &run.StartedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetMetrics returns ledger statistics for monitoring.
func (r *Repository) GetMetrics(ctx context.Context) (*Metrics, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'failed'),
			COALESCE(SUM(divergence_count) FILTER (WHERE status = 'completed'), 0),
			MAX(completed_at) FILTER (WHERE status = 'completed')
		FROM reconciliation_runs`

	m := &Metrics{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&m.RunsCompleted, &m.RunsFailed, &m.DivergencesFound, &m.LastCompletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}
	return m, nil
}
