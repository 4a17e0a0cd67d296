// internal/repository/postgres/run_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/estoqueops/estqop/internal/domain"
)

type runRepository struct {
	db *DB
}

func NewRunRepository(db *DB) *runRepository {
	return &runRepository{db: db}
}

const runColumns = `
	id, input_dir, output_dir, status, products_read, sales_read,
	transfer_count, divergence_count, channel_count,
	error_text, started_at, completed_at`

// GetRuns lists run records newest first, applying optional filters with
// pagination.
func (r *runRepository) GetRuns(ctx context.Context, filter *domain.RunFilter) ([]domain.RunSummary, int, error) {
	page := 1
	pageSize := 20
	if filter != nil {
		if filter.Page > 0 {
			page = filter.Page
		}
		if filter.PageSize > 0 && filter.PageSize <= 100 {
			pageSize = filter.PageSize
		}
	}
	offset := (page - 1) * pageSize

	release, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer release()

	filterClause, filterArgs := buildRunFilterClause(filter, "", 1)

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM reconciliation_runs
		WHERE 1=1 %s
	`, filterClause)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, filterArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count runs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM reconciliation_runs
		WHERE 1=1 %s
		ORDER BY started_at DESC
		LIMIT $%d OFFSET $%d
	`, runColumns, filterClause, len(filterArgs)+1, len(filterArgs)+2)

	args := append(filterArgs, pageSize, offset)

	var runs []domain.RunSummary
	if err := sqlx.SelectContext(ctx, r.db, &runs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list runs: %w", err)
	}

	return runs, total, nil
}

// GetRun fetches one run by ID. Returns nil without error when no row exists.
func (r *runRepository) GetRun(ctx context.Context, id string) (*domain.RunSummary, error) {
	release, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	query := fmt.Sprintf(`
		SELECT %s
		FROM reconciliation_runs
		WHERE id = $1
	`, runColumns)

	var run domain.RunSummary
	err = r.db.GetContext(ctx, &run, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return &run, nil
}
