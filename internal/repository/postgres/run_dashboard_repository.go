package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/estoqueops/estqop/internal/domain"
)

// GetStatusCounts aggregates runs by status.
func (r *runRepository) GetStatusCounts(ctx context.Context) ([]domain.RunStatusCount, error) {
	release, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	query := `
		SELECT status, COUNT(*) as count
		FROM reconciliation_runs
		GROUP BY status
		ORDER BY status
	`

	var counts []domain.RunStatusCount
	if err := sqlx.SelectContext(ctx, r.db, &counts, query); err != nil {
		log.Error().Err(err).Msg("run dashboard: failed to fetch status counts")
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}

	log.Debug().Int("status_rows", len(counts)).Msg("run dashboard: status counts fetched")
	return counts, nil
}

// GetRunTrend returns one point per day over the window, zero-filled for
// days without runs. Divergence totals count completed runs only.
func (r *runRepository) GetRunTrend(ctx context.Context, days int) ([]domain.RunTrendPoint, error) {
	if days <= 0 {
		days = 30
	}

	release, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	query := `
		WITH dates AS (
			SELECT date_trunc('day', current_date - (n || ' days')::interval) as date
			FROM generate_series(0, $1) n
		),
		daily AS (
			SELECT
				date_trunc('day', started_at) as date,
				COUNT(*) as runs,
				COALESCE(SUM(divergence_count) FILTER (WHERE status = 'completed'), 0) as divergences
			FROM reconciliation_runs
			WHERE started_at >= (current_date - ($1 || ' days')::interval)
			GROUP BY date_trunc('day', started_at)
		)
		SELECT
			to_char(d.date, 'YYYY-MM-DD') as date,
			COALESCE(dc.runs, 0) as runs,
			COALESCE(dc.divergences, 0) as divergences
		FROM dates d
		LEFT JOIN daily dc ON d.date = dc.date
		ORDER BY d.date
	`

	var points []domain.RunTrendPoint
	if err := sqlx.SelectContext(ctx, r.db, &points, query, days-1); err != nil {
		log.Error().Err(err).Msg("run dashboard: failed to fetch trend")
		return nil, fmt.Errorf("failed to get run trend: %w", err)
	}

	log.Debug().Int("trend_rows", len(points)).Msg("run dashboard: trend fetched")
	return points, nil
}

// GetLastCompletedRun returns the most recently completed run, or nil when
// the ledger holds none.
func (r *runRepository) GetLastCompletedRun(ctx context.Context) (*domain.RunSummary, error) {
	release, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	query := fmt.Sprintf(`
		SELECT %s
		FROM reconciliation_runs
		WHERE status = 'completed'
		ORDER BY completed_at DESC
		LIMIT 1
	`, runColumns)

	var run domain.RunSummary
	err = r.db.GetContext(ctx, &run, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last completed run: %w", err)
	}

	return &run, nil
}
