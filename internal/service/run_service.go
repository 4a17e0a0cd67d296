package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/estoqueops/estqop/internal/cache"
	"github.com/estoqueops/estqop/internal/domain"
	"github.com/estoqueops/estqop/internal/repository"
)

const trendWindowDays = 30

// RunService serves the run-history ledger.
type RunService struct {
	repo  repository.RunRepository
	cache cache.RunStatsCache
}

func NewRunService(repo repository.RunRepository, cacheImpl cache.RunStatsCache) *RunService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopRunStatsCache()
	}
	return &RunService{repo: repo, cache: cacheImpl}
}

func (s *RunService) GetRuns(ctx context.Context, filter *domain.RunFilter) ([]domain.RunSummary, int, error) {
	return s.repo.GetRuns(ctx, filter)
}

func (s *RunService) GetRun(ctx context.Context, id string) (*domain.RunSummary, error) {
	return s.repo.GetRun(ctx, id)
}

// GetStats assembles the run-history dashboard, fetching the three parts
// concurrently on a cache miss.
func (s *RunService) GetStats(ctx context.Context) (*domain.RunStats, error) {
	if stats, ok, err := s.cache.GetStats(ctx); err == nil && ok {
		observeLastRun(stats.LastRun)
		return stats, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("runs: cache get stats failed")
	}

	var (
		wg    sync.WaitGroup
		errCh = make(chan error, 3)
		stats domain.RunStats
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		counts, err := s.repo.GetStatusCounts(ctx)
		if err != nil {
			errCh <- fmt.Errorf("status counts: %w", err)
			return
		}
		stats.StatusCounts = counts
	}()
	go func() {
		defer wg.Done()
		trend, err := s.repo.GetRunTrend(ctx, trendWindowDays)
		if err != nil {
			errCh <- fmt.Errorf("trend: %w", err)
			return
		}
		stats.Trend = trend
	}()
	go func() {
		defer wg.Done()
		last, err := s.repo.GetLastCompletedRun(ctx)
		if err != nil {
			errCh <- fmt.Errorf("last run: %w", err)
			return
		}
		stats.LastRun = last
	}()

	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, fmt.Errorf("failed to assemble run stats: %w", err)
	}

	if stats.StatusCounts == nil {
		stats.StatusCounts = make([]domain.RunStatusCount, 0)
	}
	if stats.Trend == nil {
		stats.Trend = make([]domain.RunTrendPoint, 0)
	}

	if err := s.cache.SetStats(ctx, &stats); err != nil {
		log.Warn().Err(err).Msg("runs: cache set stats failed")
	}

	observeLastRun(stats.LastRun)

	return &stats, nil
}

// InvalidateStats drops the cached dashboard payload. Called after new runs
// land in the ledger.
func (s *RunService) InvalidateStats(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}

const exportPageSize = 100

// ExportRunsCSV streams the filtered run history as semicolon-delimited CSV,
// the same delimiter the input files use.
func (s *RunService) ExportRunsCSV(ctx context.Context, w io.Writer, filter *domain.RunFilter) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	defer writer.Flush()

	header := []string{
		"id", "status", "input_dir", "output_dir",
		"products_read", "sales_read",
		"transfer_count", "divergence_count", "channel_count",
		"started_at", "completed_at", "error",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	page := 1
	for {
		pageFilter := domain.RunFilter{Page: page, PageSize: exportPageSize}
		if filter != nil {
			pageFilter.Status = filter.Status
			pageFilter.From = filter.From
			pageFilter.To = filter.To
		}

		runs, _, err := s.repo.GetRuns(ctx, &pageFilter)
		if err != nil {
			return fmt.Errorf("failed to list runs for export: %w", err)
		}

		for _, run := range runs {
			completedAt := ""
			if run.CompletedAt != nil {
				completedAt = run.CompletedAt.Format("2006-01-02 15:04:05")
			}
			errText := ""
			if run.Error != nil {
				errText = *run.Error
			}
			record := []string{
				run.ID,
				run.Status,
				run.InputDir,
				run.OutputDir,
				strconv.Itoa(run.ProductsRead),
				strconv.Itoa(run.SalesRead),
				strconv.Itoa(run.TransferCount),
				strconv.Itoa(run.DivergenceCount),
				strconv.Itoa(run.ChannelCount),
				run.StartedAt.Format("2006-01-02 15:04:05"),
				completedAt,
				errText,
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write export row: %w", err)
			}
		}

		if len(runs) < exportPageSize {
			break
		}
		page++
	}

	return nil
}
