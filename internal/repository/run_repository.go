// internal/repository/run_repository.go
package repository

import (
	"context"

	"github.com/estoqueops/estqop/internal/domain"
)

type RunRepository interface {
	GetRuns(ctx context.Context, filter *domain.RunFilter) ([]domain.RunSummary, int, error)
	GetRun(ctx context.Context, id string) (*domain.RunSummary, error)

	// Dashboard methods
	GetStatusCounts(ctx context.Context) ([]domain.RunStatusCount, error)
	GetRunTrend(ctx context.Context, days int) ([]domain.RunTrendPoint, error)
	GetLastCompletedRun(ctx context.Context) (*domain.RunSummary, error)
}
