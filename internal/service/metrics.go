package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/estoqueops/estqop/internal/domain"
)

var (
	lastRunCompletedAt = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "estqop",
		Subsystem: "runs",
		Name:      "last_completed_timestamp_seconds",
		Help:      "Unix time the most recent completed run finished.",
	})

	lastRunDivergences = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "estqop",
		Subsystem: "runs",
		Name:      "last_run_divergences",
		Help:      "Divergence count of the most recent completed run.",
	})
)

func observeLastRun(last *domain.RunSummary) {
	if last == nil {
		return
	}
	if last.CompletedAt != nil {
		lastRunCompletedAt.Set(float64(last.CompletedAt.Unix()))
	}
	lastRunDivergences.Set(float64(last.DivergenceCount))
}
