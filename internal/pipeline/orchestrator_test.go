package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoqueops/estqop/internal/report"
)

func TestDiscoverDrops(t *testing.T) {
	dropsRoot := t.TempDir()
	outputRoot := t.TempDir()

	writeInputs(t, filepath.Join(dropsRoot, "2024-03-02"), "00001;50;20\n", "00001;40;100;2\n")
	writeInputs(t, filepath.Join(dropsRoot, "2024-03-01"), "00002;30;10\n", "00002;25;100;1\n")

	// Incomplete and unrelated entries are skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(dropsRoot, "2024-03-03"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dropsRoot, "2024-03-03", ProductsFilename), []byte("00003;1;1\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dropsRoot, "notadate"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dropsRoot, "stray.txt"), []byte("x"), 0o644))

	drops, err := DiscoverDrops(dropsRoot, outputRoot)
	require.NoError(t, err)
	require.Len(t, drops, 2)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), drops[0].Date)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), drops[1].Date)
	assert.Equal(t, filepath.Join(dropsRoot, "2024-03-01"), drops[0].InputDir)
	assert.Equal(t, filepath.Join(outputRoot, "2024-03-01"), drops[0].OutputDir)
}

func TestDiscoverDropsMissingRoot(t *testing.T) {
	_, err := DiscoverDrops(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	require.Error(t, err)
}

func TestOrchestratorRun(t *testing.T) {
	dropsRoot := t.TempDir()
	outputRoot := t.TempDir()

	writeInputs(t, filepath.Join(dropsRoot, "2024-03-01"), "00001;50;20\n", "00001;40;100;2\n")
	writeInputs(t, filepath.Join(dropsRoot, "2024-03-02"), "00002;30;10\n", "00002;25;100;1\n")

	worker := NewWorker(NewRunner(nil), Config{WorkerCount: 2})
	orch := NewOrchestrator(worker)
	require.NoError(t, orch.Run(context.Background(), dropsRoot, outputRoot))

	for _, day := range []string{"2024-03-01", "2024-03-02"} {
		for _, name := range []string{report.TransferFilename, report.DivergenceFilename, report.ChannelFilename} {
			_, err := os.Stat(filepath.Join(outputRoot, day, name))
			assert.NoError(t, err, "%s/%s", day, name)
		}
	}
}

func TestOrchestratorRunEmptyRoot(t *testing.T) {
	worker := NewWorker(NewRunner(nil), DefaultConfig())
	orch := NewOrchestrator(worker)
	require.NoError(t, orch.Run(context.Background(), t.TempDir(), t.TempDir()))
}

func TestWorkerProcessDropsKeepsGoingAfterFailure(t *testing.T) {
	goodIn := filepath.Join(t.TempDir(), "good")
	writeInputs(t, goodIn, "00001;50;20\n", "00001;40;100;2\n")
	goodOut := filepath.Join(t.TempDir(), "good-out")

	drops := []Drop{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), InputDir: t.TempDir(), OutputDir: t.TempDir()},
		{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), InputDir: goodIn, OutputDir: goodOut},
	}

	worker := NewWorker(NewRunner(nil), Config{WorkerCount: 1})
	err := worker.ProcessDrops(context.Background(), drops)
	require.Error(t, err)

	// The failing drop does not stop the batch.
	_, statErr := os.Stat(filepath.Join(goodOut, report.TransferFilename))
	assert.NoError(t, statErr)
}

func TestWorkerProcessDropsEmpty(t *testing.T) {
	worker := NewWorker(NewRunner(nil), DefaultConfig())
	require.NoError(t, worker.ProcessDrops(context.Background(), nil))
}
