package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoqueops/estqop/internal/pipeline"
	"github.com/estoqueops/estqop/internal/report"
)

func TestReportServiceGetReport(t *testing.T) {
	outputDir := t.TempDir()
	content := "Linha 02 – Venda cancelada\n"
	require.NoError(t, os.WriteFile(filepath.Join(outputDir, report.DivergenceFilename), []byte(content), 0o644))

	svc := NewReportService(t.TempDir(), outputDir, nil)

	payload, err := svc.GetReport(context.Background(), report.DivergenceFilename)
	require.NoError(t, err)
	assert.Equal(t, content, string(payload))
}

func TestReportServiceUnknownName(t *testing.T) {
	svc := NewReportService(t.TempDir(), t.TempDir(), nil)

	_, err := svc.GetReport(context.Background(), "secrets.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownReport))
}

func TestReportServiceNotReady(t *testing.T) {
	svc := NewReportService(t.TempDir(), t.TempDir(), nil)

	_, err := svc.GetReport(context.Background(), report.TransferFilename)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReportNotReady))
}

func TestReportServiceListReports(t *testing.T) {
	outputDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outputDir, report.TransferFilename), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(outputDir, report.ChannelFilename), []byte("yy"), 0o644))

	svc := NewReportService(t.TempDir(), outputDir, nil)

	infos, err := svc.ListReports(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, report.TransferFilename, infos[0].Name)
	assert.Equal(t, int64(1), infos[0].SizeBytes)
	assert.Equal(t, report.ChannelFilename, infos[1].Name)
}

func TestReportServicePreview(t *testing.T) {
	inputDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, pipeline.ProductsFilename), []byte("00001;50;20\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, pipeline.SalesFilename), []byte("00001;40;100;2\n"), 0o644))

	svc := NewReportService(inputDir, t.TempDir(), nil)

	result, err := svc.Preview(context.Background())
	require.NoError(t, err)
	require.Len(t, result.TransferNeeds, 1)
	assert.Equal(t, 10, result.TransferNeeds[0].TransferQty)
	assert.Empty(t, result.Divergences)
	require.Len(t, result.ChannelTotals, 1)
}

func TestReportServicePreviewMissingInputs(t *testing.T) {
	svc := NewReportService(t.TempDir(), t.TempDir(), nil)

	_, err := svc.Preview(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputMissing))
}

func TestReportServicePreviewBadSales(t *testing.T) {
	inputDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, pipeline.ProductsFilename), []byte("00001;50;20\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, pipeline.SalesFilename), []byte("00001;40;777;2\n"), 0o644))

	svc := NewReportService(inputDir, t.TempDir(), nil)

	_, err := svc.Preview(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInputMissing))
	assert.Contains(t, err.Error(), "777")
}
