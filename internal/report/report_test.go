package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoqueops/estqop/internal/domain"
)

func TestRenderTransferNeeds(t *testing.T) {
	needs := []domain.TransferNeed{
		{ProductCode: 1, StockQtyCO: 50, MinQtyCO: 20, TotalSoldQty: 40, StockAfterSales: 10, RawNeed: 10, TransferQty: 10},
		{ProductCode: 2, StockQtyCO: 30, MinQtyCO: 10, TotalSoldQty: 25, StockAfterSales: 5, RawNeed: 5, TransferQty: 10},
	}

	out := RenderTransferNeeds(needs)

	expected := "Necessidade de Transferência Armazém para CO\n" +
		"\n" +
		"Produto  QtCO  QtMin  QtVendas  Estq.após  Necess.  Transf. de\n" +
		"                                   Vendas            Arm p/ CO\n" +
		"1          50     20        40         10       10          10\n" +
		"2          30     10        25          5        5          10\n"
	assert.Equal(t, expected, out)
}

func TestRenderTransferNeedsNegativeStock(t *testing.T) {
	needs := []domain.TransferNeed{
		{ProductCode: 1, StockQtyCO: 10, MinQtyCO: 5, TotalSoldQty: 30, StockAfterSales: -20, RawNeed: 25, TransferQty: 25},
	}

	out := RenderTransferNeeds(needs)

	assert.Contains(t, out, "1          10      5        30        -20       25          25\n")
}

func TestRenderTransferNeedsEmpty(t *testing.T) {
	out := RenderTransferNeeds(nil)

	// Header block only, no data rows.
	assert.Equal(t, transferHeader, out)
}

func TestRenderDivergences(t *testing.T) {
	divergences := []domain.Divergence{
		{SaleLine: 1, Message: "Venda cancelada"},
		{SaleLine: 5, Message: "Código de Produto não encontrado 00999"},
		{SaleLine: 100, Message: "Venda não finalizada"},
	}

	out := RenderDivergences(divergences)

	expected := "Linha 01 – Venda cancelada\n" +
		"Linha 05 – Código de Produto não encontrado 00999\n" +
		"Linha 100 – Venda não finalizada\n"
	assert.Equal(t, expected, out)
}

func TestRenderDivergencesEmpty(t *testing.T) {
	assert.Equal(t, "", RenderDivergences(nil))
}

func TestRenderChannelTotals(t *testing.T) {
	totals := []domain.ChannelTotal{
		{Channel: domain.ChannelSalesRep, TotalQty: 7},
		{Channel: domain.ChannelWebsite, TotalQty: 40},
		{Channel: domain.ChannelAndroidApp, TotalQty: 15},
		{Channel: domain.ChannelIOSApp, TotalQty: 123},
	}

	out := RenderChannelTotals(totals)

	expected := "Quantidades de Vendas por canal\n" +
		"\n" +
		"Canal                  QtVendas\n" +
		"1 - Representantes            7\n" +
		"2 - Website                  40\n" +
		"3 - App móvel Android        15\n" +
		"4 - App móvel iPhone        123\n"
	assert.Equal(t, expected, out)
}

func TestRenderChannelTotalsEmpty(t *testing.T) {
	out := RenderChannelTotals(nil)

	assert.Equal(t, "Quantidades de Vendas por canal\n\nCanal                  QtVendas\n", out)
}

func TestWriterFlush(t *testing.T) {
	dir := t.TempDir()

	w := NewWriter(dir)
	w.Add("a.txt", "first\n")
	w.Add("b.txt", "second\n")
	w.Add("a.txt", "replaced\n")
	require.NoError(t, w.Flush())

	a, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "replaced\n", string(a))

	b, err := os.ReadFile(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(b))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriterCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	w := NewWriter(dir)
	w.Add("a.txt", "x")
	require.NoError(t, w.Flush())

	_, err := os.Stat(filepath.Join(dir, "a.txt"))
	assert.NoError(t, err)
}

func TestWriteIsByteStable(t *testing.T) {
	dir := t.TempDir()
	needs := []domain.TransferNeed{
		{ProductCode: 1, StockQtyCO: 50, MinQtyCO: 20, TotalSoldQty: 40, StockAfterSales: 10, RawNeed: 10, TransferQty: 10},
	}
	divergences := []domain.Divergence{{SaleLine: 2, Message: "Venda cancelada"}}
	totals := []domain.ChannelTotal{{Channel: domain.ChannelWebsite, TotalQty: 40}}

	require.NoError(t, Write(dir, needs, divergences, totals))

	read := func(name string) string {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		return string(data)
	}

	first := []string{read(TransferFilename), read(DivergenceFilename), read(ChannelFilename)}

	require.NoError(t, Write(dir, needs, divergences, totals))
	again := []string{read(TransferFilename), read(DivergenceFilename), read(ChannelFilename)}

	assert.Equal(t, first, again)
}
