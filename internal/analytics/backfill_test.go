package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportColMap() map[string]int {
	colMap := make(map[string]int)
	for i, col := range exportColumns {
		colMap[col] = i
	}
	return colMap
}

func TestParseExportRow(t *testing.T) {
	record := []string{
		"run-1", "completed", "/data/in", "/data/out",
		"3", "8", "2", "1", "2",
		"2024-03-01 08:00:00", "2024-03-01 08:00:02", "",
	}

	row, err := parseExportRow(record, exportColMap())
	require.NoError(t, err)

	assert.Equal(t, "run-1", row.id)
	assert.Equal(t, "completed", row.status)
	assert.Equal(t, "/data/in", row.inputDir)
	assert.Equal(t, "/data/out", row.outputDir)
	assert.Equal(t, 3, row.productsRead)
	assert.Equal(t, 8, row.salesRead)
	assert.Equal(t, 2, row.transferCount)
	assert.Equal(t, 1, row.divergenceCount)
	assert.Equal(t, 2, row.channelCount)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), row.startedAt)
	require.NotNil(t, row.completedAt)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 2, 0, time.UTC), *row.completedAt)
	assert.Empty(t, row.errorText)
}

func TestParseExportRowFailedRun(t *testing.T) {
	record := []string{
		"run-2", "failed", "/data/in", "/data/out",
		"0", "0", "0", "0", "0",
		"2024-03-02 09:00:00", "", "input files not found: /data/in/produtos.txt",
	}

	row, err := parseExportRow(record, exportColMap())
	require.NoError(t, err)

	assert.Equal(t, "failed", row.status)
	assert.Nil(t, row.completedAt)
	assert.Contains(t, row.errorText, "produtos.txt")
}

func TestParseExportRowErrors(t *testing.T) {
	base := func() []string {
		return []string{
			"run-1", "completed", "/data/in", "/data/out",
			"3", "8", "2", "1", "2",
			"2024-03-01 08:00:00", "2024-03-01 08:00:02", "",
		}
	}

	tests := []struct {
		name    string
		mutate  func([]string)
		wantErr string
	}{
		{"empty id", func(r []string) { r[0] = "" }, "empty id"},
		{"unknown status", func(r []string) { r[1] = "done" }, "unknown run status"},
		{"bad count", func(r []string) { r[4] = "many" }, "products_read"},
		{"bad started_at", func(r []string) { r[9] = "03/01/2024" }, "started_at"},
		{"bad completed_at", func(r []string) { r[10] = "later" }, "completed_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := base()
			tt.mutate(record)
			_, err := parseExportRow(record, exportColMap())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
