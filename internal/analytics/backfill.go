// internal/analytics/backfill.go
package analytics

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/estoqueops/estqop/internal/pipeline"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// exportColumns is the header layout of the run-history CSV export.
var exportColumns = []string{
	"id", "status", "input_dir", "output_dir",
	"products_read", "sales_read",
	"transfer_count", "divergence_count", "channel_count",
	"started_at", "completed_at", "error",
}

var knownStatuses = map[string]bool{
	string(pipeline.StatusPending):    true,
	string(pipeline.StatusProcessing): true,
	string(pipeline.StatusCompleted):  true,
	string(pipeline.StatusFailed):     true,
}

// BackfillProcessor restores run-ledger rows from a CSV export. All rows of
// a file are applied in one transaction; a malformed row aborts the restore.
type BackfillProcessor struct {
	db *sql.DB
}

func NewBackfillProcessor(db *sql.DB) *BackfillProcessor {
	return &BackfillProcessor{db: db}
}

// ProcessFile upserts every row of an exported run-history CSV into the
// reconciliation_runs table and returns the number of rows applied.
func (p *BackfillProcessor) ProcessFile(ctx context.Context, filePath string) (int, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Create a map of column indices
	colMap := make(map[string]int)
	for i, col := range header {
		colMap[col] = i
	}
	for _, col := range exportColumns {
		if _, ok := colMap[col]; !ok {
			return 0, fmt.Errorf("export file is missing column %q", col)
		}
	}

	// Start transaction
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Prepare the upsert query
	query := `
		INSERT INTO reconciliation_runs (
			id, input_dir, output_dir, status, products_read, sales_read,
			transfer_count, divergence_count, channel_count, error_text,
			started_at, completed_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (id)
		DO UPDATE SET
			input_dir = EXCLUDED.input_dir,
			output_dir = EXCLUDED.output_dir,
			status = EXCLUDED.status,
			products_read = EXCLUDED.products_read,
			sales_read = EXCLUDED.sales_read,
			transfer_count = EXCLUDED.transfer_count,
			divergence_count = EXCLUDED.divergence_count,
			channel_count = EXCLUDED.channel_count,
			error_text = EXCLUDED.error_text,
			started_at = EXCLUDED.started_at,
			completed_at = EXCLUDED.completed_at
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	processedCount := 0
	line := 1

	// Process records
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("error reading record: %w", err)
		}
		line++

		row, err := parseExportRow(record, colMap)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}

		_, err = stmt.ExecContext(
			ctx,
			row.id,
			row.inputDir,
			row.outputDir,
			row.status,
			row.productsRead,
			row.salesRead,
			row.transferCount,
			row.divergenceCount,
			row.channelCount,
			row.errorText,
			row.startedAt,
			toNullTime(row.completedAt),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert run %s: %w", row.id, err)
		}

		processedCount++
	}

	// Commit the transaction
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Restored %d run records from %s", processedCount, filePath)

	return processedCount, nil
}

type exportRow struct {
	id              string
	status          string
	inputDir        string
	outputDir       string
	productsRead    int
	salesRead       int
	transferCount   int
	divergenceCount int
	channelCount    int
	startedAt       time.Time
	completedAt     *time.Time
	errorText       string
}

func parseExportRow(record []string, colMap map[string]int) (*exportRow, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[colMap[name]])
	}

	row := &exportRow{
		id:        field("id"),
		status:    field("status"),
		inputDir:  field("input_dir"),
		outputDir: field("output_dir"),
		errorText: field("error"),
	}
	if row.id == "" {
		return nil, fmt.Errorf("record has empty id")
	}
	if !knownStatuses[row.status] {
		return nil, fmt.Errorf("unknown run status %q", row.status)
	}

	var err error
	if row.productsRead, err = intField(field("products_read"), "products_read"); err != nil {
		return nil, err
	}
	if row.salesRead, err = intField(field("sales_read"), "sales_read"); err != nil {
		return nil, err
	}
	if row.transferCount, err = intField(field("transfer_count"), "transfer_count"); err != nil {
		return nil, err
	}
	if row.divergenceCount, err = intField(field("divergence_count"), "divergence_count"); err != nil {
		return nil, err
	}
	if row.channelCount, err = intField(field("channel_count"), "channel_count"); err != nil {
		return nil, err
	}

	if row.startedAt, err = time.Parse(exportTimeLayout, field("started_at")); err != nil {
		return nil, fmt.Errorf("invalid started_at %q: %w", field("started_at"), err)
	}
	if raw := field("completed_at"); raw != "" {
		t, err := time.Parse(exportTimeLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid completed_at %q: %w", raw, err)
		}
		row.completedAt = &t
	}

	return row, nil
}

func intField(raw, name string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return n, nil
}

// toNullTime converts a *time.Time to a NullTime for SQL
func toNullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
