package domain

import "time"

// RunSummary represents one reconciliation run row as served by the
// dashboard API. The ledger stores counts and timing only; the report
// contents themselves live in the output files.
type RunSummary struct {
	ID              string     `json:"id" db:"id"`
	InputDir        string     `json:"input_dir" db:"input_dir"`
	OutputDir       string     `json:"output_dir" db:"output_dir"`
	Status          string     `json:"status" db:"status"`
	ProductsRead    int        `json:"products_read" db:"products_read"`
	SalesRead       int        `json:"sales_read" db:"sales_read"`
	TransferCount   int        `json:"transfer_count" db:"transfer_count"`
	DivergenceCount int        `json:"divergence_count" db:"divergence_count"`
	ChannelCount    int        `json:"channel_count" db:"channel_count"`
	Error           *string    `json:"error,omitempty" db:"error_text"`
	StartedAt       time.Time  `json:"started_at" db:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// RunStatusCount represents the number of runs in one status.
type RunStatusCount struct {
	Status string `json:"status" db:"status"`
	Count  int    `json:"count" db:"count"`
}

// RunTrendPoint represents one day of run activity for the trend chart.
type RunTrendPoint struct {
	Date        string `json:"date" db:"date"`
	Runs        int    `json:"runs" db:"runs"`
	Divergences int    `json:"divergences" db:"divergences"`
}

// RunStats aggregates the run-history dashboard data.
type RunStats struct {
	StatusCounts []RunStatusCount `json:"status_counts"`
	Trend        []RunTrendPoint  `json:"trend"`
	LastRun      *RunSummary      `json:"last_run,omitempty"`
}

// RunFilter represents filters for run-history queries.
type RunFilter struct {
	Status   string     `json:"status"`
	From     *time.Time `json:"from"`
	To       *time.Time `json:"to"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// IngestRecord represents the provenance of one input file pulled from the
// shared drive folder.
type IngestRecord struct {
	ID         int64     `json:"id" db:"id"`
	DriveID    string    `json:"drive_id" db:"drive_id"`
	Filename   string    `json:"filename" db:"filename"`
	Kind       string    `json:"kind" db:"kind"`
	MD5        string    `json:"md5" db:"md5"`
	SizeBytes  int64     `json:"size_bytes" db:"size_bytes"`
	IngestedAt time.Time `json:"ingested_at" db:"ingested_at"`
}
