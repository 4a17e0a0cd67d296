package pipeline

import (
	"time"
)

// Canonical input filenames inside a run directory.
const (
	ProductsFilename = "produtos.txt"
	SalesFilename    = "vendas.txt"
)

// Config holds configuration for pipeline execution.
type Config struct {
	WorkerCount int // Number of concurrent drop workers
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		WorkerCount: 4,
	}
}

// RunStatus represents the current state of a reconciliation run.
type RunStatus string

const (
	StatusPending    RunStatus = "pending"
	StatusProcessing RunStatus = "processing"
	StatusCompleted  RunStatus = "completed"
	StatusFailed     RunStatus = "failed"
)

// Run tracks a single reconciliation of one input directory. Only telemetry
// is tracked here; the derived reports live in the output files.
type Run struct {
	ID              string
	InputDir        string
	OutputDir       string
	Status          RunStatus
	ProductsRead    int
	SalesRead       int
	TransferCount   int
	DivergenceCount int
	ChannelCount    int
	StartedAt       time.Time
	CompletedAt     *time.Time
	ErrorMessage    string
}

// Metrics holds ledger statistics for monitoring.
type Metrics struct {
	RunsCompleted    int64
	RunsFailed       int64
	DivergencesFound int64
	LastCompletedAt  *time.Time
}

// Drop is one dated input directory awaiting reconciliation.
type Drop struct {
	Date      time.Time
	InputDir  string
	OutputDir string
}
