package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/estoqueops/estqop/internal/domain"
)

// Writer collects rendered report documents and flushes them to disk in one
// pass. Nothing touches the filesystem until Flush, and each file lands via
// a temp-file rename, so an aborted run never leaves a half-written report.
type Writer struct {
	outputDir string
	order     []string
	pending   map[string]string
}

// NewWriter creates a writer targeting the given output directory.
func NewWriter(outputDir string) *Writer {
	return &Writer{
		outputDir: outputDir,
		pending:   make(map[string]string),
	}
}

// Add stages one rendered document under the given filename. Re-adding a
// filename replaces its content but keeps its write position.
func (w *Writer) Add(filename, content string) {
	if _, ok := w.pending[filename]; !ok {
		w.order = append(w.order, filename)
	}
	w.pending[filename] = content
}

// Flush writes every staged document in the order first added.
func (w *Writer) Flush() error {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, filename := range w.order {
		if err := w.writeAtomic(filename, w.pending[filename]); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}
	}

	return nil
}

func (w *Writer) writeAtomic(filename, content string) error {
	tmp, err := os.CreateTemp(w.outputDir, filename+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), filepath.Join(w.outputDir, filename))
}

// Write renders all three reports and flushes them to outputDir under their
// fixed filenames.
func Write(outputDir string, needs []domain.TransferNeed, divergences []domain.Divergence, totals []domain.ChannelTotal) error {
	w := NewWriter(outputDir)
	w.Add(TransferFilename, RenderTransferNeeds(needs))
	w.Add(DivergenceFilename, RenderDivergences(divergences))
	w.Add(ChannelFilename, RenderChannelTotals(totals))

	return w.Flush()
}
