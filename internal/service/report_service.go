// internal/service/report_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/estoqueops/estqop/internal/cache"
	"github.com/estoqueops/estqop/internal/loader"
	"github.com/estoqueops/estqop/internal/pipeline"
	"github.com/estoqueops/estqop/internal/reconcile"
	"github.com/estoqueops/estqop/internal/report"
)

var (
	ErrUnknownReport  = errors.New("unknown report name")
	ErrReportNotReady = errors.New("report not generated yet")
	ErrInputMissing   = errors.New("input files not found")
)

// ReportInfo describes one report file on disk.
type ReportInfo struct {
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"size_bytes"`
	ModifiedAt time.Time `json:"modified_at"`
}

// ReportService serves the report files written by the batch, with a
// read-through cache in front of the disk, and previews what the current
// input files would produce.
type ReportService struct {
	inputDir  string
	outputDir string
	cache     cache.ReportCache
}

func NewReportService(inputDir, outputDir string, cacheImpl cache.ReportCache) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &ReportService{inputDir: inputDir, outputDir: outputDir, cache: cacheImpl}
}

// ReportNames lists the report files the batch produces.
func ReportNames() []string {
	return []string{report.TransferFilename, report.DivergenceFilename, report.ChannelFilename}
}

func validReportName(name string) bool {
	for _, n := range ReportNames() {
		if n == name {
			return true
		}
	}
	return false
}

// GetReport returns the raw bytes of one report file.
func (s *ReportService) GetReport(ctx context.Context, name string) ([]byte, error) {
	if !validReportName(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReport, name)
	}

	path := filepath.Join(s.outputDir, name)

	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrReportNotReady, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat report %s: %w", name, err)
	}

	if payload, ok, err := s.cache.Get(ctx, path, fi.ModTime()); err == nil && ok {
		return payload, nil
	} else if err != nil {
		log.Warn().Err(err).Str("report", name).Msg("reports: cache get failed")
	}

	payload, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrReportNotReady, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", name, err)
	}

	if err := s.cache.Set(ctx, path, fi.ModTime(), payload); err != nil {
		log.Warn().Err(err).Str("report", name).Msg("reports: cache set failed")
	}

	return payload, nil
}

// ListReports stats the report files that exist in the output directory.
func (s *ReportService) ListReports(ctx context.Context) ([]ReportInfo, error) {
	infos := make([]ReportInfo, 0, 3)
	for _, name := range ReportNames() {
		fi, err := os.Stat(filepath.Join(s.outputDir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stat report %s: %w", name, err)
		}
		infos = append(infos, ReportInfo{
			Name:       name,
			SizeBytes:  fi.Size(),
			ModifiedAt: fi.ModTime(),
		})
	}
	return infos, nil
}

// Preview loads the current input files and reconciles them in memory
// without touching the report files. Used by the dry-run endpoint.
func (s *ReportService) Preview(ctx context.Context) (*reconcile.Result, error) {
	products, err := loader.Catalog(filepath.Join(s.inputDir, pipeline.ProductsFilename))
	if err != nil {
		return nil, previewLoadError(err)
	}
	sales, err := loader.Sales(filepath.Join(s.inputDir, pipeline.SalesFilename))
	if err != nil {
		return nil, previewLoadError(err)
	}

	return reconcile.Run(ctx, products, sales)
}

func previewLoadError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrInputMissing, err)
	}
	return err
}

// Invalidate drops all cached report payloads. Called after a batch
// rewrites the files.
func (s *ReportService) Invalidate(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}
