package drive

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/estoqueops/estqop/internal/domain"
	"github.com/estoqueops/estqop/internal/loader"
	"github.com/estoqueops/estqop/internal/repository"
)

// Input kinds, named after the file stems the counter office uses.
const (
	KindProducts = "produtos"
	KindSales    = "vendas"
)

// IngestService pulls one input file from Drive, validates that it parses,
// records its provenance and promotes it into the inbox directory under its
// canonical name. A nil repository skips the provenance record.
type IngestService struct {
	driveService *Service
	repo         *repository.IngestRepository
	inboxDir     string
}

func NewIngestService(driveService *Service, repo *repository.IngestRepository, inboxDir string) *IngestService {
	return &IngestService{
		driveService: driveService,
		repo:         repo,
		inboxDir:     inboxDir,
	}
}

// IngestFile processes a single Drive file end to end.
func (s *IngestService) IngestFile(ctx context.Context, fileID string) (*domain.IngestRecord, error) {
	meta, err := s.driveService.GetFile(fileID)
	if err != nil {
		return nil, err
	}

	kind, ok := classifyInputName(meta.Name)
	if !ok {
		return nil, fmt.Errorf("unrecognized input file %q: expected produtos/vendas as .txt or .xlsx", meta.Name)
	}

	// 1. Download into a scratch dir
	tmpDir, err := os.MkdirTemp("", "estqop-ingest-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	rawPath := filepath.Join(tmpDir, meta.Name)
	out, err := os.Create(rawPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	if err := s.driveService.DownloadFile(fileID, out); err != nil {
		out.Close()
		return nil, fmt.Errorf("failed to download %s: %w", meta.Name, err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush scratch file: %w", err)
	}

	// Hash the source bytes, matching the checksum Drive reports for the file
	raw, err := os.ReadFile(rawPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read downloaded input: %w", err)
	}
	sum := md5.Sum(raw)

	// 2. Convert workbooks to the semicolon layout
	txtPath := rawPath
	if strings.EqualFold(filepath.Ext(meta.Name), ".xlsx") {
		txtPath = filepath.Join(tmpDir, kind+".txt")
		if err := convertXLSXToTxt(rawPath, txtPath); err != nil {
			return nil, fmt.Errorf("failed to convert %s: %w", meta.Name, err)
		}
	}

	// 3. Validate by parsing with the real loader
	if err := validateInput(kind, txtPath); err != nil {
		return nil, fmt.Errorf("validation of %s failed: %w", meta.Name, err)
	}

	// 4. Record provenance
	rec := &domain.IngestRecord{
		DriveID:   fileID,
		Filename:  meta.Name,
		Kind:      kind,
		MD5:       hex.EncodeToString(sum[:]),
		SizeBytes: int64(len(raw)),
	}
	if s.repo != nil {
		id, err := s.repo.UpsertIngest(ctx, rec)
		if err != nil {
			return nil, err
		}
		rec.ID = id
	}

	// 5. Promote into the inbox under the canonical name
	if err := s.promote(txtPath, kind); err != nil {
		return nil, err
	}

	log.Info().
		Str("file_id", fileID).
		Str("filename", meta.Name).
		Str("kind", kind).
		Str("md5", rec.MD5).
		Msg("ingested input file")

	return rec, nil
}

// IngestFolder processes every recognized input file in a Drive folder,
// skipping files whose exact content was already ingested. Returns the
// records of the newly ingested files.
func (s *IngestService) IngestFolder(ctx context.Context, folderID string) ([]*domain.IngestRecord, error) {
	files, err := s.driveService.ListFiles(folderID)
	if err != nil {
		return nil, err
	}

	var records []*domain.IngestRecord
	for _, f := range files {
		if _, ok := classifyInputName(f.Name); !ok {
			continue
		}

		if s.repo != nil && f.MD5Checksum != "" {
			seen, err := s.repo.HasIngest(ctx, f.ID, f.MD5Checksum)
			if err != nil {
				return records, err
			}
			if seen {
				log.Debug().Str("file_id", f.ID).Str("filename", f.Name).Msg("skipping already ingested file")
				continue
			}
		}

		rec, err := s.IngestFile(ctx, f.ID)
		if err != nil {
			return records, fmt.Errorf("ingest of %s failed: %w", f.Name, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// Watch polls the Drive folder until the context ends, ingesting any new
// input files it finds.
func (s *IngestService) Watch(ctx context.Context, folderID string, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		records, err := s.IngestFolder(ctx, folderID)
		if err != nil {
			log.Error().Err(err).Str("folder_id", folderID).Msg("drive ingest sweep failed")
		} else if len(records) > 0 {
			log.Info().Int("count", len(records)).Str("folder_id", folderID).Msg("ingested new input files")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RecentIngests lists the latest provenance records.
func (s *IngestService) RecentIngests(ctx context.Context, limit int) ([]domain.IngestRecord, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("ingest ledger is not configured")
	}
	return s.repo.GetRecentIngests(ctx, limit)
}

func validateInput(kind, path string) error {
	switch kind {
	case KindProducts:
		_, err := loader.Catalog(path)
		return err
	case KindSales:
		_, err := loader.Sales(path)
		return err
	}
	return fmt.Errorf("unknown input kind %q", kind)
}

// promote moves the validated file into the inbox, staging in the same
// directory so the rename is atomic.
func (s *IngestService) promote(srcPath, kind string) error {
	if err := os.MkdirAll(s.inboxDir, 0o755); err != nil {
		return fmt.Errorf("failed to create inbox dir: %w", err)
	}

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("failed to read validated input: %w", err)
	}

	dest := filepath.Join(s.inboxDir, kind+".txt")
	tmp, err := os.CreateTemp(s.inboxDir, kind+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to stage input: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to stage input: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to stage input: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to promote input: %w", err)
	}

	return nil
}
