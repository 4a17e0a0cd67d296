package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/estoqueops/estqop/internal/storage"
)

const archiveRunPrefix = "runs/"

var ErrRunNotArchived = errors.New("run has no archived reports")

// ArchiveService stores byte-copies of the report files in object storage,
// one folder per run.
type ArchiveService struct {
	store storage.ObjectStorage
}

func NewArchiveService(store storage.ObjectStorage) *ArchiveService {
	return &ArchiveService{store: store}
}

// ArchiveRun uploads the three report files from outputDir under the run's
// archive folder. All three must exist.
func (s *ArchiveService) ArchiveRun(ctx context.Context, runID, outputDir string) error {
	for _, name := range ReportNames() {
		data, err := os.ReadFile(filepath.Join(outputDir, name))
		if err != nil {
			return fmt.Errorf("failed to read %s for archive: %w", name, err)
		}

		key := archiveKey(runID, name)
		if err := s.store.UploadObject(ctx, key, data); err != nil {
			return err
		}
		log.Info().Str("run_id", runID).Str("key", key).Int("bytes", len(data)).Msg("archive: uploaded report")
	}
	return nil
}

// FetchRun downloads a run's archived reports into destDir.
func (s *ArchiveService) FetchRun(ctx context.Context, runID, destDir string) error {
	prefix := archiveRunPrefix + runID + "/"
	objects, err := s.store.ListObjects(ctx, prefix)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotArchived, runID)
	}

	for _, obj := range objects {
		dest := filepath.Join(destDir, path.Base(obj.Key))
		if err := s.store.DownloadObject(ctx, obj.Key, dest); err != nil {
			return err
		}
		log.Info().Str("run_id", runID).Str("dest", dest).Msg("archive: downloaded report")
	}
	return nil
}

// ListArchivedRuns returns the run IDs that have at least one archived
// report, sorted.
func (s *ArchiveService) ListArchivedRuns(ctx context.Context) ([]string, error) {
	objects, err := s.store.ListObjects(ctx, archiveRunPrefix)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	for _, obj := range objects {
		rest := strings.TrimPrefix(obj.Key, archiveRunPrefix)
		id, _, ok := strings.Cut(rest, "/")
		if !ok || id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids, nil
}

func archiveKey(runID, name string) string {
	return archiveRunPrefix + runID + "/" + name
}
