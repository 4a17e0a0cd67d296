package drive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DownloadOptions controls how input files are pulled from Google Drive.
type DownloadOptions struct {
	FolderID    string
	DownloadDir string
}

// Downloader wraps Service to pull the counter-office input files from a
// shared folder.
type Downloader struct {
	service *Service
}

// NewDownloader creates a new Downloader.
func NewDownloader(s *Service) *Downloader {
	return &Downloader{service: s}
}

// DownloadFolderInputs downloads the recognized input files (produtos/vendas
// as .txt or .xlsx) from the given Drive folder into DownloadDir and returns
// local .txt paths.
//
//   - .txt files are downloaded directly.
//   - .xlsx workbooks are downloaded to a temporary file, the first sheet is
//     converted to the semicolon layout, and the workbook is removed.
func (d *Downloader) DownloadFolderInputs(ctx context.Context, opts DownloadOptions) ([]string, error) {
	if opts.DownloadDir == "" {
		return nil, fmt.Errorf("download dir is required")
	}
	if err := os.MkdirAll(opts.DownloadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	files, err := d.service.ListFiles(opts.FolderID)
	if err != nil {
		return nil, err
	}

	var localPaths []string
	for _, f := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		kind, ok := classifyInputName(f.Name)
		if !ok {
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name))

		if ext == ".txt" {
			localPath := filepath.Join(opts.DownloadDir, kind+".txt")
			if err := d.downloadTo(f.ID, localPath); err != nil {
				return nil, fmt.Errorf("failed to download %s: %w", f.Name, err)
			}
			localPaths = append(localPaths, localPath)
			continue
		}

		// XLSX: download then convert the first sheet
		tmpXLSXPath := filepath.Join(opts.DownloadDir, f.Name)
		if err := d.downloadTo(f.ID, tmpXLSXPath); err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", f.Name, err)
		}

		txtPath := filepath.Join(opts.DownloadDir, kind+".txt")
		if err := convertXLSXToTxt(tmpXLSXPath, txtPath); err != nil {
			return nil, fmt.Errorf("failed to convert %s: %w", f.Name, err)
		}
		_ = os.Remove(tmpXLSXPath)
		localPaths = append(localPaths, txtPath)
	}

	return localPaths, nil
}

func (d *Downloader) downloadTo(fileID, localPath string) error {
	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create local file %s: %w", localPath, err)
	}
	if err := d.service.DownloadFile(fileID, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// classifyInputName maps a Drive filename to the input kind it carries.
// Recognized stems are "produtos" and "vendas" with a .txt or .xlsx
// extension, case-insensitive.
func classifyInputName(name string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".txt" && ext != ".xlsx" {
		return "", false
	}
	stem := strings.ToLower(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	switch stem {
	case KindProducts, KindSales:
		return stem, true
	}
	return "", false
}
