package main

import (
	"fmt"
	"log"

	"github.com/urfave/cli/v2"

	"github.com/estoqueops/estqop/internal/drive"
)

func runPull(c *cli.Context) error {
	svc, err := drive.NewService(c.String("credentials"))
	if err != nil {
		return fmt.Errorf("failed to create Drive service: %w", err)
	}

	downloader := drive.NewDownloader(svc)
	paths, err := downloader.DownloadFolderInputs(c.Context, drive.DownloadOptions{
		FolderID:    c.String("folder-id"),
		DownloadDir: c.String("dest"),
	})
	if err != nil {
		return fmt.Errorf("failed to download inputs: %w", err)
	}

	if len(paths) == 0 {
		log.Println("No recognized input files in the Drive folder")
		return nil
	}
	for _, p := range paths {
		log.Printf("Downloaded %s", p)
	}
	return nil
}
