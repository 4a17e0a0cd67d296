package main

import (
	"fmt"
	"log"

	"github.com/urfave/cli/v2"

	"github.com/estoqueops/estqop/internal/config"
	"github.com/estoqueops/estqop/internal/service"
	"github.com/estoqueops/estqop/internal/storage"
)

func archiveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "archive-endpoint",
			Usage:    "Object storage endpoint",
			Required: true,
			EnvVars:  []string{"ARCHIVE_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:     "archive-access-key",
			Usage:    "Object storage access key",
			Required: true,
			EnvVars:  []string{"ARCHIVE_ACCESS_KEY"},
		},
		&cli.StringFlag{
			Name:     "archive-secret-key",
			Usage:    "Object storage secret key",
			Required: true,
			EnvVars:  []string{"ARCHIVE_SECRET_KEY"},
		},
		&cli.StringFlag{
			Name:    "archive-bucket",
			Usage:   "Bucket the reports are archived in",
			Value:   "estqop-reports",
			EnvVars: []string{"ARCHIVE_BUCKET"},
		},
		&cli.BoolFlag{
			Name:    "archive-use-ssl",
			Usage:   "Use TLS for the storage endpoint",
			Value:   true,
			EnvVars: []string{"ARCHIVE_USE_SSL"},
		},
	}
}

func newArchiveService(c *cli.Context) (*service.ArchiveService, error) {
	client, err := storage.NewMinioClient(config.ArchiveConfig{
		Endpoint:  c.String("archive-endpoint"),
		AccessKey: c.String("archive-access-key"),
		SecretKey: c.String("archive-secret-key"),
		Bucket:    c.String("archive-bucket"),
		UseSSL:    c.Bool("archive-use-ssl"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return service.NewArchiveService(client), nil
}

func runArchive(c *cli.Context) error {
	svc, err := newArchiveService(c)
	if err != nil {
		return err
	}

	runID := c.String("run-id")
	if err := svc.ArchiveRun(c.Context, runID, c.String("output")); err != nil {
		return err
	}

	log.Printf("Archived reports of run %s", runID)
	return nil
}

func runFetch(c *cli.Context) error {
	svc, err := newArchiveService(c)
	if err != nil {
		return err
	}

	runID := c.String("run-id")
	if runID == "" {
		runs, err := svc.ListArchivedRuns(c.Context)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			log.Println("No archived runs")
			return nil
		}
		for _, id := range runs {
			fmt.Println(id)
		}
		return nil
	}

	dest := c.String("dest")
	if err := svc.FetchRun(c.Context, runID, dest); err != nil {
		return err
	}

	log.Printf("Restored reports of run %s into %s", runID, dest)
	return nil
}
