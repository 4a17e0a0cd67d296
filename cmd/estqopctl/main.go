package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Run-ledger connection string",
		Required: required,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	dbURL := c.String("db-url")
	if dbURL == "" {
		return nil
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Store the database connection in the context
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	// Close the database connection when done
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(c *cli.Context) *sql.DB {
	db, _ := c.Context.Value(dbKey).(*sql.DB)
	return db
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "estqopctl",
		Usage: "Operate the stock reconciliation pipeline",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run one reconciliation over an input directory",
				Flags: []cli.Flag{
					newDBURLFlag(false),
					&cli.StringFlag{
						Name:    "input",
						Usage:   "Directory holding produtos.txt and vendas.txt",
						Value:   "./data/input",
						EnvVars: []string{"APP_INPUT_DIR"},
					},
					&cli.StringFlag{
						Name:    "output",
						Usage:   "Directory the three reports are written to",
						Value:   "./data/output",
						EnvVars: []string{"APP_OUTPUT_DIR"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runReconcile,
			},
			{
				Name:  "batch",
				Usage: "Process every dated drop under a root directory",
				Flags: []cli.Flag{
					newDBURLFlag(false),
					&cli.StringFlag{
						Name:    "drops",
						Usage:   "Root directory of dated input drops",
						Value:   "./data/drops",
						EnvVars: []string{"APP_DROPS_DIR"},
					},
					&cli.StringFlag{
						Name:    "output",
						Usage:   "Root directory for per-drop report output",
						Value:   "./data/output",
						EnvVars: []string{"APP_OUTPUT_DIR"},
					},
					&cli.IntFlag{
						Name:    "workers",
						Usage:   "Number of drops processed concurrently",
						Value:   4,
						EnvVars: []string{"PIPELINE_WORKERS"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runBatch,
			},
			{
				Name:   "retry",
				Usage:  "Re-run every failed run recorded in the ledger",
				Flags:  []cli.Flag{newDBURLFlag(true)},
				Before: initDB,
				After:  closeDB,
				Action: runRetry,
			},
			{
				Name:  "archive",
				Usage: "Upload a run's reports to object storage",
				Flags: append(archiveFlags(),
					&cli.StringFlag{
						Name:     "run-id",
						Usage:    "Run whose reports are archived",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Usage:   "Directory holding the run's reports",
						Value:   "./data/output",
						EnvVars: []string{"APP_OUTPUT_DIR"},
					},
				),
				Action: runArchive,
			},
			{
				Name:  "fetch",
				Usage: "Download a run's archived reports, or list archived runs",
				Flags: append(archiveFlags(),
					&cli.StringFlag{
						Name:  "run-id",
						Usage: "Run to fetch; lists archived runs when omitted",
					},
					&cli.StringFlag{
						Name:  "dest",
						Usage: "Directory the reports are restored into",
						Value: "./data/restored",
					},
				),
				Action: runFetch,
			},
			{
				Name:  "restore",
				Usage: "Backfill the run ledger from an exported CSV",
				Flags: []cli.Flag{
					newDBURLFlag(true),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "CSV export produced by the dashboard",
						Required: true,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runRestore,
			},
			{
				Name:  "seed",
				Usage: "Write demo input fixtures",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dir",
						Usage:   "Directory the fixtures are written to",
						Value:   "./data/input",
						EnvVars: []string{"APP_INPUT_DIR"},
					},
				},
				Action: runSeed,
			},
			{
				Name:  "pull",
				Usage: "Download input files from the Drive folder",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "credentials",
						Usage:    "Service account credentials file",
						Required: true,
						EnvVars:  []string{"DRIVE_CREDENTIALS_FILE"},
					},
					&cli.StringFlag{
						Name:     "folder-id",
						Usage:    "Drive folder holding the input files",
						Required: true,
						EnvVars:  []string{"DRIVE_FOLDER_ID"},
					},
					&cli.StringFlag{
						Name:    "dest",
						Usage:   "Directory the inputs are downloaded into",
						Value:   "./data/input",
						EnvVars: []string{"APP_INPUT_DIR"},
					},
				},
				Action: runPull,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
