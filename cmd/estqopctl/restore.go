package main

import (
	"fmt"
	"log"

	"github.com/urfave/cli/v2"

	"github.com/estoqueops/estqop/internal/analytics"
)

func runRestore(c *cli.Context) error {
	db := dbFromContext(c)
	if db == nil {
		return fmt.Errorf("database connection not found in context")
	}

	processor := analytics.NewBackfillProcessor(db)
	n, err := processor.ProcessFile(c.Context, c.String("file"))
	if err != nil {
		return err
	}

	log.Printf("Restored %d runs into the ledger", n)
	return nil
}
