package main

import (
	"log"

	"github.com/urfave/cli/v2"

	"github.com/estoqueops/estqop/internal/pipeline"
)

func newRunner(c *cli.Context) *pipeline.Runner {
	var repo *pipeline.Repository
	if db := dbFromContext(c); db != nil {
		repo = pipeline.NewRepository(db)
	}
	return pipeline.NewRunner(repo)
}

func runReconcile(c *cli.Context) error {
	run, err := newRunner(c).Run(c.Context, c.String("input"), c.String("output"))
	if err != nil {
		return err
	}

	log.Printf("Run %s: %d products, %d sales, %d transfer lines, %d divergences, %d channels",
		run.ID, run.ProductsRead, run.SalesRead,
		run.TransferCount, run.DivergenceCount, run.ChannelCount)
	return nil
}

func runBatch(c *cli.Context) error {
	cfg := pipeline.DefaultConfig()
	if w := c.Int("workers"); w > 0 {
		cfg.WorkerCount = w
	}

	worker := pipeline.NewWorker(newRunner(c), cfg)
	orch := pipeline.NewOrchestrator(worker)
	return orch.Run(c.Context, c.String("drops"), c.String("output"))
}

func runRetry(c *cli.Context) error {
	var repo *pipeline.Repository
	if db := dbFromContext(c); db != nil {
		repo = pipeline.NewRepository(db)
	}
	worker := pipeline.NewWorker(pipeline.NewRunner(repo), pipeline.DefaultConfig())

	n, err := worker.RetryFailed(c.Context)
	if err != nil {
		return err
	}
	log.Printf("Retried %d failed runs", n)

	m, err := repo.GetMetrics(c.Context)
	if err != nil {
		return err
	}
	log.Printf("Ledger: %d completed, %d failed, %d divergences found",
		m.RunsCompleted, m.RunsFailed, m.DivergencesFound)
	return nil
}
