package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const dropDateLayout = "2006-01-02"

// Orchestrator discovers dated drop directories and hands them to the
// worker pool in chronological order.
type Orchestrator struct {
	worker *Worker
}

// NewOrchestrator creates an orchestrator around the given worker.
func NewOrchestrator(worker *Worker) *Orchestrator {
	return &Orchestrator{worker: worker}
}

// DiscoverDrops scans dropsRoot for subdirectories named YYYY-MM-DD that
// hold both input files. Each drop's reports go to the matching dated
// subdirectory of outputRoot.
func DiscoverDrops(dropsRoot, outputRoot string) ([]Drop, error) {
	entries, err := os.ReadDir(dropsRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read drops directory: %w", err)
	}

	var drops []Drop
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		date, err := time.Parse(dropDateLayout, entry.Name())
		if err != nil {
			continue
		}
		inputDir := filepath.Join(dropsRoot, entry.Name())
		if !hasInputFiles(inputDir) {
			log.Printf("Skipping drop %s: incomplete input files", entry.Name())
			continue
		}
		drops = append(drops, Drop{
			Date:      date,
			InputDir:  inputDir,
			OutputDir: filepath.Join(outputRoot, entry.Name()),
		})
	}

	sort.Slice(drops, func(i, j int) bool {
		return drops[i].Date.Before(drops[j].Date)
	})
	return drops, nil
}

func hasInputFiles(dir string) bool {
	for _, name := range []string{ProductsFilename, SalesFilename} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || info.IsDir() {
			return false
		}
	}
	return true
}

// Run discovers all drops under dropsRoot and processes them.
func (o *Orchestrator) Run(ctx context.Context, dropsRoot, outputRoot string) error {
	drops, err := DiscoverDrops(dropsRoot, outputRoot)
	if err != nil {
		return err
	}
	if len(drops) == 0 {
		log.Printf("No drops found under %s", dropsRoot)
		return nil
	}

	log.Printf("Found %d drops (%s to %s)",
		len(drops),
		drops[0].Date.Format(dropDateLayout),
		drops[len(drops)-1].Date.Format(dropDateLayout))

	return o.worker.ProcessDrops(ctx, drops)
}
