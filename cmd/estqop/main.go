package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/estoqueops/estqop/internal/loader"
	"github.com/estoqueops/estqop/internal/reconcile"
	"github.com/estoqueops/estqop/internal/report"
)

const banner = "Estoque Operacional"

// The batch contract is fixed relative paths in the working directory, no
// flags and no environment lookups.
const (
	productsPath = "produtos.txt"
	salesPath    = "vendas.txt"
)

const missingFileMsg = "Arquivo de teste não encontrado"

func main() {
	fmt.Println(banner)
	fmt.Println()

	if !ensureInputFiles() {
		os.Exit(1)
	}

	start := time.Now()

	products, err := loader.Catalog(productsPath)
	if err != nil {
		log.Fatalf("Failed to load product catalog: %v", err)
	}

	sales, err := loader.Sales(salesPath)
	if err != nil {
		log.Fatalf("Failed to load sales: %v", err)
	}

	res, err := reconcile.Run(context.Background(), products, sales)
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}

	if err := report.Write(".", res.TransferNeeds, res.Divergences, res.ChannelTotals); err != nil {
		log.Fatalf("Failed to write reports: %v", err)
	}

	log.Printf("Reconciled %d products and %d sales in %v: %d transfer needs, %d divergences, %d channels with sales",
		len(products), len(sales), time.Since(start).Round(time.Millisecond),
		len(res.TransferNeeds), len(res.Divergences), len(res.ChannelTotals))
}

// ensureInputFiles reports every missing input file on stderr before the
// caller gives up, so the operator sees all problems at once. Nothing is
// computed or written when any file is absent.
func ensureInputFiles() bool {
	ok := true
	for _, path := range []string{productsPath, salesPath} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			continue
		}
		ok = false

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n", missingFileMsg, abs)
	}

	return ok
}
