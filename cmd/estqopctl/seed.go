package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/estoqueops/estqop/internal/pipeline"
)

// Demo inputs covering a transfer with need smoothing, a large transfer,
// well-stocked products and every divergence cause.
const (
	demoProducts = `00001;56;20
00002;3;40
00003;200;35
00004;12;10
`
	demoSales = `00001;40;100;2
00001;5;135;1
00002;38;102;3
00003;160;100;4
00009;7;100;2
00004;3;190;1
00002;1;100;2
`
)

func runSeed(c *cli.Context) error {
	dir := c.String("dir")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create fixture dir: %w", err)
	}

	fixtures := map[string]string{
		pipeline.ProductsFilename: demoProducts,
		pipeline.SalesFilename:    demoSales,
	}
	for name, content := range fixtures {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Printf("Wrote %s", path)
	}

	return nil
}
