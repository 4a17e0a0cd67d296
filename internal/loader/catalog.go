// Package loader parses the two ';'-delimited input files into in-memory
// sequences, preserving file order. Order is load-bearing: divergence line
// numbers are 1-based positions in the sales sequence, and transfer needs
// are emitted in catalog order. Any structural problem fails the whole
// load; there is no per-row recovery.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/estoqueops/estqop/internal/domain"
)

// Delimiter separates fields in both input files.
const Delimiter = ';'

// Catalog reads the product file into a Product sequence.
// Expected row format: code;stockQtyCO;minQtyCO, all integers, no header.
func Catalog(path string) ([]domain.Product, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open product file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = Delimiter
	reader.FieldsPerRecord = 3

	var products []domain.Product
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read product file %s: %w", path, err)
		}

		code, err := intField(record[0], "code", path, line)
		if err != nil {
			return nil, err
		}
		stock, err := intField(record[1], "stock quantity", path, line)
		if err != nil {
			return nil, err
		}
		minQty, err := intField(record[2], "minimum quantity", path, line)
		if err != nil {
			return nil, err
		}

		products = append(products, domain.Product{
			Code:       code,
			StockQtyCO: stock,
			MinQtyCO:   minQty,
		})
	}

	return products, nil
}

// intField parses one integer field, tolerating surrounding whitespace.
func intField(raw, name, path string, line int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s record %d: invalid %s %q", path, line, name, raw)
	}

	return v, nil
}
