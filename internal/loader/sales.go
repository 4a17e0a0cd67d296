package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/estoqueops/estqop/internal/domain"
)

// Sales reads the sales file into a Sale sequence in file order.
// Expected row format: productCode;quantity;statusCode;channelCode, all
// integers, no header. Unmapped status or channel codes are load errors,
// never divergences.
func Sales(path string) ([]domain.Sale, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sales file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = Delimiter
	reader.FieldsPerRecord = 4

	var sales []domain.Sale
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read sales file %s: %w", path, err)
		}

		productCode, err := intField(record[0], "product code", path, line)
		if err != nil {
			return nil, err
		}
		quantity, err := intField(record[1], "quantity", path, line)
		if err != nil {
			return nil, err
		}
		statusCode, err := intField(record[2], "status code", path, line)
		if err != nil {
			return nil, err
		}
		channelCode, err := intField(record[3], "channel code", path, line)
		if err != nil {
			return nil, err
		}

		status, err := domain.ParseSaleStatus(statusCode)
		if err != nil {
			return nil, fmt.Errorf("%s record %d: %w", path, line, err)
		}
		channel, err := domain.ParseSalesChannel(channelCode)
		if err != nil {
			return nil, fmt.Errorf("%s record %d: %w", path, line, err)
		}

		sales = append(sales, domain.Sale{
			ProductCode: productCode,
			Quantity:    quantity,
			Status:      status,
			Channel:     channel,
		})
	}

	return sales, nil
}
