package drive

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// convertXLSXToTxt converts the first sheet of an XLSX workbook to a
// semicolon-separated text file, the layout the loaders expect. Rows with no
// cell content are skipped; the workbooks carry no header row.
func convertXLSXToTxt(xlsxPath, txtPath string) error {
	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("failed to open xlsx file %s: %w", xlsxPath, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("xlsx file %s has no sheets", xlsxPath)
	}
	sheet := sheets[0]

	rows, err := f.Rows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	out, err := os.Create(txtPath)
	if err != nil {
		return fmt.Errorf("failed to create txt file %s: %w", txtPath, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	w.Comma = ';'
	defer w.Flush()

	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("failed to read row from %s: %w", xlsxPath, err)
		}
		if isEmptyRow(record) {
			continue
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write txt row to %s: %w", txtPath, err)
		}
	}

	if err := rows.Error(); err != nil {
		return fmt.Errorf("error iterating rows in %s: %w", xlsxPath, err)
	}

	return nil
}

func isEmptyRow(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}
