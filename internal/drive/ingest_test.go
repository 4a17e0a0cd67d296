package drive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestClassifyInputName(t *testing.T) {
	tests := []struct {
		name string
		kind string
		ok   bool
	}{
		{"produtos.txt", KindProducts, true},
		{"vendas.txt", KindSales, true},
		{"Produtos.XLSX", KindProducts, true},
		{"VENDAS.xlsx", KindSales, true},
		{"vendas.csv", "", false},
		{"estoque.txt", "", false},
		{"produtos", "", false},
		{"relatorio.pdf", "", false},
	}

	for _, tt := range tests {
		kind, ok := classifyInputName(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.kind, kind, tt.name)
	}
}

func TestConvertXLSXToTxt(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "vendas.xlsx")

	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	require.NoError(t, wb.SetCellValue(sheet, "A1", "00001"))
	require.NoError(t, wb.SetCellValue(sheet, "B1", 40))
	require.NoError(t, wb.SetCellValue(sheet, "C1", 100))
	require.NoError(t, wb.SetCellValue(sheet, "D1", 2))
	require.NoError(t, wb.SetCellValue(sheet, "A2", ""))
	require.NoError(t, wb.SetCellValue(sheet, "A3", "00002"))
	require.NoError(t, wb.SetCellValue(sheet, "B3", 5))
	require.NoError(t, wb.SetCellValue(sheet, "C3", 135))
	require.NoError(t, wb.SetCellValue(sheet, "D3", 1))
	require.NoError(t, wb.SaveAs(xlsxPath))
	require.NoError(t, wb.Close())

	txtPath := filepath.Join(dir, "vendas.txt")
	require.NoError(t, convertXLSXToTxt(xlsxPath, txtPath))

	data, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	assert.Equal(t, "00001;40;100;2\n00002;5;135;1\n", string(data))
}

func TestConvertXLSXToTxtMissingFile(t *testing.T) {
	dir := t.TempDir()
	err := convertXLSXToTxt(filepath.Join(dir, "nope.xlsx"), filepath.Join(dir, "out.txt"))
	require.Error(t, err)
}

func TestValidateInput(t *testing.T) {
	dir := t.TempDir()

	products := filepath.Join(dir, "produtos.txt")
	require.NoError(t, os.WriteFile(products, []byte("00001;50;20\n"), 0o644))
	assert.NoError(t, validateInput(KindProducts, products))

	sales := filepath.Join(dir, "vendas.txt")
	require.NoError(t, os.WriteFile(sales, []byte("00001;40;100;2\n"), 0o644))
	assert.NoError(t, validateInput(KindSales, sales))

	bad := filepath.Join(dir, "ruim.txt")
	require.NoError(t, os.WriteFile(bad, []byte("00001;40;777;2\n"), 0o644))
	err := validateInput(KindSales, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "777")
}

func TestPromoteReplacesInboxFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "staged.txt")
	require.NoError(t, os.WriteFile(src, []byte("00001;50;20\n"), 0o644))

	inbox := filepath.Join(dir, "inbox")
	svc := &IngestService{inboxDir: inbox}
	require.NoError(t, svc.promote(src, KindProducts))

	data, err := os.ReadFile(filepath.Join(inbox, "produtos.txt"))
	require.NoError(t, err)
	assert.Equal(t, "00001;50;20\n", string(data))

	require.NoError(t, os.WriteFile(src, []byte("00002;10;5\n"), 0o644))
	require.NoError(t, svc.promote(src, KindProducts))

	data, err = os.ReadFile(filepath.Join(inbox, "produtos.txt"))
	require.NoError(t, err)
	assert.Equal(t, "00002;10;5\n", string(data))

	entries, err := os.ReadDir(inbox)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
