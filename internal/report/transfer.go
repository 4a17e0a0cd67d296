// Package report renders the three reconciliation result sets into their
// fixed-column text documents and writes them out. The output literals are
// fixed bytes: rendering the same results always produces identical files.
package report

import (
	"fmt"
	"strings"

	"github.com/estoqueops/estqop/internal/domain"
)

// Output filenames, relative to the output directory.
const (
	TransferFilename   = "transfere.txt"
	DivergenceFilename = "divergencias.txt"
	ChannelFilename    = "totcanais.txt"
)

const transferHeader = "Necessidade de Transferência Armazém para CO\n\n" +
	"Produto  QtCO  QtMin  QtVendas  Estq.após  Necess.  Transf. de\n" +
	"                                   Vendas            Arm p/ CO\n"

// RenderTransferNeeds renders the transfer report: the fixed header block
// followed by one fixed-column row per record. An empty result set renders
// the header alone.
func RenderTransferNeeds(needs []domain.TransferNeed) string {
	var b strings.Builder
	b.WriteString(transferHeader)
	for _, n := range needs {
		fmt.Fprintf(&b, "%-5d %7d %6d %9d %10d %8d %11d\n",
			n.ProductCode,
			n.StockQtyCO,
			n.MinQtyCO,
			n.TotalSoldQty,
			n.StockAfterSales,
			n.RawNeed,
			n.TransferQty)
	}

	return b.String()
}
