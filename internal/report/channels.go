package report

import (
	"fmt"
	"strings"

	"github.com/estoqueops/estqop/internal/domain"
)

const channelHeader = "Quantidades de Vendas por canal\n\n"

// RenderChannelTotals renders the per-channel sales report: title, column
// line, then one row per channel in the order given. Row labels combine the
// channel code and its display description.
func RenderChannelTotals(totals []domain.ChannelTotal) string {
	var b strings.Builder
	b.WriteString(channelHeader)
	fmt.Fprintf(&b, "%-21s %9s\n", "Canal", "QtVendas")
	for _, ct := range totals {
		label := fmt.Sprintf("%d - %s", int(ct.Channel), ct.Channel.Description())
		fmt.Fprintf(&b, "%-21s %9d\n", label, ct.TotalQty)
	}

	return b.String()
}
