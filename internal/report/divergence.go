package report

import (
	"fmt"
	"strings"

	"github.com/estoqueops/estqop/internal/domain"
)

// RenderDivergences renders one line per divergence, in sequence order.
// The report has no header; no divergences means an empty file. Line
// numbers below 10 are zero padded and the separator is an en dash, both
// fixed output bytes.
func RenderDivergences(divergences []domain.Divergence) string {
	var b strings.Builder
	for _, d := range divergences {
		fmt.Fprintf(&b, "Linha %02d – %s\n", d.SaleLine, d.Message)
	}

	return b.String()
}
