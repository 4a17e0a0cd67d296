package reconcile

import (
	"fmt"

	"github.com/estoqueops/estqop/internal/domain"
)

const unknownProductMsg = "Código de Produto não encontrado"

// Divergences scans the sales sequence in file order and flags every row
// that references an unknown product or carries a non-confirmed status.
// Line numbers are 1-based positions in the sequence. When both conditions
// hold, the unknown-product message wins.
func Divergences(products []domain.Product, sales []domain.Sale) []domain.Divergence {
	divergences := make([]domain.Divergence, 0)
	for i, sale := range sales {
		_, known := firstIndexByCode(products, sale.ProductCode)
		switch {
		case !known:
			divergences = append(divergences, domain.Divergence{
				SaleLine: i + 1,
				Message:  fmt.Sprintf("%s %05d", unknownProductMsg, sale.ProductCode),
			})
		case !sale.Status.IsConfirmed():
			divergences = append(divergences, domain.Divergence{
				SaleLine: i + 1,
				Message:  sale.Status.ErrorMessage(),
			})
		}
	}

	return divergences
}
