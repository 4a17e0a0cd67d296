package reconcile

import "github.com/estoqueops/estqop/internal/domain"

// Batch smoothing bounds: needs strictly between the two ship as one batch.
const (
	smoothingLo = 1
	smoothingHi = 10
	batchQty    = 10
)

// TransferNeeds joins confirmed sales to catalog entries and derives the
// warehouse-to-CO transfer recommendation per entry, emitted in catalog
// file order.
//
// Catalog codes are not guaranteed unique: a sale always attaches to the
// first entry carrying its code, and grouping is by entry position rather
// than code value, so two entries sharing a code are never merged. Sales
// referencing no catalog entry are skipped here; they surface as
// divergences instead.
func TransferNeeds(products []domain.Product, sales []domain.Sale) []domain.TransferNeed {
	// 1. Attach each confirmed sale to the first catalog entry with its code
	// and accumulate sold quantity per entry position.
	soldByIndex := make(map[int]int)
	for _, sale := range sales {
		if !sale.Status.IsConfirmed() {
			continue
		}
		idx, ok := firstIndexByCode(products, sale.ProductCode)
		if !ok {
			continue
		}
		soldByIndex[idx] += sale.Quantity
	}

	// 2. Emit one record per sold entry, ascending by catalog position.
	// Entries without confirmed sales produce nothing.
	needs := make([]domain.TransferNeed, 0, len(soldByIndex))
	for idx, product := range products {
		sold, ok := soldByIndex[idx]
		if !ok {
			continue
		}

		// 3. Post-sale stock may go negative; the need never does. The abs
		// wrap is a no-op behind the clamp and stays as the explicit guard
		// on that bound.
		stockAfter := product.StockQtyCO - sold
		rawNeed := absInt(max(product.MinQtyCO-stockAfter, 0))

		// 4. Batch smoothing: a small positive need still ships as one
		// full batch. Zero stays zero and needs of batchQty or more pass
		// through unchanged.
		transferQty := rawNeed
		if rawNeed > smoothingLo && rawNeed < smoothingHi {
			transferQty = batchQty
		}

		needs = append(needs, domain.TransferNeed{
			ProductCode:     product.Code,
			StockQtyCO:      product.StockQtyCO,
			MinQtyCO:        product.MinQtyCO,
			TotalSoldQty:    sold,
			StockAfterSales: stockAfter,
			RawNeed:         rawNeed,
			TransferQty:     transferQty,
		})
	}

	return needs
}

// firstIndexByCode returns the position of the first catalog entry carrying
// the given code.
func firstIndexByCode(products []domain.Product, code int) (int, bool) {
	for i, p := range products {
		if p.Code == code {
			return i, true
		}
	}

	return 0, false
}

// absInt returns n with a negative sign stripped.
func absInt(n int) int {
	if n < 0 {
		return -n
	}

	return n
}
