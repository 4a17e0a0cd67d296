// Package reconcile implements the warehouse-vs-CO reconciliation core:
// joining the product catalog to confirmed sales and deriving transfer
// needs, divergences and per-channel sales totals.
//
// All three calculators are pure functions of the two loaded sequences.
// Nothing here reads files or writes output; loading and rendering live in
// the loader and report packages.
package reconcile

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/estoqueops/estqop/internal/domain"
)

// Result holds the three derived result sets of one reconciliation pass.
type Result struct {
	TransferNeeds []domain.TransferNeed `json:"transfer_needs"`
	Divergences   []domain.Divergence   `json:"divergences"`
	ChannelTotals []domain.ChannelTotal `json:"channel_totals"`
}

// Run computes all three result sets from the loaded sequences. The
// calculators only read the shared slices, so they run concurrently.
func Run(ctx context.Context, products []domain.Product, sales []domain.Sale) (*Result, error) {
	res := &Result{}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.TransferNeeds = TransferNeeds(products, sales)
		return nil
	})
	g.Go(func() error {
		res.Divergences = Divergences(products, sales)
		return nil
	})
	g.Go(func() error {
		res.ChannelTotals = ChannelTotals(sales)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}
