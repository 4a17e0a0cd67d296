package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/estoqueops/estqop/internal/domain"
)

func TestRun(t *testing.T) {
	products := []domain.Product{catalogEntry(1, 50, 20), catalogEntry(2, 30, 10)}
	sales := []domain.Sale{
		confirmedSale(1, 40),
		{ProductCode: 2, Quantity: 5, Status: domain.StatusCancelled, Channel: domain.ChannelSalesRep},
		{ProductCode: 999, Quantity: 1, Status: domain.StatusConfirmedPaid, Channel: domain.ChannelIOSApp},
	}

	res, err := Run(context.Background(), products, sales)
	require.NoError(t, err)

	require.Len(t, res.TransferNeeds, 1)
	require.Equal(t, 10, res.TransferNeeds[0].TransferQty)
	require.Len(t, res.Divergences, 2)
	require.Len(t, res.ChannelTotals, 1)
	require.Equal(t, domain.ChannelWebsite, res.ChannelTotals[0].Channel)
	require.Equal(t, 40, res.ChannelTotals[0].TotalQty)
}

func TestRunIsDeterministic(t *testing.T) {
	products := []domain.Product{catalogEntry(1, 50, 20), catalogEntry(3, 25, 25)}
	sales := []domain.Sale{
		confirmedSale(1, 33),
		confirmedSale(3, 4),
		{ProductCode: 1, Quantity: 2, Status: domain.StatusNotFinalized, Channel: domain.ChannelAndroidApp},
	}

	first, err := Run(context.Background(), products, sales)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Run(context.Background(), products, sales)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestRunEmptyInputs(t *testing.T) {
	res, err := Run(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Empty(t, res.TransferNeeds)
	require.Empty(t, res.Divergences)
	require.Empty(t, res.ChannelTotals)
}
