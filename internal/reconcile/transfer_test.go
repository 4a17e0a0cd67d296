package reconcile

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/estoqueops/estqop/internal/domain"
)

type TransferNeedsSuite struct {
	suite.Suite
}

func TestTransferNeedsSuite(t *testing.T) {
	suite.Run(t, new(TransferNeedsSuite))
}

func catalogEntry(code, stock, min int) domain.Product {
	return domain.Product{Code: code, StockQtyCO: stock, MinQtyCO: min}
}

func confirmedSale(code, qty int) domain.Sale {
	return domain.Sale{
		ProductCode: code,
		Quantity:    qty,
		Status:      domain.StatusConfirmedPaid,
		Channel:     domain.ChannelWebsite,
	}
}

func (s *TransferNeedsSuite) TestBatchSmoothing() {
	products := []domain.Product{catalogEntry(1, 50, 20)}

	s.Run("need at the batch size passes through", func() {
		needs := TransferNeeds(products, []domain.Sale{confirmedSale(1, 40)})
		s.Require().Len(needs, 1)
		s.Equal(10, needs[0].StockAfterSales)
		s.Equal(10, needs[0].RawNeed)
		s.Equal(10, needs[0].TransferQty)
	})

	s.Run("need above the batch size passes through", func() {
		needs := TransferNeeds(products, []domain.Sale{confirmedSale(1, 45)})
		s.Require().Len(needs, 1)
		s.Equal(5, needs[0].StockAfterSales)
		s.Equal(15, needs[0].RawNeed)
		s.Equal(15, needs[0].TransferQty)
	})

	s.Run("small need rounds up to one batch", func() {
		needs := TransferNeeds(products, []domain.Sale{confirmedSale(1, 33)})
		s.Require().Len(needs, 1)
		s.Equal(17, needs[0].StockAfterSales)
		s.Equal(3, needs[0].RawNeed)
		s.Equal(10, needs[0].TransferQty)
	})

	s.Run("need of one sits below the smoothing window", func() {
		needs := TransferNeeds(products, []domain.Sale{confirmedSale(1, 31)})
		s.Require().Len(needs, 1)
		s.Equal(1, needs[0].RawNeed)
		s.Equal(1, needs[0].TransferQty)
	})

	s.Run("zero need stays zero", func() {
		needs := TransferNeeds(products, []domain.Sale{confirmedSale(1, 10)})
		s.Require().Len(needs, 1)
		s.Equal(40, needs[0].StockAfterSales)
		s.Equal(0, needs[0].RawNeed)
		s.Equal(0, needs[0].TransferQty)
	})
}

func (s *TransferNeedsSuite) TestJoinAndGrouping() {
	s.Run("confirmed sales accumulate per entry", func() {
		products := []domain.Product{catalogEntry(1, 50, 20)}
		sales := []domain.Sale{
			confirmedSale(1, 5),
			{ProductCode: 1, Quantity: 7, Status: domain.StatusConfirmedPending, Channel: domain.ChannelSalesRep},
		}

		needs := TransferNeeds(products, sales)
		s.Require().Len(needs, 1)
		s.Equal(12, needs[0].TotalSoldQty)
		s.Equal(38, needs[0].StockAfterSales)
	})

	s.Run("non-confirmed sales never count", func() {
		products := []domain.Product{catalogEntry(1, 50, 20)}
		sales := []domain.Sale{
			confirmedSale(1, 5),
			{ProductCode: 1, Quantity: 100, Status: domain.StatusCancelled, Channel: domain.ChannelWebsite},
			{ProductCode: 1, Quantity: 100, Status: domain.StatusNotFinalized, Channel: domain.ChannelWebsite},
			{ProductCode: 1, Quantity: 100, Status: domain.StatusUnknownError, Channel: domain.ChannelWebsite},
		}

		needs := TransferNeeds(products, sales)
		s.Require().Len(needs, 1)
		s.Equal(5, needs[0].TotalSoldQty)
	})

	s.Run("entries without confirmed sales emit nothing", func() {
		products := []domain.Product{catalogEntry(1, 50, 20), catalogEntry(2, 30, 10)}
		sales := []domain.Sale{
			confirmedSale(1, 5),
			{ProductCode: 2, Quantity: 8, Status: domain.StatusCancelled, Channel: domain.ChannelWebsite},
		}

		needs := TransferNeeds(products, sales)
		s.Require().Len(needs, 1)
		s.Equal(1, needs[0].ProductCode)
	})

	s.Run("unknown product codes contribute nothing", func() {
		products := []domain.Product{catalogEntry(1, 50, 20)}
		sales := []domain.Sale{confirmedSale(999, 40)}

		s.Empty(TransferNeeds(products, sales))
	})

	s.Run("emission follows catalog order, not code order", func() {
		products := []domain.Product{catalogEntry(7, 50, 20), catalogEntry(3, 60, 30)}
		sales := []domain.Sale{confirmedSale(3, 1), confirmedSale(7, 1)}

		needs := TransferNeeds(products, sales)
		s.Require().Len(needs, 2)
		s.Equal(7, needs[0].ProductCode)
		s.Equal(3, needs[1].ProductCode)
	})

	s.Run("duplicate codes attach to the first entry only", func() {
		products := []domain.Product{catalogEntry(2, 30, 10), catalogEntry(2, 99, 50)}
		sales := []domain.Sale{confirmedSale(2, 25)}

		needs := TransferNeeds(products, sales)
		s.Require().Len(needs, 1)
		s.Equal(30, needs[0].StockQtyCO)
		s.Equal(25, needs[0].TotalSoldQty)
		s.Equal(5, needs[0].StockAfterSales)
		s.Equal(5, needs[0].RawNeed)
		s.Equal(10, needs[0].TransferQty)
	})
}

func (s *TransferNeedsSuite) TestOversoldStock() {
	products := []domain.Product{catalogEntry(1, 10, 5)}
	needs := TransferNeeds(products, []domain.Sale{confirmedSale(1, 30)})

	s.Require().Len(needs, 1)
	s.Equal(-20, needs[0].StockAfterSales)
	s.Equal(25, needs[0].RawNeed)
	s.Equal(25, needs[0].TransferQty)
}

func (s *TransferNeedsSuite) TestNeedNeverNegative() {
	s.Run("absInt strips the sign", func() {
		s.Equal(3, absInt(-3))
		s.Equal(3, absInt(3))
		s.Equal(0, absInt(0))
	})

	s.Run("no catalog shape drives the need below zero", func() {
		products := []domain.Product{
			catalogEntry(1, 100, 0),
			catalogEntry(2, 0, 0),
			catalogEntry(3, -5, -10),
		}
		sales := []domain.Sale{
			confirmedSale(1, 1),
			confirmedSale(2, 1),
			confirmedSale(3, 1),
		}

		needs := TransferNeeds(products, sales)
		s.Require().Len(needs, 3)
		for _, n := range needs {
			s.GreaterOrEqual(n.RawNeed, 0)
			s.GreaterOrEqual(n.TransferQty, 0)
		}
	})
}

func (s *TransferNeedsSuite) TestSoldQuantityConservation() {
	products := []domain.Product{catalogEntry(1, 50, 20), catalogEntry(2, 40, 15)}
	sales := []domain.Sale{
		confirmedSale(1, 5),
		confirmedSale(2, 9),
		confirmedSale(1, 3),
		confirmedSale(777, 100),
		{ProductCode: 2, Quantity: 50, Status: domain.StatusCancelled, Channel: domain.ChannelWebsite},
	}

	needs := TransferNeeds(products, sales)

	total := 0
	for _, n := range needs {
		total += n.TotalSoldQty
	}
	s.Equal(5+9+3, total)
}

func (s *TransferNeedsSuite) TestNoSales() {
	needs := TransferNeeds([]domain.Product{catalogEntry(1, 50, 20)}, nil)
	s.NotNil(needs)
	s.Empty(needs)
}
