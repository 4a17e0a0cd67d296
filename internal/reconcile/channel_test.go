package reconcile

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/estoqueops/estqop/internal/domain"
)

type ChannelTotalsSuite struct {
	suite.Suite
}

func TestChannelTotalsSuite(t *testing.T) {
	suite.Run(t, new(ChannelTotalsSuite))
}

func channelSale(channel domain.SalesChannel, qty int, status domain.SaleStatus) domain.Sale {
	return domain.Sale{ProductCode: 1, Quantity: qty, Status: status, Channel: channel}
}

func (s *ChannelTotalsSuite) TestGroupsAscendingByChannelCode() {
	sales := []domain.Sale{
		channelSale(domain.ChannelIOSApp, 4, domain.StatusConfirmedPaid),
		channelSale(domain.ChannelWebsite, 2, domain.StatusConfirmedPaid),
		channelSale(domain.ChannelWebsite, 3, domain.StatusConfirmedPending),
		channelSale(domain.ChannelSalesRep, 1, domain.StatusConfirmedPaid),
	}

	totals := ChannelTotals(sales)

	s.Require().Len(totals, 3)
	s.Equal(domain.ChannelSalesRep, totals[0].Channel)
	s.Equal(1, totals[0].TotalQty)
	s.Equal(domain.ChannelWebsite, totals[1].Channel)
	s.Equal(5, totals[1].TotalQty)
	s.Equal(domain.ChannelIOSApp, totals[2].Channel)
	s.Equal(4, totals[2].TotalQty)
}

func (s *ChannelTotalsSuite) TestNonConfirmedSalesExcluded() {
	sales := []domain.Sale{
		channelSale(domain.ChannelAndroidApp, 9, domain.StatusCancelled),
		channelSale(domain.ChannelAndroidApp, 9, domain.StatusNotFinalized),
		channelSale(domain.ChannelAndroidApp, 9, domain.StatusUnknownError),
		channelSale(domain.ChannelAndroidApp, 2, domain.StatusConfirmedPaid),
	}

	totals := ChannelTotals(sales)

	s.Require().Len(totals, 1)
	s.Equal(domain.ChannelAndroidApp, totals[0].Channel)
	s.Equal(2, totals[0].TotalQty)
}

func (s *ChannelTotalsSuite) TestChannelsWithoutConfirmedSalesOmitted() {
	sales := []domain.Sale{
		channelSale(domain.ChannelWebsite, 5, domain.StatusConfirmedPaid),
		channelSale(domain.ChannelIOSApp, 5, domain.StatusCancelled),
	}

	totals := ChannelTotals(sales)

	s.Require().Len(totals, 1)
	s.Equal(domain.ChannelWebsite, totals[0].Channel)
}

func (s *ChannelTotalsSuite) TestQuantityConservation() {
	sales := []domain.Sale{
		channelSale(domain.ChannelSalesRep, 10, domain.StatusConfirmedPaid),
		channelSale(domain.ChannelWebsite, 20, domain.StatusConfirmedPending),
		channelSale(domain.ChannelAndroidApp, 30, domain.StatusConfirmedPaid),
		channelSale(domain.ChannelIOSApp, 40, domain.StatusCancelled),
	}

	total := 0
	for _, ct := range ChannelTotals(sales) {
		total += ct.TotalQty
	}
	s.Equal(60, total)
}

func (s *ChannelTotalsSuite) TestNoSales() {
	totals := ChannelTotals(nil)
	s.NotNil(totals)
	s.Empty(totals)
}
