package domain

import "fmt"

// SaleStatus is the wire status code carried by a sales record. The code
// space is reserved for future codes; anything outside the table below is
// rejected at load time.
type SaleStatus int

const (
	StatusConfirmedPaid    SaleStatus = 100
	StatusConfirmedPending SaleStatus = 102
	StatusCancelled        SaleStatus = 135
	StatusNotFinalized     SaleStatus = 190
	StatusUnknownError     SaleStatus = 999
)

var saleStatusNames = map[SaleStatus]string{
	StatusConfirmedPaid:    "confirmed_paid",
	StatusConfirmedPending: "confirmed_pending",
	StatusCancelled:        "cancelled",
	StatusNotFinalized:     "not_finalized",
	StatusUnknownError:     "unknown_error",
}

var saleStatusMessages = map[SaleStatus]string{
	StatusCancelled:    "Venda cancelada",
	StatusNotFinalized: "Venda não finalizada",
	// The trailing period is required output; the other messages carry none.
	StatusUnknownError: "Erro desconhecido. Acionar equipe de TI.",
}

// IsConfirmed reports whether the sale counts toward stock depletion and
// channel totals. Pending payment still counts.
func (s SaleStatus) IsConfirmed() bool {
	return s == StatusConfirmedPaid || s == StatusConfirmedPending
}

// ErrorMessage returns the divergence report message for a non-confirmed
// status, or "N/A" for confirmed ones.
func (s SaleStatus) ErrorMessage() string {
	if msg, ok := saleStatusMessages[s]; ok {
		return msg
	}

	return "N/A"
}

func (s SaleStatus) String() string {
	if name, ok := saleStatusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("sale_status_%d", int(s))
}

// ParseSaleStatus maps a wire code to a known sale status.
func ParseSaleStatus(code int) (SaleStatus, error) {
	s := SaleStatus(code)
	if _, ok := saleStatusNames[s]; !ok {
		return 0, fmt.Errorf("unknown sale status code %d", code)
	}

	return s, nil
}

// SalesChannel is the wire channel code carried by a sales record.
type SalesChannel int

const (
	ChannelSalesRep   SalesChannel = 1
	ChannelWebsite    SalesChannel = 2
	ChannelAndroidApp SalesChannel = 3
	ChannelIOSApp     SalesChannel = 4
)

var channelDescriptions = map[SalesChannel]string{
	ChannelSalesRep:   "Representantes",
	ChannelWebsite:    "Website",
	ChannelAndroidApp: "App móvel Android",
	ChannelIOSApp:     "App móvel iPhone",
}

// Description returns the display description used in the channel totals
// report.
func (c SalesChannel) Description() string {
	return channelDescriptions[c]
}

func (c SalesChannel) String() string {
	if desc, ok := channelDescriptions[c]; ok {
		return desc
	}

	return fmt.Sprintf("sales_channel_%d", int(c))
}

// ParseSalesChannel maps a wire code to a known sales channel.
func ParseSalesChannel(code int) (SalesChannel, error) {
	c := SalesChannel(code)
	if _, ok := channelDescriptions[c]; !ok {
		return 0, fmt.Errorf("unknown sales channel code %d", code)
	}

	return c, nil
}
