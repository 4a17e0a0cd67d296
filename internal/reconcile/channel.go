package reconcile

import (
	"sort"

	"github.com/estoqueops/estqop/internal/domain"
)

// ChannelTotals sums confirmed sale quantities per sales channel, emitted
// ascending by channel code. Channels without confirmed sales are omitted.
func ChannelTotals(sales []domain.Sale) []domain.ChannelTotal {
	byChannel := make(map[domain.SalesChannel]int)
	for _, sale := range sales {
		if !sale.Status.IsConfirmed() {
			continue
		}
		byChannel[sale.Channel] += sale.Quantity
	}

	channels := make([]domain.SalesChannel, 0, len(byChannel))
	for c := range byChannel {
		channels = append(channels, c)
	}
	sort.Slice(channels, func(i, j int) bool { return channels[i] < channels[j] })

	totals := make([]domain.ChannelTotal, 0, len(channels))
	for _, c := range channels {
		totals = append(totals, domain.ChannelTotal{Channel: c, TotalQty: byChannel[c]})
	}

	return totals
}
