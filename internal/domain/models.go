// internal/domain/models.go
package domain

// Product represents one row of the product catalog file. Code is the join
// key but is not guaranteed unique across rows; the row's position in the
// file is part of its identity.
type Product struct {
	Code       int `json:"code"`
	StockQtyCO int `json:"stock_qty_co"`
	MinQtyCO   int `json:"min_qty_co"`
}

// Sale represents one row of the sales file. Its 1-based position in the
// loaded sequence is the line number used in divergence reporting, so the
// loader preserves file order exactly.
type Sale struct {
	ProductCode int          `json:"product_code"`
	Quantity    int          `json:"quantity"`
	Status      SaleStatus   `json:"status"`
	Channel     SalesChannel `json:"channel"`
}

// TransferNeed represents the warehouse-to-CO transfer recommendation for a
// single catalog entry with at least one confirmed sale.
type TransferNeed struct {
	ProductCode     int `json:"product_code"`
	StockQtyCO      int `json:"stock_qty_co"`
	MinQtyCO        int `json:"min_qty_co"`
	TotalSoldQty    int `json:"total_sold_qty"`
	StockAfterSales int `json:"stock_after_sales"`
	RawNeed         int `json:"raw_need"`
	TransferQty     int `json:"transfer_qty"`
}

// Divergence represents a sales row that cannot be applied to inventory,
// either because the product is unknown or the status is not confirmed.
type Divergence struct {
	SaleLine int    `json:"sale_line"`
	Message  string `json:"message"`
}

// ChannelTotal represents the confirmed sales volume of one channel.
type ChannelTotal struct {
	Channel  SalesChannel `json:"channel"`
	TotalQty int          `json:"total_qty"`
}
