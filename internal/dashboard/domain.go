package dashboard

// SalesWindow sums sale rows inside the trailing window.
type SalesWindow struct {
	Units   int64   `json:"units"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Cost    float64 `json:"cost"`
}

// PurchaseWindow sums purchase orders inside the trailing window.
type PurchaseWindow struct {
	Orders        int64   `json:"orders"`
	Cost          float64 `json:"cost"`
	Returned      float64 `json:"returned"`
	ReturnedCount int64   `json:"returned_count"`
	OnTheWayCost  float64 `json:"on_the_way_cost"`
}

// Summary is the fixed-shape dashboard snapshot over the trailing seven days.
// Stock counters are evaluated as of now and are not window-scoped.
type Summary struct {
	TotalCategories int64          `json:"total_categories"`
	TotalProducts   int64          `json:"total_products"`
	TotalSuppliers  int64          `json:"total_suppliers"`
	QuantityInHand  int64          `json:"quantity_in_hand"`
	ToBeReceived    int64          `json:"to_be_received"`
	SalesLast7      SalesWindow    `json:"sales_last7"`
	PurchaseLast7   PurchaseWindow `json:"purchase_last7"`
	LowStockCount   int64          `json:"low_stock_count"`
	OutOfStockCount int64          `json:"out_of_stock_count"`
	DelayedOrders   int64          `json:"delayed_orders"`
}

// MonthValue is one month of the sales-vs-purchases series.
type MonthValue struct {
	Month     string  `json:"month"`
	Sales     float64 `json:"sales"`
	Purchases float64 `json:"purchases"`
}

// MonthOrders is one month of the ordered-vs-delivered series. Delivered
// orders are bucketed by expected date, the only delivery-adjacent date the
// model records.
type MonthOrders struct {
	Month     string `json:"month"`
	Ordered   int64  `json:"ordered"`
	Delivered int64  `json:"delivered"`
}

// TopProduct is one row of the seven-day top seller list.
type TopProduct struct {
	Product   string  `json:"product"`
	Sold      int64   `json:"sold"`
	Remaining int64   `json:"remaining"`
	Price     float64 `json:"price"`
}

// LowStockProduct is a product at or below its reorder threshold.
type LowStockProduct struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Threshold int64  `json:"threshold"`
}
