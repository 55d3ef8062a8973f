package reports

// SalesTotals aggregates sale rows over an interval. Zero-valued when no
// rows match; never null.
type SalesTotals struct {
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

// PeriodInfo echoes the resolved interval back to the client.
type PeriodInfo struct {
	Mode  string  `json:"mode,omitempty"`
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// Overview carries the headline figures for the selected period.
type Overview struct {
	TotalProfit      float64  `json:"total_profit"`
	Revenue          float64  `json:"revenue"`
	SalesCost        float64  `json:"sales_cost"`
	NetPurchaseValue float64  `json:"net_purchase_value"`
	NetSalesValue    float64  `json:"net_sales_value"`
	MoMProfitPct     *float64 `json:"mom_profit_pct"`
	YoYProfitPct     *float64 `json:"yoy_profit_pct"`
}

// OverviewReport is the response payload for GET /reports/overview.
type OverviewReport struct {
	Period   PeriodInfo `json:"period"`
	Overview Overview   `json:"overview"`
}

// CategoryRank is one row of the best-categories ranking.
type CategoryRank struct {
	Category    string   `json:"category"`
	Turnover    float64  `json:"turnover"`
	IncreasePct *float64 `json:"increase_pct"`
}

// CategoryRanking is the response payload for GET /reports/best-categories.
type CategoryRanking struct {
	Period PeriodInfo     `json:"period"`
	Items  []CategoryRank `json:"items"`
}

// ProductRank is one row of the best-products ranking. RemainingQuantity is a
// live stock snapshot, not historical.
type ProductRank struct {
	ProductID         int64    `json:"product_id"`
	Product           string   `json:"product"`
	Category          *string  `json:"category"`
	RemainingQuantity int64    `json:"remaining_quantity"`
	SoldQuantity      int64    `json:"sold_quantity"`
	Turnover          float64  `json:"turnover"`
	IncreasePct       *float64 `json:"increase_pct"`
}

// ProductRanking is the response payload for GET /reports/best-products.
type ProductRanking struct {
	Period PeriodInfo    `json:"period"`
	Items  []ProductRank `json:"items"`
}

// MonthPoint is a single month of the profit-vs-revenue series.
type MonthPoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// ProfitVsRevenue is the response payload for GET /reports/profit-vs-revenue.
// Series always holds exactly twelve points, January through December.
type ProfitVsRevenue struct {
	Year   int          `json:"year"`
	Series []MonthPoint `json:"series"`
}

// CategoryTurnoverRow is a grouped turnover aggregate keyed by category.
type CategoryTurnoverRow struct {
	CategoryID int64
	Name       string
	Turnover   float64
}

// ProductTurnoverRow is a grouped turnover aggregate keyed by product,
// enriched with the product's current stock and category name.
type ProductTurnoverRow struct {
	ProductID         int64
	Name              string
	CategoryName      *string
	SoldQuantity      int64
	RemainingQuantity int64
	Turnover          float64
}

// MonthlySalesRow is one calendar month of summed sale figures.
type MonthlySalesRow struct {
	Month   int
	Revenue float64
	Cost    float64
}
