package sales

import "time"

// Sale records a completed sale with price snapshots taken at sale time.
// TotalValue is authoritative once written; reporting never recomputes it.
type Sale struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	StoreID      *int64    `json:"store_id,omitempty"`
	Quantity     int       `json:"quantity"`
	SellingPrice float64   `json:"selling_price"`
	BuyingPrice  float64   `json:"buying_price"`
	TotalValue   float64   `json:"total_value"`
	SaleDate     time.Time `json:"sale_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateSaleRequest struct {
	ProductID    int64    `json:"product_id" validate:"required,gt=0"`
	StoreID      *int64   `json:"store_id,omitempty" validate:"omitempty,gt=0"`
	Quantity     int      `json:"quantity" validate:"required,gt=0"`
	SellingPrice float64  `json:"selling_price" validate:"gte=0"`
	BuyingPrice  float64  `json:"buying_price" validate:"gte=0"`
	TotalValue   *float64 `json:"total_value,omitempty" validate:"omitempty,gte=0"`
	SaleDate     string   `json:"sale_date" validate:"required"`
}

type UpdateSaleRequest struct {
	StoreID      *int64   `json:"store_id,omitempty" validate:"omitempty,gt=0"`
	Quantity     *int     `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	SellingPrice *float64 `json:"selling_price,omitempty" validate:"omitempty,gte=0"`
	BuyingPrice  *float64 `json:"buying_price,omitempty" validate:"omitempty,gte=0"`
	SaleDate     *string  `json:"sale_date,omitempty"`
}
