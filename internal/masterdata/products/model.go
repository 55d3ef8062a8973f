package products

import "time"

// Product is a stocked item. BuyingPrice and SellingPrice are current prices;
// sales keep their own price snapshots.
type Product struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	BuyingPrice  float64    `json:"buying_price"`
	SellingPrice *float64   `json:"selling_price"`
	Quantity     int64      `json:"quantity"`
	Threshold    int64      `json:"threshold"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	SupplierID   *int64     `json:"supplier_id,omitempty"`
	CategoryID   int64      `json:"category_id"`
	StoreID      *int64     `json:"store_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type CreateProductRequest struct {
	Name         string   `json:"name" validate:"required,max=200"`
	BuyingPrice  float64  `json:"buying_price" validate:"gte=0"`
	SellingPrice *float64 `json:"selling_price,omitempty" validate:"omitempty,gte=0"`
	Quantity     int64    `json:"quantity" validate:"gte=0"`
	Threshold    int64    `json:"threshold" validate:"gte=0"`
	ExpiryDate   *string  `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	SupplierID   *int64   `json:"supplier_id,omitempty" validate:"omitempty,gt=0"`
	CategoryID   int64    `json:"category_id" validate:"required,gt=0"`
	StoreID      *int64   `json:"store_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateProductRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	BuyingPrice  *float64 `json:"buying_price,omitempty" validate:"omitempty,gte=0"`
	SellingPrice *float64 `json:"selling_price,omitempty" validate:"omitempty,gte=0"`
	Quantity     *int64   `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Threshold    *int64   `json:"threshold,omitempty" validate:"omitempty,gte=0"`
	ExpiryDate   *string  `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	SupplierID   *int64   `json:"supplier_id,omitempty" validate:"omitempty,gt=0"`
	CategoryID   *int64   `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	StoreID      *int64   `json:"store_id,omitempty" validate:"omitempty,gt=0"`
}
