package procurement

import "time"

// Order statuses form a small closed set; reporting filters on them verbatim.
const (
	StatusConfirmed      = "Confirmed"
	StatusOutForDelivery = "Out for delivery"
	StatusDelayed        = "Delayed"
	StatusReturned       = "Returned"
	StatusDelivered      = "Delivered"
)

// PurchaseOrder tracks a supplier order. OrderValue is the quantity × unit
// cost snapshot taken when the order was placed.
type PurchaseOrder struct {
	ID           int64      `json:"id"`
	ProductID    int64      `json:"product_id"`
	SupplierID   int64      `json:"supplier_id"`
	Quantity     int        `json:"quantity"`
	OrderValue   float64    `json:"order_value"`
	OrderDate    time.Time  `json:"order_date"`
	ExpectedDate *time.Time `json:"expected_date,omitempty"`
	Status       string     `json:"status"`
	Received     bool       `json:"received"`
	ReceivedDate *time.Time `json:"received_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type CreateOrderRequest struct {
	ProductID    int64   `json:"product_id" validate:"required,gt=0"`
	SupplierID   int64   `json:"supplier_id" validate:"required,gt=0"`
	Quantity     int     `json:"quantity" validate:"required,gt=0"`
	OrderValue   float64 `json:"order_value" validate:"gte=0"`
	OrderDate    string  `json:"order_date" validate:"required"`
	ExpectedDate *string `json:"expected_date,omitempty"`
	Status       string  `json:"status" validate:"required,oneof=Confirmed 'Out for delivery' Delayed Returned Delivered"`
	Received     bool    `json:"received"`
	ReceivedDate *string `json:"received_date,omitempty"`
}

type UpdateOrderRequest struct {
	Quantity     *int     `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	OrderValue   *float64 `json:"order_value,omitempty" validate:"omitempty,gte=0"`
	OrderDate    *string  `json:"order_date,omitempty"`
	ExpectedDate *string  `json:"expected_date,omitempty"`
	Status       *string  `json:"status,omitempty" validate:"omitempty,oneof=Confirmed 'Out for delivery' Delayed Returned Delivered"`
	Received     *bool    `json:"received,omitempty"`
	ReceivedDate *string  `json:"received_date,omitempty"`
}
