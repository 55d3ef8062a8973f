package suppliers

import "time"

// Supplier is a purchase order counterparty.
type Supplier struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          *string   `json:"email,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Address        *string   `json:"address,omitempty"`
	AcceptsReturns bool      `json:"accepts_returns"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateSupplierRequest struct {
	Name           string  `json:"name" validate:"required,max=200"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address        *string `json:"address,omitempty" validate:"omitempty,max=300"`
	AcceptsReturns bool    `json:"accepts_returns"`
}

type UpdateSupplierRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address        *string `json:"address,omitempty" validate:"omitempty,max=300"`
	AcceptsReturns *bool   `json:"accepts_returns,omitempty"`
}
