package stores

import "time"

// Store is a physical location; informational only, the reporting core never
// depends on it.
type Store struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  *string   `json:"location,omitempty"`
	Manager   *string   `json:"manager,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateStoreRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=300"`
	Manager  *string `json:"manager,omitempty" validate:"omitempty,max=200"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=50"`
}

type UpdateStoreRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=300"`
	Manager  *string `json:"manager,omitempty" validate:"omitempty,max=200"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=50"`
}
