package shared

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListFilters represents standard list page filters.
type ListFilters struct {
	Page   int
	Limit  int
	Search string

	// Entity specific filters
	CategoryID *int64
	SupplierID *int64
}

// Normalize applies pagination defaults.
func (f *ListFilters) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
}

// Offset computes the row offset for the current page.
func (f ListFilters) Offset() int {
	return (f.Page - 1) * f.Limit
}
