package products

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/meridian-ims/meridian-ims/internal/masterdata/shared"
)

const dateLayout = "2006-01-02"

// Service provides product business logic.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs a product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	return s.repo.Get(ctx, id)
}

func parseExpiry(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, fmt.Errorf("parse expiry date: %w", err)
	}
	return &t, nil
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return Product{}, fmt.Errorf("validate product: %w", err)
	}
	expiry, err := parseExpiry(req.ExpiryDate)
	if err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, Product{
		Name:         req.Name,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		Quantity:     req.Quantity,
		Threshold:    req.Threshold,
		ExpiryDate:   expiry,
		SupplierID:   req.SupplierID,
		CategoryID:   req.CategoryID,
		StoreID:      req.StoreID,
	})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return Product{}, fmt.Errorf("validate product: %w", err)
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.BuyingPrice != nil {
		existing.BuyingPrice = *req.BuyingPrice
	}
	if req.SellingPrice != nil {
		existing.SellingPrice = req.SellingPrice
	}
	if req.Quantity != nil {
		existing.Quantity = *req.Quantity
	}
	if req.Threshold != nil {
		existing.Threshold = *req.Threshold
	}
	if req.ExpiryDate != nil {
		expiry, err := parseExpiry(req.ExpiryDate)
		if err != nil {
			return Product{}, err
		}
		existing.ExpiryDate = expiry
	}
	if req.SupplierID != nil {
		existing.SupplierID = req.SupplierID
	}
	if req.CategoryID != nil {
		existing.CategoryID = *req.CategoryID
	}
	if req.StoreID != nil {
		existing.StoreID = req.StoreID
	}
	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Product{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
