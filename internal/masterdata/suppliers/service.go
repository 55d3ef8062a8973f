package suppliers

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/meridian-ims/meridian-ims/internal/masterdata/shared"
)

// Service provides supplier business logic.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs a supplier service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Supplier, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateSupplierRequest) (Supplier, error) {
	if err := s.validate.Struct(req); err != nil {
		return Supplier{}, fmt.Errorf("validate supplier: %w", err)
	}
	return s.repo.Create(ctx, Supplier{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		AcceptsReturns: req.AcceptsReturns,
	})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateSupplierRequest) (Supplier, error) {
	if err := s.validate.Struct(req); err != nil {
		return Supplier{}, fmt.Errorf("validate supplier: %w", err)
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Supplier{}, err
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Email != nil {
		existing.Email = req.Email
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.Address != nil {
		existing.Address = req.Address
	}
	if req.AcceptsReturns != nil {
		existing.AcceptsReturns = *req.AcceptsReturns
	}
	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Supplier{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
