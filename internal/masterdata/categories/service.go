package categories

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/meridian-ims/meridian-ims/internal/masterdata/shared"
)

// Service provides category business logic.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs a category service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Category, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateCategoryRequest) (Category, error) {
	if err := s.validate.Struct(req); err != nil {
		return Category{}, fmt.Errorf("validate category: %w", err)
	}
	return s.repo.Create(ctx, Category{Name: req.Name, Description: req.Description})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCategoryRequest) (Category, error) {
	if err := s.validate.Struct(req); err != nil {
		return Category{}, fmt.Errorf("validate category: %w", err)
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Category{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
