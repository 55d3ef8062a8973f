package stores

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/meridian-ims/meridian-ims/internal/masterdata/shared"
)

// Service provides store business logic.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs a store service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Store, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Store, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateStoreRequest) (Store, error) {
	if err := s.validate.Struct(req); err != nil {
		return Store{}, fmt.Errorf("validate store: %w", err)
	}
	return s.repo.Create(ctx, Store{
		Name:     req.Name,
		Location: req.Location,
		Manager:  req.Manager,
		Phone:    req.Phone,
	})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateStoreRequest) (Store, error) {
	if err := s.validate.Struct(req); err != nil {
		return Store{}, fmt.Errorf("validate store: %w", err)
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Store{}, err
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Location != nil {
		existing.Location = req.Location
	}
	if req.Manager != nil {
		existing.Manager = req.Manager
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Store{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
