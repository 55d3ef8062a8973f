package sales

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/meridian-ims/meridian-ims/internal/shared"
)

const dateLayout = "2006-01-02"

// totalTolerance absorbs float rounding when checking total_value against
// quantity × selling_price.
const totalTolerance = 0.01

// ReportInvalidator drops cached report payloads after a write. Failures are
// logged, never surfaced: a stale cache entry expires on its own.
type ReportInvalidator interface {
	Bump(ctx context.Context) error
}

// Service provides sale business logic.
type Service struct {
	logger   *slog.Logger
	repo     Repository
	reports  ReportInvalidator
	validate *validator.Validate
}

// NewService constructs a sale service. reports may be nil.
func NewService(logger *slog.Logger, repo Repository, reports ReportInvalidator) *Service {
	return &Service{logger: logger, repo: repo, reports: reports, validate: validator.New()}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Sale, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Sale, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateSaleRequest) (Sale, error) {
	if err := s.validate.Struct(req); err != nil {
		return Sale{}, fmt.Errorf("validate sale: %w", err)
	}
	saleDate, err := time.Parse(dateLayout, req.SaleDate)
	if err != nil {
		return Sale{}, fmt.Errorf("%w: sale_date %q", shared.ErrValidation, req.SaleDate)
	}

	total := float64(req.Quantity) * req.SellingPrice
	if req.TotalValue != nil {
		if math.Abs(*req.TotalValue-total) > totalTolerance {
			return Sale{}, fmt.Errorf("%w: total_value %.2f does not match quantity × selling_price %.2f",
				shared.ErrValidation, *req.TotalValue, total)
		}
		total = *req.TotalValue
	}

	sale, err := s.repo.Create(ctx, Sale{
		ProductID:    req.ProductID,
		StoreID:      req.StoreID,
		Quantity:     req.Quantity,
		SellingPrice: req.SellingPrice,
		BuyingPrice:  req.BuyingPrice,
		TotalValue:   total,
		SaleDate:     saleDate,
	})
	if err != nil {
		return Sale{}, err
	}
	s.invalidate(ctx)
	return sale, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateSaleRequest) (Sale, error) {
	if err := s.validate.Struct(req); err != nil {
		return Sale{}, fmt.Errorf("validate sale: %w", err)
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Sale{}, err
	}
	if req.StoreID != nil {
		existing.StoreID = req.StoreID
	}
	if req.Quantity != nil {
		existing.Quantity = *req.Quantity
	}
	if req.SellingPrice != nil {
		existing.SellingPrice = *req.SellingPrice
	}
	if req.BuyingPrice != nil {
		existing.BuyingPrice = *req.BuyingPrice
	}
	if req.SaleDate != nil {
		saleDate, err := time.Parse(dateLayout, *req.SaleDate)
		if err != nil {
			return Sale{}, fmt.Errorf("%w: sale_date %q", shared.ErrValidation, *req.SaleDate)
		}
		existing.SaleDate = saleDate
	}
	// Factors changed, so the snapshot is re-derived once at write time.
	existing.TotalValue = round2(float64(existing.Quantity) * existing.SellingPrice)

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Sale{}, err
	}
	s.invalidate(ctx)
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.reports == nil {
		return
	}
	if err := s.reports.Bump(ctx); err != nil {
		s.logger.Warn("report cache bump failed", slog.Any("error", err))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
