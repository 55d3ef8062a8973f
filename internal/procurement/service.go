package procurement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/meridian-ims/meridian-ims/internal/shared"
)

const dateLayout = "2006-01-02"

// ReportInvalidator drops cached report payloads after a write.
type ReportInvalidator interface {
	Bump(ctx context.Context) error
}

// Service provides purchase order business logic.
type Service struct {
	logger   *slog.Logger
	repo     Repository
	reports  ReportInvalidator
	validate *validator.Validate
}

// NewService constructs a purchase order service. reports may be nil.
func NewService(logger *slog.Logger, repo Repository, reports ReportInvalidator) *Service {
	return &Service{logger: logger, repo: repo, reports: reports, validate: validator.New()}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]PurchaseOrder, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (PurchaseOrder, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (PurchaseOrder, error) {
	if err := s.validate.Struct(req); err != nil {
		return PurchaseOrder{}, fmt.Errorf("validate order: %w", err)
	}
	orderDate, err := time.Parse(dateLayout, req.OrderDate)
	if err != nil {
		return PurchaseOrder{}, fmt.Errorf("%w: order_date %q", shared.ErrValidation, req.OrderDate)
	}
	expected, err := parseOptionalDate(req.ExpectedDate, "expected_date")
	if err != nil {
		return PurchaseOrder{}, err
	}
	received, err := parseOptionalDate(req.ReceivedDate, "received_date")
	if err != nil {
		return PurchaseOrder{}, err
	}

	order := PurchaseOrder{
		ProductID:    req.ProductID,
		SupplierID:   req.SupplierID,
		Quantity:     req.Quantity,
		OrderValue:   req.OrderValue,
		OrderDate:    orderDate,
		ExpectedDate: expected,
		Status:       req.Status,
		Received:     req.Received,
		ReceivedDate: received,
	}
	if err := checkReceived(order); err != nil {
		return PurchaseOrder{}, err
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return PurchaseOrder{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateOrderRequest) (PurchaseOrder, error) {
	if err := s.validate.Struct(req); err != nil {
		return PurchaseOrder{}, fmt.Errorf("validate order: %w", err)
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return PurchaseOrder{}, err
	}
	if req.Quantity != nil {
		existing.Quantity = *req.Quantity
	}
	if req.OrderValue != nil {
		existing.OrderValue = *req.OrderValue
	}
	if req.OrderDate != nil {
		orderDate, err := time.Parse(dateLayout, *req.OrderDate)
		if err != nil {
			return PurchaseOrder{}, fmt.Errorf("%w: order_date %q", shared.ErrValidation, *req.OrderDate)
		}
		existing.OrderDate = orderDate
	}
	if req.ExpectedDate != nil {
		expected, err := parseOptionalDate(req.ExpectedDate, "expected_date")
		if err != nil {
			return PurchaseOrder{}, err
		}
		existing.ExpectedDate = expected
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}
	if req.Received != nil {
		existing.Received = *req.Received
	}
	if req.ReceivedDate != nil {
		received, err := parseOptionalDate(req.ReceivedDate, "received_date")
		if err != nil {
			return PurchaseOrder{}, err
		}
		existing.ReceivedDate = received
	}
	if err := checkReceived(existing); err != nil {
		return PurchaseOrder{}, err
	}

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return PurchaseOrder{}, err
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

// checkReceived holds the delivery invariant: a received order is Delivered,
// and received_date is only set on received orders.
func checkReceived(o PurchaseOrder) error {
	if o.Received && o.Status != StatusDelivered {
		return fmt.Errorf("%w: received orders must have status %s", shared.ErrValidation, StatusDelivered)
	}
	if !o.Received && o.ReceivedDate != nil {
		return fmt.Errorf("%w: received_date requires received=true", shared.ErrValidation)
	}
	return nil
}

func parseOptionalDate(v *string, field string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", shared.ErrValidation, field, *v)
	}
	return &t, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.reports == nil {
		return
	}
	if err := s.reports.Bump(ctx); err != nil {
		s.logger.Warn("report cache bump failed", slog.Any("error", err))
	}
}
