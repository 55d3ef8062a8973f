package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	trailingWindow  = 7 * 24 * time.Hour
	topProductLimit = 5
	lowStockLimit   = 10
)

// Service assembles the dashboard snapshot and the yearly stats series.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a dashboard service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Summary composes the trailing-seven-day snapshot. The window is a fixed
// trailing interval ending now, not calendar-aligned; the stock counters and
// delayed-order count ignore the window entirely.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	now := s.now()
	since := now.Add(-trailingWindow)

	var summary Summary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		summary.TotalCategories, err = s.repo.CountCategoriesSince(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		summary.TotalProducts, err = s.repo.CountProductsSince(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		summary.TotalSuppliers, err = s.repo.CountSuppliersSince(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		summary.QuantityInHand, err = s.repo.QuantityInHand(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.ToBeReceived, err = s.repo.OutstandingQuantity(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.SalesLast7, err = s.repo.SalesWindow(gctx, since)
		return err
	})
	g.Go(func() error {
		orders, cost, err := s.repo.PurchaseWindow(gctx, since)
		if err != nil {
			return err
		}
		summary.PurchaseLast7.Orders = orders
		summary.PurchaseLast7.Cost = cost
		return nil
	})
	g.Go(func() error {
		value, count, err := s.repo.ReturnedWindow(gctx, since)
		if err != nil {
			return err
		}
		summary.PurchaseLast7.Returned = value
		summary.PurchaseLast7.ReturnedCount = count
		return nil
	})
	g.Go(func() error {
		value, err := s.repo.InTransitValue(gctx, since)
		if err != nil {
			return err
		}
		summary.PurchaseLast7.OnTheWayCost = value
		return nil
	})
	g.Go(func() error {
		var err error
		summary.DelayedOrders, err = s.repo.DelayedCount(gctx, now)
		return err
	})
	g.Go(func() error {
		var err error
		summary.LowStockCount, err = s.repo.LowStockCount(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.OutOfStockCount, err = s.repo.OutOfStockCount(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

func monthKey(year, month int) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

// SalesVsPurchases builds the twelve-month series of sale value against
// purchase value for the current year, filling empty months with zero.
func (s *Service) SalesVsPurchases(ctx context.Context) ([]MonthValue, error) {
	year := s.now().Year()

	var sales, purchases map[int]float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, err = s.repo.MonthlySalesValue(gctx, year)
		return err
	})
	g.Go(func() error {
		var err error
		purchases, err = s.repo.MonthlyPurchaseValue(gctx, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	series := make([]MonthValue, 0, 12)
	for m := 1; m <= 12; m++ {
		series = append(series, MonthValue{
			Month:     monthKey(year, m),
			Sales:     sales[m],
			Purchases: purchases[m],
		})
	}
	return series, nil
}

// OrderSummary builds the twelve-month ordered-vs-delivered series for the
// current year. Ordered counts bucket by order date; delivered counts bucket
// by expected date, restricted to delivered orders.
func (s *Service) OrderSummary(ctx context.Context) ([]MonthOrders, error) {
	year := s.now().Year()

	var ordered, delivered map[int]int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ordered, err = s.repo.MonthlyOrderedCounts(gctx, year)
		return err
	})
	g.Go(func() error {
		var err error
		delivered, err = s.repo.MonthlyDeliveredCounts(gctx, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	series := make([]MonthOrders, 0, 12)
	for m := 1; m <= 12; m++ {
		series = append(series, MonthOrders{
			Month:     monthKey(year, m),
			Ordered:   ordered[m],
			Delivered: delivered[m],
		})
	}
	return series, nil
}

// TopProducts lists the five best sellers by units over the trailing week.
func (s *Service) TopProducts(ctx context.Context) ([]TopProduct, error) {
	since := s.now().Add(-trailingWindow)
	rows, err := s.repo.TopProductsByUnits(ctx, since, topProductLimit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []TopProduct{}
	}
	return rows, nil
}

// LowStock lists up to ten products at or below their reorder threshold.
func (s *Service) LowStock(ctx context.Context) ([]LowStockProduct, error) {
	rows, err := s.repo.LowStockProducts(ctx, lowStockLimit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []LowStockProduct{}
	}
	return rows, nil
}
