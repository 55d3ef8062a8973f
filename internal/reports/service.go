package reports

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Default ranking sizes when the client does not pass a limit.
const (
	DefaultCategoryLimit = 3
	DefaultProductLimit  = 5
)

// Service computes the report payloads from aggregate queries, confining all
// temporal logic to the injected clock so results are deterministic in tests.
type Service struct {
	repo  Repository
	cache *Cache
	now   func() time.Time
}

// NewService wires a Repository with the report cache.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

func periodInfo(p Period, withMode bool) PeriodInfo {
	info := PeriodInfo{Start: FormatDate(p.Start), End: FormatDate(p.End)}
	if withMode {
		info.Mode = p.Mode
	}
	return info
}

// previousOrUnbounded falls back to an unbounded interval when no previous
// range exists, so an "all" period compares against the full history and
// reports a flat change.
func previousOrUnbounded(p Period) Interval {
	if prev := PreviousRange(p); prev != nil {
		return *prev
	}
	return Interval{}
}

// Overview assembles the headline report for the selected period: totals for
// the current interval plus profit movement against the previous comparable
// interval (MoM) and the same interval one year earlier (YoY).
func (s *Service) Overview(ctx context.Context, selector, start, end string) (OverviewReport, error) {
	p, err := ResolvePeriod(selector, start, end, s.now())
	if err != nil {
		return OverviewReport{}, err
	}

	loader := func(ctx context.Context) (interface{}, error) {
		var (
			current     SalesTotals
			previous    SalesTotals
			yearAgo     SalesTotals
			netPurchase float64
		)

		prevIv := previousOrUnbounded(p)
		yoyIv := ShiftYears(p.Interval, -1)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			current, err = s.repo.SalesTotals(gctx, p.Interval)
			return err
		})
		g.Go(func() error {
			var err error
			netPurchase, err = s.repo.PurchaseValue(gctx, p.Interval, StatusDelivered)
			return err
		})
		g.Go(func() error {
			var err error
			previous, err = s.repo.SalesTotals(gctx, prevIv)
			return err
		})
		g.Go(func() error {
			var err error
			yearAgo, err = s.repo.SalesTotals(gctx, yoyIv)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return OverviewReport{
			Period: periodInfo(p, true),
			Overview: Overview{
				TotalProfit:      current.Profit,
				Revenue:          current.Revenue,
				SalesCost:        current.Cost,
				NetPurchaseValue: netPurchase,
				NetSalesValue:    current.Revenue,
				MoMProfitPct:     PercentChange(current.Profit, previous.Profit),
				YoYProfitPct:     PercentChange(current.Profit, yearAgo.Profit),
			},
		}, nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return OverviewReport{}, err
		}
		return value.(OverviewReport), nil
	}
	key, err := s.cache.BuildKey(ctx, keyOverview(p)...)
	if err != nil {
		return OverviewReport{}, err
	}
	var report OverviewReport
	if err := s.cache.FetchJSON(ctx, key, &report, loader); err != nil {
		return OverviewReport{}, err
	}
	return report, nil
}

// BestCategories ranks categories by turnover within the period, each row
// carrying its movement versus the previous comparable interval.
func (s *Service) BestCategories(ctx context.Context, selector, start, end string, limit int) (CategoryRanking, error) {
	if limit <= 0 {
		limit = DefaultCategoryLimit
	}
	p, err := ResolvePeriod(selector, start, end, s.now())
	if err != nil {
		return CategoryRanking{}, err
	}

	loader := func(ctx context.Context) (interface{}, error) {
		rows, err := s.repo.TopCategories(ctx, p.Interval, limit)
		if err != nil {
			return nil, err
		}
		ids := make([]int64, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.CategoryID)
		}
		prev, err := s.repo.CategoryTurnoverByIDs(ctx, previousOrUnbounded(p), ids)
		if err != nil {
			return nil, err
		}
		items := make([]CategoryRank, 0, len(rows))
		for _, row := range rows {
			items = append(items, CategoryRank{
				Category:    row.Name,
				Turnover:    row.Turnover,
				IncreasePct: PercentChange(row.Turnover, prev[row.CategoryID]),
			})
		}
		return CategoryRanking{Period: periodInfo(p, false), Items: items}, nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return CategoryRanking{}, err
		}
		return value.(CategoryRanking), nil
	}
	key, err := s.cache.BuildKey(ctx, keyRanking("best_categories", p, limit)...)
	if err != nil {
		return CategoryRanking{}, err
	}
	var ranking CategoryRanking
	if err := s.cache.FetchJSON(ctx, key, &ranking, loader); err != nil {
		return CategoryRanking{}, err
	}
	return ranking, nil
}

// BestProducts ranks products by turnover within the period, enriched with
// live stock, category name, and movement versus the previous interval.
func (s *Service) BestProducts(ctx context.Context, selector, start, end string, limit int) (ProductRanking, error) {
	if limit <= 0 {
		limit = DefaultProductLimit
	}
	p, err := ResolvePeriod(selector, start, end, s.now())
	if err != nil {
		return ProductRanking{}, err
	}

	loader := func(ctx context.Context) (interface{}, error) {
		rows, err := s.repo.TopProducts(ctx, p.Interval, limit)
		if err != nil {
			return nil, err
		}
		ids := make([]int64, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ProductID)
		}
		prev, err := s.repo.ProductTurnoverByIDs(ctx, previousOrUnbounded(p), ids)
		if err != nil {
			return nil, err
		}
		items := make([]ProductRank, 0, len(rows))
		for _, row := range rows {
			items = append(items, ProductRank{
				ProductID:         row.ProductID,
				Product:           row.Name,
				Category:          row.CategoryName,
				RemainingQuantity: row.RemainingQuantity,
				SoldQuantity:      row.SoldQuantity,
				Turnover:          row.Turnover,
				IncreasePct:       PercentChange(row.Turnover, prev[row.ProductID]),
			})
		}
		return ProductRanking{Period: periodInfo(p, false), Items: items}, nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return ProductRanking{}, err
		}
		return value.(ProductRanking), nil
	}
	key, err := s.cache.BuildKey(ctx, keyRanking("best_products", p, limit)...)
	if err != nil {
		return ProductRanking{}, err
	}
	var ranking ProductRanking
	if err := s.cache.FetchJSON(ctx, key, &ranking, loader); err != nil {
		return ProductRanking{}, err
	}
	return ranking, nil
}

// ProfitVsRevenue produces the twelve-month revenue and profit series for the
// given year, zero-filling months with no sales. A non-positive year selects
// the current year.
func (s *Service) ProfitVsRevenue(ctx context.Context, year int) (ProfitVsRevenue, error) {
	if year <= 0 {
		year = s.now().Year()
	}

	loader := func(ctx context.Context) (interface{}, error) {
		rows, err := s.repo.MonthlySales(ctx, year)
		if err != nil {
			return nil, err
		}
		byMonth := make(map[int]MonthlySalesRow, len(rows))
		for _, row := range rows {
			byMonth[row.Month] = row
		}
		series := make([]MonthPoint, 0, 12)
		for m := 1; m <= 12; m++ {
			row := byMonth[m]
			series = append(series, MonthPoint{
				Month:   time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC).Format("Jan"),
				Revenue: row.Revenue,
				Profit:  row.Revenue - row.Cost,
			})
		}
		return ProfitVsRevenue{Year: year, Series: series}, nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return ProfitVsRevenue{}, err
		}
		return value.(ProfitVsRevenue), nil
	}
	key, err := s.cache.BuildKey(ctx, keyMonthly(year)...)
	if err != nil {
		return ProfitVsRevenue{}, err
	}
	var out ProfitVsRevenue
	if err := s.cache.FetchJSON(ctx, key, &out, loader); err != nil {
		return ProfitVsRevenue{}, err
	}
	return out, nil
}
