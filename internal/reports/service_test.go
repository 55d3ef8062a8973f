package reports

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/meridian-ims/meridian-ims/internal/shared"
)

type mockRepo struct {
	totals          map[string]SalesTotals
	totalsDefault   SalesTotals
	totalsCalls     []Interval
	purchaseValue   float64
	purchaseStatus  string
	purchaseCalls   []Interval
	categories      []CategoryTurnoverRow
	categoryLimit   int
	prevCategories  map[int64]float64
	products        []ProductTurnoverRow
	productLimit    int
	prevProducts    map[int64]float64
	monthly         []MonthlySalesRow
	monthlyYear     int
	totalsCallCount int
}

func (m *mockRepo) SalesTotals(ctx context.Context, iv Interval) (SalesTotals, error) {
	m.totalsCalls = append(m.totalsCalls, iv)
	m.totalsCallCount++
	if m.totals != nil {
		if t, ok := m.totals[intervalToken(iv)]; ok {
			return t, nil
		}
	}
	return m.totalsDefault, nil
}

func (m *mockRepo) PurchaseValue(ctx context.Context, iv Interval, status string) (float64, error) {
	m.purchaseCalls = append(m.purchaseCalls, iv)
	m.purchaseStatus = status
	return m.purchaseValue, nil
}

func (m *mockRepo) TopCategories(ctx context.Context, iv Interval, limit int) ([]CategoryTurnoverRow, error) {
	m.categoryLimit = limit
	if limit < len(m.categories) {
		return m.categories[:limit], nil
	}
	return m.categories, nil
}

func (m *mockRepo) CategoryTurnoverByIDs(ctx context.Context, iv Interval, ids []int64) (map[int64]float64, error) {
	return m.prevCategories, nil
}

func (m *mockRepo) TopProducts(ctx context.Context, iv Interval, limit int) ([]ProductTurnoverRow, error) {
	m.productLimit = limit
	if limit < len(m.products) {
		return m.products[:limit], nil
	}
	return m.products, nil
}

func (m *mockRepo) ProductTurnoverByIDs(ctx context.Context, iv Interval, ids []int64) (map[int64]float64, error) {
	return m.prevProducts, nil
}

func (m *mockRepo) MonthlySales(ctx context.Context, year int) ([]MonthlySalesRow, error) {
	m.monthlyYear = year
	return m.monthly, nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc := NewService(repo, NewCache(client, time.Minute))
	svc.WithNow(func() time.Time {
		return time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
	})
	return svc
}

func TestOverviewAggregates(t *testing.T) {
	repo := &mockRepo{
		totalsDefault: SalesTotals{Revenue: 800, Cost: 480, Profit: 320},
		purchaseValue: 1200,
	}
	svc := newTestService(t, repo)

	report, err := svc.Overview(context.Background(), "month", "", "")
	require.NoError(t, err)

	require.Equal(t, 320.0, report.Overview.TotalProfit)
	require.Equal(t, 800.0, report.Overview.Revenue)
	require.Equal(t, 480.0, report.Overview.SalesCost)
	require.Equal(t, 1200.0, report.Overview.NetPurchaseValue)
	require.Equal(t, 800.0, report.Overview.NetSalesValue)
	require.Equal(t, StatusDelivered, repo.purchaseStatus)
	require.Equal(t, ModeMonth, report.Period.Mode)
	require.Equal(t, "2025-03-01", *report.Period.Start)
	require.Equal(t, "2025-03-31", *report.Period.End)

	// Same totals everywhere means profit is flat against both baselines.
	require.NotNil(t, report.Overview.MoMProfitPct)
	require.Equal(t, 0.0, *report.Overview.MoMProfitPct)
	require.NotNil(t, report.Overview.YoYProfitPct)
	require.Equal(t, 0.0, *report.Overview.YoYProfitPct)
}

func TestOverviewZeroBaselineYieldsNullPct(t *testing.T) {
	now := time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
	p, err := ResolvePeriod("month", "", "", now)
	require.NoError(t, err)
	current := p.Interval

	repo := &mockRepo{
		totals: map[string]SalesTotals{
			intervalToken(current): {Revenue: 500, Cost: 200, Profit: 300},
		},
		// Other intervals fall through to the zero default.
	}
	svc := newTestService(t, repo)

	report, err := svc.Overview(context.Background(), "month", "", "")
	require.NoError(t, err)
	require.Equal(t, 300.0, report.Overview.TotalProfit)
	require.Nil(t, report.Overview.MoMProfitPct)
	require.Nil(t, report.Overview.YoYProfitPct)
}

func TestOverviewAllPeriodQueriesUnbounded(t *testing.T) {
	repo := &mockRepo{totalsDefault: SalesTotals{Revenue: 10, Cost: 5, Profit: 5}}
	svc := newTestService(t, repo)

	report, err := svc.Overview(context.Background(), "all", "", "")
	require.NoError(t, err)
	require.Nil(t, report.Period.Start)
	require.Nil(t, report.Period.End)

	// current, previous, and year-ago sales queries all run without bounds.
	require.Len(t, repo.totalsCalls, 3)
	for _, iv := range repo.totalsCalls {
		require.Nil(t, iv.Start)
		require.Nil(t, iv.End)
	}
	require.Len(t, repo.purchaseCalls, 1)
	require.Nil(t, repo.purchaseCalls[0].Start)

	// Identical aggregates on identical intervals: flat change, never an error.
	require.Equal(t, 0.0, *report.Overview.MoMProfitPct)
}

func TestOverviewCachedAcrossCalls(t *testing.T) {
	repo := &mockRepo{totalsDefault: SalesTotals{Revenue: 100, Cost: 50, Profit: 50}}
	svc := newTestService(t, repo)

	_, err := svc.Overview(context.Background(), "month", "", "")
	require.NoError(t, err)
	first := repo.totalsCallCount

	_, err = svc.Overview(context.Background(), "month", "", "")
	require.NoError(t, err)
	require.Equal(t, first, repo.totalsCallCount)
}

func TestOverviewCacheBumpForcesRecompute(t *testing.T) {
	repo := &mockRepo{totalsDefault: SalesTotals{Revenue: 100, Cost: 50, Profit: 50}}
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Overview(ctx, "month", "", "")
	require.NoError(t, err)
	first := repo.totalsCallCount

	require.NoError(t, svc.cache.Bump(ctx))

	_, err = svc.Overview(ctx, "month", "", "")
	require.NoError(t, err)
	require.Greater(t, repo.totalsCallCount, first)
}

func TestOverviewInvalidPeriod(t *testing.T) {
	svc := newTestService(t, &mockRepo{})
	_, err := svc.Overview(context.Background(), "decade", "", "")
	require.ErrorIs(t, err, shared.ErrInvalidPeriod)
}

func TestBestCategoriesRanking(t *testing.T) {
	repo := &mockRepo{
		categories: []CategoryTurnoverRow{
			{CategoryID: 1, Name: "Beverages", Turnover: 200},
			{CategoryID: 2, Name: "Snacks", Turnover: 150},
			{CategoryID: 3, Name: "Dairy", Turnover: 90},
		},
		prevCategories: map[int64]float64{1: 100, 3: 90},
	}
	svc := newTestService(t, repo)

	ranking, err := svc.BestCategories(context.Background(), "month", "", "", 0)
	require.NoError(t, err)
	require.Equal(t, DefaultCategoryLimit, repo.categoryLimit)
	require.Len(t, ranking.Items, 3)

	require.Equal(t, "Beverages", ranking.Items[0].Category)
	require.Equal(t, 100.0, *ranking.Items[0].IncreasePct)
	// No previous turnover recorded for Snacks: percentage undefined.
	require.Nil(t, ranking.Items[1].IncreasePct)
	require.Equal(t, 0.0, *ranking.Items[2].IncreasePct)
}

func TestBestProductsRanking(t *testing.T) {
	cat := "Beverages"
	repo := &mockRepo{
		products: []ProductTurnoverRow{
			{ProductID: 7, Name: "Cola", CategoryName: &cat, SoldQuantity: 40, RemainingQuantity: 12, Turnover: 400},
			{ProductID: 9, Name: "Water", SoldQuantity: 10, RemainingQuantity: 3, Turnover: 100},
		},
		prevProducts: map[int64]float64{7: 200},
	}
	svc := newTestService(t, repo)

	ranking, err := svc.BestProducts(context.Background(), "month", "", "", 0)
	require.NoError(t, err)
	require.Equal(t, DefaultProductLimit, repo.productLimit)
	require.Len(t, ranking.Items, 2)

	require.Equal(t, int64(7), ranking.Items[0].ProductID)
	require.Equal(t, &cat, ranking.Items[0].Category)
	require.Equal(t, int64(12), ranking.Items[0].RemainingQuantity)
	require.Equal(t, 100.0, *ranking.Items[0].IncreasePct)
	require.Nil(t, ranking.Items[1].Category)
	require.Nil(t, ranking.Items[1].IncreasePct)
}

func TestBestProductsExplicitLimit(t *testing.T) {
	repo := &mockRepo{
		products: []ProductTurnoverRow{
			{ProductID: 1, Name: "A", Turnover: 30},
			{ProductID: 2, Name: "B", Turnover: 20},
			{ProductID: 3, Name: "C", Turnover: 10},
		},
	}
	svc := newTestService(t, repo)

	ranking, err := svc.BestProducts(context.Background(), "month", "", "", 2)
	require.NoError(t, err)
	require.Equal(t, 2, repo.productLimit)
	require.Len(t, ranking.Items, 2)
}

func TestProfitVsRevenueZeroFillsTwelveMonths(t *testing.T) {
	repo := &mockRepo{
		monthly: []MonthlySalesRow{
			{Month: 2, Revenue: 500, Cost: 300},
			{Month: 11, Revenue: 80, Cost: 20},
		},
	}
	svc := newTestService(t, repo)

	out, err := svc.ProfitVsRevenue(context.Background(), 2024)
	require.NoError(t, err)
	require.Equal(t, 2024, out.Year)
	require.Equal(t, 2024, repo.monthlyYear)
	require.Len(t, out.Series, 12)

	require.Equal(t, "Jan", out.Series[0].Month)
	require.Equal(t, "Dec", out.Series[11].Month)
	require.Equal(t, 0.0, out.Series[0].Revenue)
	require.Equal(t, 0.0, out.Series[0].Profit)
	require.Equal(t, 500.0, out.Series[1].Revenue)
	require.Equal(t, 200.0, out.Series[1].Profit)
	require.Equal(t, 60.0, out.Series[10].Profit)
}

func TestProfitVsRevenueDefaultsToCurrentYear(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(t, repo)

	out, err := svc.ProfitVsRevenue(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 2025, out.Year)
}
