package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	categoriesSince  int64
	productsSince    int64
	suppliersSince   int64
	quantityInHand   int64
	outstanding      int64
	salesWindow      SalesWindow
	salesSince       time.Time
	purchaseOrders   int64
	purchaseCost     float64
	purchaseSince    time.Time
	returnedValue    float64
	returnedCount    int64
	returnedSince    time.Time
	inTransit        float64
	inTransitSince   time.Time
	delayed          int64
	delayedAsOf      time.Time
	lowStock         int64
	lowStockErr      error
	outOfStock       int64
	monthlySales     map[int]float64
	monthlyPurchases map[int]float64
	ordered          map[int]int64
	delivered        map[int]int64
	topProducts      []TopProduct
	topSince         time.Time
	topLimit         int
	lowProducts      []LowStockProduct
	lowLimit         int
}

func (m *mockRepo) CountCategoriesSince(ctx context.Context, since time.Time) (int64, error) {
	return m.categoriesSince, nil
}

func (m *mockRepo) CountProductsSince(ctx context.Context, since time.Time) (int64, error) {
	return m.productsSince, nil
}

func (m *mockRepo) CountSuppliersSince(ctx context.Context, since time.Time) (int64, error) {
	return m.suppliersSince, nil
}

func (m *mockRepo) QuantityInHand(ctx context.Context) (int64, error) {
	return m.quantityInHand, nil
}

func (m *mockRepo) OutstandingQuantity(ctx context.Context) (int64, error) {
	return m.outstanding, nil
}

func (m *mockRepo) SalesWindow(ctx context.Context, since time.Time) (SalesWindow, error) {
	m.salesSince = since
	return m.salesWindow, nil
}

func (m *mockRepo) PurchaseWindow(ctx context.Context, since time.Time) (int64, float64, error) {
	m.purchaseSince = since
	return m.purchaseOrders, m.purchaseCost, nil
}

func (m *mockRepo) ReturnedWindow(ctx context.Context, since time.Time) (float64, int64, error) {
	m.returnedSince = since
	return m.returnedValue, m.returnedCount, nil
}

func (m *mockRepo) InTransitValue(ctx context.Context, since time.Time) (float64, error) {
	m.inTransitSince = since
	return m.inTransit, nil
}

func (m *mockRepo) DelayedCount(ctx context.Context, now time.Time) (int64, error) {
	m.delayedAsOf = now
	return m.delayed, nil
}

func (m *mockRepo) LowStockCount(ctx context.Context) (int64, error) {
	return m.lowStock, m.lowStockErr
}

func (m *mockRepo) OutOfStockCount(ctx context.Context) (int64, error) {
	return m.outOfStock, nil
}

func (m *mockRepo) MonthlySalesValue(ctx context.Context, year int) (map[int]float64, error) {
	return m.monthlySales, nil
}

func (m *mockRepo) MonthlyPurchaseValue(ctx context.Context, year int) (map[int]float64, error) {
	return m.monthlyPurchases, nil
}

func (m *mockRepo) MonthlyOrderedCounts(ctx context.Context, year int) (map[int]int64, error) {
	return m.ordered, nil
}

func (m *mockRepo) MonthlyDeliveredCounts(ctx context.Context, year int) (map[int]int64, error) {
	return m.delivered, nil
}

func (m *mockRepo) TopProductsByUnits(ctx context.Context, since time.Time, limit int) ([]TopProduct, error) {
	m.topSince = since
	m.topLimit = limit
	return m.topProducts, nil
}

func (m *mockRepo) LowStockProducts(ctx context.Context, limit int) ([]LowStockProduct, error) {
	m.lowLimit = limit
	return m.lowProducts, nil
}

var testNow = time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *Service {
	svc := NewService(repo)
	svc.WithNow(func() time.Time { return testNow })
	return svc
}

func TestSummaryComposesAllCounters(t *testing.T) {
	repo := &mockRepo{
		categoriesSince: 2,
		productsSince:   5,
		suppliersSince:  1,
		quantityInHand:  340,
		outstanding:     60,
		salesWindow:     SalesWindow{Units: 40, Revenue: 800, Cost: 480, Profit: 320},
		purchaseOrders:  3,
		purchaseCost:    900,
		returnedValue:   120,
		returnedCount:   1,
		inTransit:       450,
		delayed:         2,
		lowStock:        4,
		outOfStock:      1,
	}
	svc := newTestService(repo)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	require.Equal(t, int64(2), summary.TotalCategories)
	require.Equal(t, int64(340), summary.QuantityInHand)
	require.Equal(t, int64(60), summary.ToBeReceived)
	require.Equal(t, SalesWindow{Units: 40, Revenue: 800, Cost: 480, Profit: 320}, summary.SalesLast7)
	require.Equal(t, int64(3), summary.PurchaseLast7.Orders)
	require.Equal(t, 120.0, summary.PurchaseLast7.Returned)
	require.Equal(t, int64(1), summary.PurchaseLast7.ReturnedCount)
	require.Equal(t, 450.0, summary.PurchaseLast7.OnTheWayCost)
	require.Equal(t, int64(2), summary.DelayedOrders)
	require.Equal(t, int64(4), summary.LowStockCount)
	require.Equal(t, int64(1), summary.OutOfStockCount)

	// Windowed queries see the trailing 7-day boundary; the delayed count
	// sees the clock itself.
	expectedSince := testNow.Add(-7 * 24 * time.Hour)
	require.Equal(t, expectedSince, repo.salesSince)
	require.Equal(t, expectedSince, repo.purchaseSince)
	require.Equal(t, expectedSince, repo.returnedSince)
	require.Equal(t, expectedSince, repo.inTransitSince)
	require.Equal(t, testNow, repo.delayedAsOf)
}

func TestSummaryFailsWhole(t *testing.T) {
	repo := &mockRepo{lowStockErr: errors.New("boom")}
	svc := newTestService(repo)

	_, err := svc.Summary(context.Background())
	require.Error(t, err)
}

func TestSalesVsPurchasesZeroFills(t *testing.T) {
	repo := &mockRepo{
		monthlySales:     map[int]float64{3: 1500},
		monthlyPurchases: map[int]float64{3: 700, 9: 200},
	}
	svc := newTestService(repo)

	series, err := svc.SalesVsPurchases(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 12)
	require.Equal(t, "2025-01", series[0].Month)
	require.Equal(t, 0.0, series[0].Sales)
	require.Equal(t, 1500.0, series[2].Sales)
	require.Equal(t, 700.0, series[2].Purchases)
	require.Equal(t, 200.0, series[8].Purchases)
	require.Equal(t, "2025-12", series[11].Month)
}

func TestOrderSummaryZeroFills(t *testing.T) {
	repo := &mockRepo{
		ordered:   map[int]int64{1: 4},
		delivered: map[int]int64{2: 3},
	}
	svc := newTestService(repo)

	series, err := svc.OrderSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 12)
	require.Equal(t, int64(4), series[0].Ordered)
	require.Equal(t, int64(0), series[0].Delivered)
	require.Equal(t, int64(3), series[1].Delivered)
	require.Equal(t, int64(0), series[11].Ordered)
}

func TestTopProductsUsesTrailingWindow(t *testing.T) {
	repo := &mockRepo{topProducts: []TopProduct{{Product: "Cola", Sold: 40}}}
	svc := newTestService(repo)

	rows, err := svc.TopProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 5, repo.topLimit)
	require.Equal(t, testNow.Add(-7*24*time.Hour), repo.topSince)
}

func TestTopProductsEmptyIsNotNil(t *testing.T) {
	svc := newTestService(&mockRepo{})
	rows, err := svc.TopProducts(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}

func TestLowStockLimit(t *testing.T) {
	repo := &mockRepo{lowProducts: []LowStockProduct{{ID: 1, Name: "Water", Quantity: 2, Threshold: 5}}}
	svc := newTestService(repo)

	rows, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, repo.lowLimit)
	require.Len(t, rows, 1)
}
