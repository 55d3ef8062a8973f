package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/meridian-ims/meridian-ims/internal/shared"
)

type stubReportService struct {
	overview   OverviewReport
	categories CategoryRanking
	products   ProductRanking
	monthly    ProfitVsRevenue
	err        error
	lastLimit  int
	lastYear   int
}

func (s *stubReportService) Overview(ctx context.Context, selector, start, end string) (OverviewReport, error) {
	return s.overview, s.err
}

func (s *stubReportService) BestCategories(ctx context.Context, selector, start, end string, limit int) (CategoryRanking, error) {
	s.lastLimit = limit
	return s.categories, s.err
}

func (s *stubReportService) BestProducts(ctx context.Context, selector, start, end string, limit int) (ProductRanking, error) {
	s.lastLimit = limit
	return s.products, s.err
}

func (s *stubReportService) ProfitVsRevenue(ctx context.Context, year int) (ProfitVsRevenue, error) {
	s.lastYear = year
	return s.monthly, s.err
}

func newTestRouter(svc ReportService) http.Handler {
	r := chi.NewRouter()
	NewHandler(slog.Default(), svc).MountRoutes(r)
	return r
}

func TestOverviewEndpoint(t *testing.T) {
	start := "2025-03-01"
	end := "2025-03-31"
	mom := 25.0
	svc := &stubReportService{
		overview: OverviewReport{
			Period: PeriodInfo{Mode: ModeMonth, Start: &start, End: &end},
			Overview: Overview{
				TotalProfit:      320,
				Revenue:          800,
				SalesCost:        480,
				NetPurchaseValue: 1200,
				NetSalesValue:    800,
				MoMProfitPct:     &mom,
			},
		},
	}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/overview?period=month", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Period struct {
			Mode  string  `json:"mode"`
			Start *string `json:"start"`
			End   *string `json:"end"`
		} `json:"period"`
		Overview struct {
			TotalProfit  float64  `json:"total_profit"`
			Revenue      float64  `json:"revenue"`
			SalesCost    float64  `json:"sales_cost"`
			MoMProfitPct *float64 `json:"mom_profit_pct"`
			YoYProfitPct *float64 `json:"yoy_profit_pct"`
		} `json:"overview"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "month", body.Period.Mode)
	require.Equal(t, 320.0, body.Overview.TotalProfit)
	require.Equal(t, 25.0, *body.Overview.MoMProfitPct)
	require.Nil(t, body.Overview.YoYProfitPct)
}

func TestOverviewEndpointInvalidPeriod(t *testing.T) {
	svc := &stubReportService{err: fmt.Errorf("%w: unknown mode", shared.ErrInvalidPeriod)}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/overview?period=bogus", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestBestCategoriesEndpointPassesLimit(t *testing.T) {
	svc := &stubReportService{categories: CategoryRanking{Items: []CategoryRank{}}}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/best-categories?limit=7", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 7, svc.lastLimit)
}

func TestProfitVsRevenueEndpoint(t *testing.T) {
	svc := &stubReportService{monthly: ProfitVsRevenue{Year: 2024, Series: make([]MonthPoint, 12)}}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/profit-vs-revenue?year=2024", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2024, svc.lastYear)

	var body struct {
		Series []MonthPoint `json:"series"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Series, 12)
}

func TestExportEndpointReturnsWorkbook(t *testing.T) {
	start := "2025-03-01"
	end := "2025-03-31"
	svc := &stubReportService{
		overview: OverviewReport{Period: PeriodInfo{Mode: ModeMonth, Start: &start, End: &end}},
	}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/overview/export.xlsx", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	require.NotZero(t, rec.Body.Len())
}
