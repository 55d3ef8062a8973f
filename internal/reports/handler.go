package reports

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/meridian-ims/meridian-ims/internal/platform/httpx"
)

// ReportService defines the report data contract used by the handler.
type ReportService interface {
	Overview(ctx context.Context, selector, start, end string) (OverviewReport, error)
	BestCategories(ctx context.Context, selector, start, end string, limit int) (CategoryRanking, error)
	BestProducts(ctx context.Context, selector, start, end string, limit int) (ProductRanking, error)
	ProfitVsRevenue(ctx context.Context, year int) (ProfitVsRevenue, error)
}

// Handler serves the report endpoints.
type Handler struct {
	logger  *slog.Logger
	service ReportService
}

// NewHandler constructs the reports HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers report endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/overview", h.handleOverview)
	r.Get("/reports/best-categories", h.handleBestCategories)
	r.Get("/reports/best-products", h.handleBestProducts)
	r.Get("/reports/profit-vs-revenue", h.handleProfitVsRevenue)

	limiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/reports/overview/export.xlsx", h.handleExport)
	})
}

func periodParams(r *http.Request) (selector, start, end string) {
	q := r.URL.Query()
	return q.Get("period"), q.Get("start"), q.Get("end")
}

func limitParam(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	selector, start, end := periodParams(r)
	report, err := h.service.Overview(r.Context(), selector, start, end)
	if err != nil {
		h.logger.Error("overview report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleBestCategories(w http.ResponseWriter, r *http.Request) {
	selector, start, end := periodParams(r)
	ranking, err := h.service.BestCategories(r.Context(), selector, start, end, limitParam(r))
	if err != nil {
		h.logger.Error("best categories report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ranking)
}

func (h *Handler) handleBestProducts(w http.ResponseWriter, r *http.Request) {
	selector, start, end := periodParams(r)
	ranking, err := h.service.BestProducts(r.Context(), selector, start, end, limitParam(r))
	if err != nil {
		h.logger.Error("best products report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ranking)
}

func (h *Handler) handleProfitVsRevenue(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	series, err := h.service.ProfitVsRevenue(r.Context(), year)
	if err != nil {
		h.logger.Error("profit vs revenue report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, series)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	selector, start, end := periodParams(r)
	overview, err := h.service.Overview(r.Context(), selector, start, end)
	if err != nil {
		h.logger.Error("export overview failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	products, err := h.service.BestProducts(r.Context(), selector, start, end, DefaultProductLimit)
	if err != nil {
		h.logger.Error("export products failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	categories, err := h.service.BestCategories(r.Context(), selector, start, end, DefaultCategoryLimit)
	if err != nil {
		h.logger.Error("export categories failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	book, err := BuildOverviewWorkbook(overview, products, categories)
	if err != nil {
		h.logger.Error("build workbook failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	defer func() { _ = book.Close() }()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="overview.xlsx"`)
	if err := book.Write(w); err != nil {
		h.logger.Error("write workbook failed", slog.Any("error", err))
	}
}
