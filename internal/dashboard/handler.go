package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-ims/meridian-ims/internal/platform/httpx"
)

// DashboardService defines the data contract used by the handler.
type DashboardService interface {
	Summary(ctx context.Context) (Summary, error)
	SalesVsPurchases(ctx context.Context) ([]MonthValue, error)
	OrderSummary(ctx context.Context) ([]MonthOrders, error)
	TopProducts(ctx context.Context) ([]TopProduct, error)
	LowStock(ctx context.Context) ([]LowStockProduct, error)
}

// Handler serves the dashboard and stats endpoints.
type Handler struct {
	logger  *slog.Logger
	service DashboardService
}

// NewHandler constructs the dashboard HTTP handler.
func NewHandler(logger *slog.Logger, service DashboardService) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers dashboard endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleSummary)
	r.Get("/stats/sales_vs_purchases", h.handleSalesVsPurchases)
	r.Get("/stats/top-products", h.handleTopProducts)
	r.Get("/stats/low-stock", h.handleLowStock)
	r.Get("/stats/order_summary", h.handleOrderSummary)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("dashboard summary failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) handleSalesVsPurchases(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.SalesVsPurchases(r.Context())
	if err != nil {
		h.logger.Error("sales vs purchases failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, series)
}

func (h *Handler) handleOrderSummary(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.OrderSummary(r.Context())
	if err != nil {
		h.logger.Error("order summary failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, series)
}

func (h *Handler) handleTopProducts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.TopProducts(r.Context())
	if err != nil {
		h.logger.Error("top products failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) handleLowStock(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.LowStock(r.Context())
	if err != nil {
		h.logger.Error("low stock failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}
