package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridian-ims/meridian-ims/internal/auth"
	"github.com/meridian-ims/meridian-ims/internal/dashboard"
	"github.com/meridian-ims/meridian-ims/internal/masterdata/categories"
	"github.com/meridian-ims/meridian-ims/internal/masterdata/products"
	"github.com/meridian-ims/meridian-ims/internal/masterdata/stores"
	"github.com/meridian-ims/meridian-ims/internal/masterdata/suppliers"
	"github.com/meridian-ims/meridian-ims/internal/procurement"
	"github.com/meridian-ims/meridian-ims/internal/reports"
	"github.com/meridian-ims/meridian-ims/internal/sales"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	AuthHandler        *auth.Handler
	AuthService        *auth.Service
	ReportsHandler     *reports.Handler
	DashboardHandler   *dashboard.Handler
	CategoriesHandler  *categories.Handler
	ProductsHandler    *products.Handler
	SuppliersHandler   *suppliers.Handler
	StoresHandler      *stores.Handler
	SalesHandler       *sales.Handler
	ProcurementHandler *procurement.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.AuthHandler.MountRoutes(r)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(params.AuthService))

		params.ReportsHandler.MountRoutes(r)
		params.DashboardHandler.MountRoutes(r)
		params.CategoriesHandler.MountRoutes(r)
		params.ProductsHandler.MountRoutes(r)
		params.SuppliersHandler.MountRoutes(r)
		params.StoresHandler.MountRoutes(r)
		params.SalesHandler.MountRoutes(r)
		params.ProcurementHandler.MountRoutes(r)
	})

	return r
}
