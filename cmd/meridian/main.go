package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meridian-ims/meridian-ims/internal/app"
	"github.com/meridian-ims/meridian-ims/internal/auth"
	"github.com/meridian-ims/meridian-ims/internal/dashboard"
	"github.com/meridian-ims/meridian-ims/internal/masterdata/categories"
	"github.com/meridian-ims/meridian-ims/internal/masterdata/products"
	"github.com/meridian-ims/meridian-ims/internal/masterdata/stores"
	"github.com/meridian-ims/meridian-ims/internal/masterdata/suppliers"
	"github.com/meridian-ims/meridian-ims/internal/platform/cache"
	"github.com/meridian-ims/meridian-ims/internal/platform/db"
	"github.com/meridian-ims/meridian-ims/internal/procurement"
	"github.com/meridian-ims/meridian-ims/internal/reports"
	"github.com/meridian-ims/meridian-ims/internal/sales"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokenStore := auth.NewTokenStore(redisClient, cfg.TokenTTL)
	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, tokenStore)
	authHandler := auth.NewHandler(logger, authService)

	reportCache := reports.NewCache(redisClient, cfg.CacheTTL)
	reportsRepo := reports.NewRepository(dbpool)
	reportsService := reports.NewService(reportsRepo, reportCache)
	reportsHandler := reports.NewHandler(logger, reportsService)

	dashboardRepo := dashboard.NewRepository(dbpool)
	dashboardService := dashboard.NewService(dashboardRepo)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	categoriesService := categories.NewService(categories.NewRepository(dbpool))
	categoriesHandler := categories.NewHandler(logger, categoriesService)
	productsService := products.NewService(products.NewRepository(dbpool))
	productsHandler := products.NewHandler(logger, productsService)
	suppliersService := suppliers.NewService(suppliers.NewRepository(dbpool))
	suppliersHandler := suppliers.NewHandler(logger, suppliersService)
	storesService := stores.NewService(stores.NewRepository(dbpool))
	storesHandler := stores.NewHandler(logger, storesService)

	salesService := sales.NewService(logger, sales.NewRepository(dbpool), reportCache)
	salesHandler := sales.NewHandler(logger, salesService)
	procurementService := procurement.NewService(logger, procurement.NewRepository(dbpool), reportCache)
	procurementHandler := procurement.NewHandler(logger, procurementService)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthHandler:        authHandler,
		AuthService:        authService,
		ReportsHandler:     reportsHandler,
		DashboardHandler:   dashboardHandler,
		CategoriesHandler:  categoriesHandler,
		ProductsHandler:    productsHandler,
		SuppliersHandler:   suppliersHandler,
		StoresHandler:      storesHandler,
		SalesHandler:       salesHandler,
		ProcurementHandler: procurementHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
