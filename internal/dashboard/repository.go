package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Purchase order statuses the dashboard distinguishes.
const (
	statusDelivered      = "Delivered"
	statusReturned       = "Returned"
	statusOutForDelivery = "Out for delivery"
)

// Repository exposes the point-in-time and windowed aggregates backing the
// dashboard views.
type Repository interface {
	CountCategoriesSince(ctx context.Context, since time.Time) (int64, error)
	CountProductsSince(ctx context.Context, since time.Time) (int64, error)
	CountSuppliersSince(ctx context.Context, since time.Time) (int64, error)
	QuantityInHand(ctx context.Context) (int64, error)
	OutstandingQuantity(ctx context.Context) (int64, error)
	SalesWindow(ctx context.Context, since time.Time) (SalesWindow, error)
	PurchaseWindow(ctx context.Context, since time.Time) (int64, float64, error)
	ReturnedWindow(ctx context.Context, since time.Time) (float64, int64, error)
	InTransitValue(ctx context.Context, since time.Time) (float64, error)
	DelayedCount(ctx context.Context, now time.Time) (int64, error)
	LowStockCount(ctx context.Context) (int64, error)
	OutOfStockCount(ctx context.Context) (int64, error)
	MonthlySalesValue(ctx context.Context, year int) (map[int]float64, error)
	MonthlyPurchaseValue(ctx context.Context, year int) (map[int]float64, error)
	MonthlyOrderedCounts(ctx context.Context, year int) (map[int]int64, error)
	MonthlyDeliveredCounts(ctx context.Context, year int) (map[int]int64, error)
	TopProductsByUnits(ctx context.Context, since time.Time, limit int) ([]TopProduct, error)
	LowStockProducts(ctx context.Context, limit int) ([]LowStockProduct, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the postgres-backed dashboard repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) scalarInt(ctx context.Context, query string, args ...any) (int64, error) {
	var v int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}

func (r *repository) scalarFloat(ctx context.Context, query string, args ...any) (float64, error) {
	var v float64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}

func (r *repository) CountCategoriesSince(ctx context.Context, since time.Time) (int64, error) {
	n, err := r.scalarInt(ctx, `SELECT COUNT(*) FROM categories WHERE created_at >= $1`, since)
	if err != nil {
		return 0, fmt.Errorf("dashboard: count categories: %w", err)
	}
	return n, nil
}

func (r *repository) CountProductsSince(ctx context.Context, since time.Time) (int64, error) {
	n, err := r.scalarInt(ctx, `SELECT COUNT(*) FROM products WHERE created_at >= $1`, since)
	if err != nil {
		return 0, fmt.Errorf("dashboard: count products: %w", err)
	}
	return n, nil
}

func (r *repository) CountSuppliersSince(ctx context.Context, since time.Time) (int64, error) {
	n, err := r.scalarInt(ctx, `SELECT COUNT(*) FROM suppliers WHERE created_at >= $1`, since)
	if err != nil {
		return 0, fmt.Errorf("dashboard: count suppliers: %w", err)
	}
	return n, nil
}

func (r *repository) QuantityInHand(ctx context.Context) (int64, error) {
	n, err := r.scalarInt(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM products`)
	if err != nil {
		return 0, fmt.Errorf("dashboard: quantity in hand: %w", err)
	}
	return n, nil
}

func (r *repository) OutstandingQuantity(ctx context.Context) (int64, error) {
	n, err := r.scalarInt(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM purchase_orders WHERE status != $1`, statusDelivered)
	if err != nil {
		return 0, fmt.Errorf("dashboard: outstanding quantity: %w", err)
	}
	return n, nil
}

func (r *repository) SalesWindow(ctx context.Context, since time.Time) (SalesWindow, error) {
	var window SalesWindow
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0),
		COALESCE(SUM(selling_price * quantity), 0),
		COALESCE(SUM(buying_price * quantity), 0)
		FROM sales WHERE sale_date >= $1`, since).
		Scan(&window.Units, &window.Revenue, &window.Cost)
	if err != nil {
		return SalesWindow{}, fmt.Errorf("dashboard: sales window: %w", err)
	}
	window.Profit = window.Revenue - window.Cost
	return window, nil
}

func (r *repository) PurchaseWindow(ctx context.Context, since time.Time) (int64, float64, error) {
	var count int64
	var cost float64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(order_value), 0)
		FROM purchase_orders WHERE order_date >= $1`, since).
		Scan(&count, &cost)
	if err != nil {
		return 0, 0, fmt.Errorf("dashboard: purchase window: %w", err)
	}
	return count, cost, nil
}

func (r *repository) ReturnedWindow(ctx context.Context, since time.Time) (float64, int64, error) {
	var value float64
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(order_value), 0), COUNT(*)
		FROM purchase_orders WHERE status = $1 AND order_date >= $2`, statusReturned, since).
		Scan(&value, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("dashboard: returned window: %w", err)
	}
	return value, count, nil
}

func (r *repository) InTransitValue(ctx context.Context, since time.Time) (float64, error) {
	v, err := r.scalarFloat(ctx, `SELECT COALESCE(SUM(order_value), 0)
		FROM purchase_orders WHERE status = $1 AND order_date >= $2`, statusOutForDelivery, since)
	if err != nil {
		return 0, fmt.Errorf("dashboard: in transit value: %w", err)
	}
	return v, nil
}

func (r *repository) DelayedCount(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.scalarInt(ctx, `SELECT COUNT(*) FROM purchase_orders
		WHERE expected_date < $1 AND status != $2`, now, statusDelivered)
	if err != nil {
		return 0, fmt.Errorf("dashboard: delayed count: %w", err)
	}
	return n, nil
}

func (r *repository) LowStockCount(ctx context.Context) (int64, error) {
	n, err := r.scalarInt(ctx, `SELECT COUNT(*) FROM products WHERE quantity <= threshold`)
	if err != nil {
		return 0, fmt.Errorf("dashboard: low stock count: %w", err)
	}
	return n, nil
}

func (r *repository) OutOfStockCount(ctx context.Context) (int64, error) {
	n, err := r.scalarInt(ctx, `SELECT COUNT(*) FROM products WHERE quantity = 0`)
	if err != nil {
		return 0, fmt.Errorf("dashboard: out of stock count: %w", err)
	}
	return n, nil
}

func (r *repository) monthlyFloat(ctx context.Context, query string, year int) (map[int]float64, error) {
	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]float64, 12)
	for rows.Next() {
		var month int
		var value float64
		if err := rows.Scan(&month, &value); err != nil {
			return nil, err
		}
		out[month] = value
	}
	return out, rows.Err()
}

func (r *repository) monthlyInt(ctx context.Context, query string, args ...any) (map[int]int64, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]int64, 12)
	for rows.Next() {
		var month int
		var count int64
		if err := rows.Scan(&month, &count); err != nil {
			return nil, err
		}
		out[month] = count
	}
	return out, rows.Err()
}

func (r *repository) MonthlySalesValue(ctx context.Context, year int) (map[int]float64, error) {
	out, err := r.monthlyFloat(ctx, `SELECT EXTRACT(MONTH FROM sale_date)::int AS m,
		COALESCE(SUM(total_value), 0)
		FROM sales WHERE EXTRACT(YEAR FROM sale_date)::int = $1
		GROUP BY m`, year)
	if err != nil {
		return nil, fmt.Errorf("dashboard: monthly sales value: %w", err)
	}
	return out, nil
}

func (r *repository) MonthlyPurchaseValue(ctx context.Context, year int) (map[int]float64, error) {
	out, err := r.monthlyFloat(ctx, `SELECT EXTRACT(MONTH FROM order_date)::int AS m,
		COALESCE(SUM(order_value), 0)
		FROM purchase_orders WHERE EXTRACT(YEAR FROM order_date)::int = $1
		GROUP BY m`, year)
	if err != nil {
		return nil, fmt.Errorf("dashboard: monthly purchase value: %w", err)
	}
	return out, nil
}

func (r *repository) MonthlyOrderedCounts(ctx context.Context, year int) (map[int]int64, error) {
	out, err := r.monthlyInt(ctx, `SELECT EXTRACT(MONTH FROM order_date)::int AS m, COUNT(*)
		FROM purchase_orders WHERE EXTRACT(YEAR FROM order_date)::int = $1
		GROUP BY m`, year)
	if err != nil {
		return nil, fmt.Errorf("dashboard: monthly ordered counts: %w", err)
	}
	return out, nil
}

func (r *repository) MonthlyDeliveredCounts(ctx context.Context, year int) (map[int]int64, error) {
	out, err := r.monthlyInt(ctx, `SELECT EXTRACT(MONTH FROM expected_date)::int AS m, COUNT(*)
		FROM purchase_orders
		WHERE status = $1 AND EXTRACT(YEAR FROM expected_date)::int = $2
		GROUP BY m`, statusDelivered, year)
	if err != nil {
		return nil, fmt.Errorf("dashboard: monthly delivered counts: %w", err)
	}
	return out, nil
}

func (r *repository) TopProductsByUnits(ctx context.Context, since time.Time, limit int) ([]TopProduct, error) {
	rows, err := r.pool.Query(ctx, `SELECT p.name, SUM(s.quantity) AS sold, p.quantity,
		COALESCE(p.selling_price, 0)
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE s.sale_date >= $1
		GROUP BY p.id, p.name, p.quantity, p.selling_price
		ORDER BY sold DESC, p.id ASC
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: top products: %w", err)
	}
	defer rows.Close()

	var out []TopProduct
	for rows.Next() {
		var row TopProduct
		if err := rows.Scan(&row.Product, &row.Sold, &row.Remaining, &row.Price); err != nil {
			return nil, fmt.Errorf("dashboard: scan top product: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) LowStockProducts(ctx context.Context, limit int) ([]LowStockProduct, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, quantity, threshold
		FROM products WHERE quantity <= threshold
		ORDER BY id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: low stock products: %w", err)
	}
	defer rows.Close()

	var out []LowStockProduct
	for rows.Next() {
		var row LowStockProduct
		if err := rows.Scan(&row.ID, &row.Name, &row.Quantity, &row.Threshold); err != nil {
			return nil, fmt.Errorf("dashboard: scan low stock product: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
