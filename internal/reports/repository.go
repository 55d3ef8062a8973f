package reports

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatusDelivered is the purchase order status counted into net purchase value.
const StatusDelivered = "Delivered"

// Repository exposes the aggregate queries the reporting service relies on.
// Implementations must treat a nil interval bound as "no filter on that side".
type Repository interface {
	SalesTotals(ctx context.Context, iv Interval) (SalesTotals, error)
	PurchaseValue(ctx context.Context, iv Interval, status string) (float64, error)
	TopCategories(ctx context.Context, iv Interval, limit int) ([]CategoryTurnoverRow, error)
	CategoryTurnoverByIDs(ctx context.Context, iv Interval, ids []int64) (map[int64]float64, error)
	TopProducts(ctx context.Context, iv Interval, limit int) ([]ProductTurnoverRow, error)
	ProductTurnoverByIDs(ctx context.Context, iv Interval, ids []int64) (map[int64]float64, error)
	MonthlySales(ctx context.Context, year int) ([]MonthlySalesRow, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the postgres-backed reports repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// intervalClause appends date bound conditions for col to the query, skipping
// nil bounds entirely so an unbounded period scans the whole table.
func intervalClause(col string, iv Interval, args *[]any) string {
	clause := ""
	if iv.Start != nil {
		*args = append(*args, *iv.Start)
		clause += " AND " + col + " >= $" + strconv.Itoa(len(*args))
	}
	if iv.End != nil {
		*args = append(*args, *iv.End)
		clause += " AND " + col + " <= $" + strconv.Itoa(len(*args))
	}
	return clause
}

func (r *repository) SalesTotals(ctx context.Context, iv Interval) (SalesTotals, error) {
	args := []any{}
	query := `SELECT COALESCE(SUM(selling_price * quantity), 0),
		COALESCE(SUM(buying_price * quantity), 0)
		FROM sales WHERE 1=1` + intervalClause("sale_date", iv, &args)

	var totals SalesTotals
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&totals.Revenue, &totals.Cost); err != nil {
		return SalesTotals{}, fmt.Errorf("reports: sales totals: %w", err)
	}
	totals.Profit = totals.Revenue - totals.Cost
	return totals, nil
}

func (r *repository) PurchaseValue(ctx context.Context, iv Interval, status string) (float64, error) {
	args := []any{status}
	query := `SELECT COALESCE(SUM(order_value), 0) FROM purchase_orders
		WHERE status = $1` + intervalClause("order_date", iv, &args)

	var total float64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("reports: purchase value: %w", err)
	}
	return total, nil
}

func (r *repository) TopCategories(ctx context.Context, iv Interval, limit int) ([]CategoryTurnoverRow, error) {
	args := []any{}
	query := `SELECT c.id, c.name, SUM(s.selling_price * s.quantity) AS turnover
		FROM sales s
		JOIN products p ON p.id = s.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE 1=1` + intervalClause("s.sale_date", iv, &args) + `
		GROUP BY c.id, c.name
		ORDER BY turnover DESC, c.id ASC`
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports: top categories: %w", err)
	}
	defer rows.Close()

	var out []CategoryTurnoverRow
	for rows.Next() {
		var row CategoryTurnoverRow
		if err := rows.Scan(&row.CategoryID, &row.Name, &row.Turnover); err != nil {
			return nil, fmt.Errorf("reports: scan category row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) CategoryTurnoverByIDs(ctx context.Context, iv Interval, ids []int64) (map[int64]float64, error) {
	if len(ids) == 0 {
		return map[int64]float64{}, nil
	}
	args := []any{ids}
	query := `SELECT c.id, SUM(s.selling_price * s.quantity)
		FROM sales s
		JOIN products p ON p.id = s.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE c.id = ANY($1)` + intervalClause("s.sale_date", iv, &args) + `
		GROUP BY c.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports: category turnover by ids: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]float64, len(ids))
	for rows.Next() {
		var id int64
		var turnover float64
		if err := rows.Scan(&id, &turnover); err != nil {
			return nil, fmt.Errorf("reports: scan category turnover: %w", err)
		}
		out[id] = turnover
	}
	return out, rows.Err()
}

func (r *repository) TopProducts(ctx context.Context, iv Interval, limit int) ([]ProductTurnoverRow, error) {
	args := []any{}
	query := `SELECT p.id, p.name, c.name, SUM(s.quantity) AS sold_qty,
		p.quantity, SUM(s.selling_price * s.quantity) AS turnover
		FROM sales s
		JOIN products p ON p.id = s.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE 1=1` + intervalClause("s.sale_date", iv, &args) + `
		GROUP BY p.id, p.name, c.name, p.quantity
		ORDER BY turnover DESC, p.id ASC`
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports: top products: %w", err)
	}
	defer rows.Close()

	var out []ProductTurnoverRow
	for rows.Next() {
		var row ProductTurnoverRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.CategoryName, &row.SoldQuantity, &row.RemainingQuantity, &row.Turnover); err != nil {
			return nil, fmt.Errorf("reports: scan product row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) ProductTurnoverByIDs(ctx context.Context, iv Interval, ids []int64) (map[int64]float64, error) {
	if len(ids) == 0 {
		return map[int64]float64{}, nil
	}
	args := []any{ids}
	query := `SELECT product_id, SUM(selling_price * quantity)
		FROM sales
		WHERE product_id = ANY($1)` + intervalClause("sale_date", iv, &args) + `
		GROUP BY product_id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports: product turnover by ids: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]float64, len(ids))
	for rows.Next() {
		var id int64
		var turnover float64
		if err := rows.Scan(&id, &turnover); err != nil {
			return nil, fmt.Errorf("reports: scan product turnover: %w", err)
		}
		out[id] = turnover
	}
	return out, rows.Err()
}

func (r *repository) MonthlySales(ctx context.Context, year int) ([]MonthlySalesRow, error) {
	query := `SELECT EXTRACT(MONTH FROM sale_date)::int AS m,
		COALESCE(SUM(selling_price * quantity), 0),
		COALESCE(SUM(buying_price * quantity), 0)
		FROM sales
		WHERE EXTRACT(YEAR FROM sale_date)::int = $1
		GROUP BY m ORDER BY m`

	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("reports: monthly sales: %w", err)
	}
	defer rows.Close()

	var out []MonthlySalesRow
	for rows.Next() {
		var row MonthlySalesRow
		if err := rows.Scan(&row.Month, &row.Revenue, &row.Cost); err != nil {
			return nil, fmt.Errorf("reports: scan monthly sales: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
