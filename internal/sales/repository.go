package sales

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-ims/meridian-ims/internal/shared"
)

// ListFilters narrows sale listings; zero values mean no filter.
type ListFilters struct {
	Page      int
	Limit     int
	ProductID int64
	From      *time.Time
	To        *time.Time
}

func (f *ListFilters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
}

func (f ListFilters) Offset() int {
	return (f.Page - 1) * f.Limit
}

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Sale, int, error)
	Get(ctx context.Context, id int64) (Sale, error)
	Create(ctx context.Context, sale Sale) (Sale, error)
	Update(ctx context.Context, id int64, sale Sale) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const saleColumns = `id, product_id, store_id, quantity, selling_price, buying_price, total_value, sale_date, created_at, updated_at`

func scanSale(row pgx.Row) (Sale, error) {
	var s Sale
	err := row.Scan(&s.ID, &s.ProductID, &s.StoreID, &s.Quantity, &s.SellingPrice,
		&s.BuyingPrice, &s.TotalValue, &s.SaleDate, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sale{}, shared.ErrNotFound
	}
	return s, err
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Sale, int, error) {
	filters.Normalize()

	args := []any{}
	where := ""
	if filters.ProductID > 0 {
		args = append(args, filters.ProductID)
		where += ` AND product_id = $` + strconv.Itoa(len(args))
	}
	if filters.From != nil {
		args = append(args, *filters.From)
		where += ` AND sale_date >= $` + strconv.Itoa(len(args))
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		where += ` AND sale_date <= $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sales WHERE 1=1`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filters.Limit, filters.Offset())
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1` + where +
		` ORDER BY sale_date DESC, id DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.StoreID, &s.Quantity, &s.SellingPrice,
			&s.BuyingPrice, &s.TotalValue, &s.SaleDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Sale, error) {
	return scanSale(r.pool.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, sale Sale) (Sale, error) {
	now := time.Now()
	err := r.pool.QueryRow(ctx, `INSERT INTO sales (product_id, store_id, quantity, selling_price,
		buying_price, total_value, sale_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id`,
		sale.ProductID, sale.StoreID, sale.Quantity, sale.SellingPrice,
		sale.BuyingPrice, sale.TotalValue, sale.SaleDate, now).Scan(&sale.ID)
	if err != nil {
		return Sale{}, err
	}
	sale.CreatedAt = now
	sale.UpdatedAt = now
	return sale, nil
}

func (r *repository) Update(ctx context.Context, id int64, sale Sale) error {
	tag, err := r.pool.Exec(ctx, `UPDATE sales SET store_id = $1, quantity = $2, selling_price = $3,
		buying_price = $4, total_value = $5, sale_date = $6, updated_at = $7 WHERE id = $8`,
		sale.StoreID, sale.Quantity, sale.SellingPrice, sale.BuyingPrice,
		sale.TotalValue, sale.SaleDate, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
