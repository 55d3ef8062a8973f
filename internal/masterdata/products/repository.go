package products

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-ims/meridian-ims/internal/masterdata/shared"
	internalShared "github.com/meridian-ims/meridian-ims/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const productColumns = `id, name, buying_price, selling_price, quantity, threshold,
	expiry_date, supplier_id, category_id, store_id, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.BuyingPrice, &p.SellingPrice, &p.Quantity, &p.Threshold,
		&p.ExpiryDate, &p.SupplierID, &p.CategoryID, &p.StoreID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, internalShared.ErrNotFound
	}
	return p, err
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	filters.Normalize()

	args := []any{}
	where := ""
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where += ` AND name ILIKE $` + strconv.Itoa(len(args))
	}
	if filters.CategoryID != nil {
		args = append(args, *filters.CategoryID)
		where += ` AND category_id = $` + strconv.Itoa(len(args))
	}
	if filters.SupplierID != nil {
		args = append(args, *filters.SupplierID)
		where += ` AND supplier_id = $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE 1=1`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filters.Limit, filters.Offset())
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1` + where +
		` ORDER BY name ASC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.BuyingPrice, &p.SellingPrice, &p.Quantity, &p.Threshold,
			&p.ExpiryDate, &p.SupplierID, &p.CategoryID, &p.StoreID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	now := time.Now()
	err := r.pool.QueryRow(ctx, `INSERT INTO products
		(name, buying_price, selling_price, quantity, threshold, expiry_date, supplier_id, category_id, store_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10) RETURNING id`,
		product.Name, product.BuyingPrice, product.SellingPrice, product.Quantity, product.Threshold,
		product.ExpiryDate, product.SupplierID, product.CategoryID, product.StoreID, now).Scan(&product.ID)
	if err != nil {
		return Product{}, err
	}
	product.CreatedAt = now
	product.UpdatedAt = now
	return product, nil
}

func (r *repository) Update(ctx context.Context, id int64, product Product) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET name = $1, buying_price = $2, selling_price = $3,
		quantity = $4, threshold = $5, expiry_date = $6, supplier_id = $7, category_id = $8, store_id = $9,
		updated_at = $10 WHERE id = $11`,
		product.Name, product.BuyingPrice, product.SellingPrice, product.Quantity, product.Threshold,
		product.ExpiryDate, product.SupplierID, product.CategoryID, product.StoreID, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return internalShared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return internalShared.ErrNotFound
	}
	return nil
}
