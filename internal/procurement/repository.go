package procurement

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-ims/meridian-ims/internal/shared"
)

// ListFilters narrows order listings; zero values mean no filter.
type ListFilters struct {
	Page       int
	Limit      int
	ProductID  int64
	SupplierID int64
	Status     string
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
	List(ctx context.Context, filters ListFilters) ([]PurchaseOrder, int, error)
	Get(ctx context.Context, id int64) (PurchaseOrder, error)
	Create(ctx context.Context, order PurchaseOrder) (PurchaseOrder, error)
	Update(ctx context.Context, id int64, order PurchaseOrder) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const orderColumns = `id, product_id, supplier_id, quantity, order_value, order_date, expected_date, status, received, received_date, created_at, updated_at`

func scanOrder(row pgx.Row) (PurchaseOrder, error) {
	var o PurchaseOrder
	err := row.Scan(&o.ID, &o.ProductID, &o.SupplierID, &o.Quantity, &o.OrderValue, &o.OrderDate,
		&o.ExpectedDate, &o.Status, &o.Received, &o.ReceivedDate, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return PurchaseOrder{}, shared.ErrNotFound
	}
	return o, err
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]PurchaseOrder, int, error) {
	filters.Normalize()

	args := []any{}
	where := ""
	if filters.ProductID > 0 {
		args = append(args, filters.ProductID)
		where += ` AND product_id = $` + strconv.Itoa(len(args))
	}
	if filters.SupplierID > 0 {
		args = append(args, filters.SupplierID)
		where += ` AND supplier_id = $` + strconv.Itoa(len(args))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		where += ` AND status = $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_orders WHERE 1=1`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filters.Limit, filters.Offset())
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE 1=1` + where +
		` ORDER BY order_date DESC, id DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []PurchaseOrder
	for rows.Next() {
		var o PurchaseOrder
		if err := rows.Scan(&o.ID, &o.ProductID, &o.SupplierID, &o.Quantity, &o.OrderValue, &o.OrderDate,
			&o.ExpectedDate, &o.Status, &o.Received, &o.ReceivedDate, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (PurchaseOrder, error) {
	return scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, order PurchaseOrder) (PurchaseOrder, error) {
	now := time.Now()
	err := r.pool.QueryRow(ctx, `INSERT INTO purchase_orders (product_id, supplier_id, quantity, order_value,
		order_date, expected_date, status, received, received_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10) RETURNING id`,
		order.ProductID, order.SupplierID, order.Quantity, order.OrderValue, order.OrderDate,
		order.ExpectedDate, order.Status, order.Received, order.ReceivedDate, now).Scan(&order.ID)
	if err != nil {
		return PurchaseOrder{}, err
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	return order, nil
}

func (r *repository) Update(ctx context.Context, id int64, order PurchaseOrder) error {
	tag, err := r.pool.Exec(ctx, `UPDATE purchase_orders SET quantity = $1, order_value = $2, order_date = $3,
		expected_date = $4, status = $5, received = $6, received_date = $7, updated_at = $8 WHERE id = $9`,
		order.Quantity, order.OrderValue, order.OrderDate, order.ExpectedDate, order.Status,
		order.Received, order.ReceivedDate, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
