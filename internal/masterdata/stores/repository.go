package stores

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
	List(ctx context.Context, filters shared.ListFilters) ([]Store, int, error)
	Get(ctx context.Context, id int64) (Store, error)
	Create(ctx context.Context, store Store) (Store, error)
	Update(ctx context.Context, id int64, store Store) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const storeColumns = `id, name, location, manager, phone, created_at, updated_at`

func scanStore(row pgx.Row) (Store, error) {
	var s Store
	err := row.Scan(&s.ID, &s.Name, &s.Location, &s.Manager, &s.Phone, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Store{}, internalShared.ErrNotFound
	}
	return s, err
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Store, int, error) {
	filters.Normalize()

	args := []any{}
	where := ""
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where = ` AND name ILIKE $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stores WHERE 1=1`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filters.Limit, filters.Offset())
	query := `SELECT ` + storeColumns + ` FROM stores WHERE 1=1` + where +
		` ORDER BY name ASC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var stores []Store
	for rows.Next() {
		var s Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.Manager, &s.Phone, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		stores = append(stores, s)
	}
	return stores, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Store, error) {
	return scanStore(r.pool.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, store Store) (Store, error) {
	now := time.Now()
	err := r.pool.QueryRow(ctx, `INSERT INTO stores (name, location, manager, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5) RETURNING id`,
		store.Name, store.Location, store.Manager, store.Phone, now).Scan(&store.ID)
	if err != nil {
		return Store{}, err
	}
	store.CreatedAt = now
	store.UpdatedAt = now
	return store, nil
}

func (r *repository) Update(ctx context.Context, id int64, store Store) error {
	tag, err := r.pool.Exec(ctx, `UPDATE stores SET name = $1, location = $2, manager = $3, phone = $4,
		updated_at = $5 WHERE id = $6`,
		store.Name, store.Location, store.Manager, store.Phone, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return internalShared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return internalShared.ErrNotFound
	}
	return nil
}
