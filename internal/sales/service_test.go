package sales

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meridian-ims/meridian-ims/internal/shared"
)

type mockRepo struct {
	created Sale
	updated Sale
	stored  Sale
	getErr  error
}

func (m *mockRepo) List(ctx context.Context, filters ListFilters) ([]Sale, int, error) {
	return nil, 0, nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (Sale, error) {
	return m.stored, m.getErr
}

func (m *mockRepo) Create(ctx context.Context, sale Sale) (Sale, error) {
	sale.ID = 1
	m.created = sale
	return sale, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, sale Sale) error {
	m.updated = sale
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

type mockInvalidator struct {
	bumps int
}

func (m *mockInvalidator) Bump(ctx context.Context) error {
	m.bumps++
	return nil
}

func TestCreateSaleComputesTotal(t *testing.T) {
	repo := &mockRepo{}
	inv := &mockInvalidator{}
	svc := NewService(slog.Default(), repo, inv)

	sale, err := svc.Create(context.Background(), CreateSaleRequest{
		ProductID:    7,
		Quantity:     4,
		SellingPrice: 12.5,
		BuyingPrice:  8,
		SaleDate:     "2025-03-10",
	})
	require.NoError(t, err)
	require.Equal(t, 50.0, sale.TotalValue)
	require.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), sale.SaleDate)
	require.Equal(t, 1, inv.bumps)
}

func TestCreateSaleRejectsInconsistentTotal(t *testing.T) {
	svc := NewService(slog.Default(), &mockRepo{}, nil)
	wrong := 999.0
	_, err := svc.Create(context.Background(), CreateSaleRequest{
		ProductID:    7,
		Quantity:     4,
		SellingPrice: 12.5,
		BuyingPrice:  8,
		TotalValue:   &wrong,
		SaleDate:     "2025-03-10",
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateSaleAcceptsMatchingTotal(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(slog.Default(), repo, nil)
	total := 50.0
	sale, err := svc.Create(context.Background(), CreateSaleRequest{
		ProductID:    7,
		Quantity:     4,
		SellingPrice: 12.5,
		BuyingPrice:  8,
		TotalValue:   &total,
		SaleDate:     "2025-03-10",
	})
	require.NoError(t, err)
	require.Equal(t, 50.0, sale.TotalValue)
}

func TestCreateSaleValidation(t *testing.T) {
	svc := NewService(slog.Default(), &mockRepo{}, nil)

	_, err := svc.Create(context.Background(), CreateSaleRequest{
		ProductID: 7, Quantity: 0, SellingPrice: 10, SaleDate: "2025-03-10",
	})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), CreateSaleRequest{
		ProductID: 7, Quantity: 1, SellingPrice: 10, SaleDate: "10/03/2025",
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateSaleRederivesTotal(t *testing.T) {
	repo := &mockRepo{stored: Sale{
		ID: 1, ProductID: 7, Quantity: 4, SellingPrice: 12.5, BuyingPrice: 8,
		TotalValue: 50, SaleDate: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}}
	inv := &mockInvalidator{}
	svc := NewService(slog.Default(), repo, inv)

	qty := 6
	sale, err := svc.Update(context.Background(), 1, UpdateSaleRequest{Quantity: &qty})
	require.NoError(t, err)
	require.Equal(t, 75.0, sale.TotalValue)
	require.Equal(t, 1, inv.bumps)
}

func TestUpdateSaleNotFound(t *testing.T) {
	repo := &mockRepo{getErr: shared.ErrNotFound}
	svc := NewService(slog.Default(), repo, nil)

	qty := 6
	_, err := svc.Update(context.Background(), 99, UpdateSaleRequest{Quantity: &qty})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteSaleBumpsCache(t *testing.T) {
	inv := &mockInvalidator{}
	svc := NewService(slog.Default(), &mockRepo{}, inv)
	require.NoError(t, svc.Delete(context.Background(), 1))
	require.Equal(t, 1, inv.bumps)
}
