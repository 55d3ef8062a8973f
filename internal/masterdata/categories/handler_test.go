package categories

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/meridian-ims/meridian-ims/internal/masterdata/shared"
	internalShared "github.com/meridian-ims/meridian-ims/internal/shared"
)

type mockRepo struct {
	items   map[int64]Category
	nextID  int64
	lastFil shared.ListFilters
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: map[int64]Category{}, nextID: 1}
}

func (m *mockRepo) List(ctx context.Context, filters shared.ListFilters) ([]Category, int, error) {
	m.lastFil = filters
	out := make([]Category, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (Category, error) {
	if c, ok := m.items[id]; ok {
		return c, nil
	}
	return Category{}, internalShared.ErrNotFound
}

func (m *mockRepo) Create(ctx context.Context, category Category) (Category, error) {
	for _, c := range m.items {
		if c.Name == category.Name {
			return Category{}, internalShared.ErrAlreadyExists
		}
	}
	category.ID = m.nextID
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.nextID++
	m.items[category.ID] = category
	return category, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, category Category) error {
	if _, ok := m.items[id]; !ok {
		return internalShared.ErrNotFound
	}
	category.ID = id
	m.items[id] = category
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return internalShared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func newTestRouter() (http.Handler, *mockRepo) {
	repo := newMockRepo()
	handler := NewHandler(slog.Default(), NewService(repo))
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r, repo
}

func TestCreateAndGetCategory(t *testing.T) {
	router, _ := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/categories/",
		strings.NewReader(`{"name":"Beverages","description":"Drinks"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "Beverages", created.Name)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateCategoryDuplicate(t *testing.T) {
	router, _ := newTestRouter()
	body := `{"name":"Beverages"}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/categories/", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/categories/", strings.NewReader(body)))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateCategoryValidation(t *testing.T) {
	router, _ := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/categories/",
		strings.NewReader(`{"description":"no name"}`)))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListCategoriesMeta(t *testing.T) {
	router, _ := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/categories/",
		strings.NewReader(`{"name":"Beverages"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/?page=1&limit=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []Category                `json:"data"`
		Meta internalShared.Pagination `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	require.Equal(t, 1, resp.Meta.Total)
	require.Equal(t, 10, resp.Meta.PerPage)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	router, _ := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/categories/42",
		strings.NewReader(`{"name":"Renamed"}`)))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCategory(t *testing.T) {
	router, repo := newTestRouter()
	repo.items[1] = Category{ID: 1, Name: "Beverages"}
	repo.nextID = 2

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/categories/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, repo.items)
}
