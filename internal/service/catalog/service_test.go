package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkpoint/storefront-service/internal/domain"
	productStorage "github.com/perkpoint/storefront-service/internal/infra/storage/product"
	"github.com/perkpoint/storefront-service/internal/service/catalog/models"
	"github.com/perkpoint/storefront-service/pkg/ptr"
)

type fakeProductRepo struct {
	nextID   int64
	products map[int64]*domain.Product
	listErr  error
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
		if p.ID > repo.nextID {
			repo.nextID = p.ID
		}
	}
	return repo
}

func (r *fakeProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.nextID++
	stored := *p
	stored.ID = r.nextID
	r.products[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, productStorage.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProductRepo) List(_ context.Context, category *domain.ProductCategory) ([]*domain.Product, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Product
	for _, p := range r.products {
		if category != nil && p.Category != *category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if _, ok := r.products[p.ID]; !ok {
		return nil, productStorage.ErrProductNotFound
	}
	stored := *p
	r.products[p.ID] = &stored
	return &stored, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return productStorage.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type fakeCache struct {
	entries     map[string][]*domain.Product
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]*domain.Product)}
}

func (c *fakeCache) GetProducts(_ context.Context, key string) ([]*domain.Product, bool) {
	products, ok := c.entries[key]
	return products, ok
}

func (c *fakeCache) SetProducts(_ context.Context, key string, products []*domain.Product) {
	c.entries[key] = products
}

func (c *fakeCache) Invalidate(_ context.Context) {
	c.entries = make(map[string][]*domain.Product)
	c.invalidated++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testProduct(id int64, name string) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        name,
		Price:       3.50,
		Category:    domain.CategoryCoffees,
		IsAvailable: true,
	}
}

func TestList_PopulatesCache(t *testing.T) {
	repo := newFakeProductRepo(testProduct(1, "Flat White"))
	cache := newFakeCache()
	svc := NewService(repo, cache, nopLogger{})

	resp, err := svc.List(context.Background(), nil)
	require.NoError(t, err)

	assert.Len(t, resp.Products, 1)
	assert.False(t, resp.Degraded)
	assert.Contains(t, cache.entries, "all")
}

func TestList_ServesCacheWhenRepositoryDown(t *testing.T) {
	repo := newFakeProductRepo(testProduct(1, "Flat White"))
	cache := newFakeCache()
	svc := NewService(repo, cache, nopLogger{})
	ctx := context.Background()

	_, err := svc.List(ctx, nil)
	require.NoError(t, err)

	repo.listErr = errors.New("connection refused")

	resp, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Len(t, resp.Products, 1)
}

func TestList_FailsWithoutCacheFallback(t *testing.T) {
	repo := newFakeProductRepo()
	repo.listErr = errors.New("connection refused")
	svc := NewService(repo, newFakeCache(), nopLogger{})

	_, err := svc.List(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestList_RejectsUnknownCategory(t *testing.T) {
	svc := NewService(newFakeProductRepo(), newFakeCache(), nopLogger{})

	_, err := svc.List(context.Background(), ptr.Ptr("Smoothies"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newFakeProductRepo(), newFakeCache(), nopLogger{})
	ctx := context.Background()

	t.Run("missing name", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.CreateProductRequest{Category: "Coffees", Price: 3.50})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.CreateProductRequest{Name: "Latte", Category: "Smoothies", Price: 3.50})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.CreateProductRequest{Name: "Latte", Category: "Coffees", Price: -1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("default option not offered", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.CreateProductRequest{
			Name:          "Latte",
			Category:      "Coffees",
			Price:         3.50,
			DefaultOption: ptr.Ptr("oat"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCreate_InvalidatesCache(t *testing.T) {
	cache := newFakeCache()
	svc := NewService(newFakeProductRepo(), cache, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateProductRequest{
		Name:     "Latte",
		Category: "Coffees",
		Price:    3.50,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsAvailable)
	assert.Equal(t, 1, cache.invalidated)
}

func TestUpdate_PartialUpdateRevalidates(t *testing.T) {
	repo := newFakeProductRepo(testProduct(1, "Flat White"))
	cache := newFakeCache()
	svc := NewService(repo, cache, nopLogger{})
	ctx := context.Background()

	resp, err := svc.Update(ctx, 1, &models.UpdateProductRequest{
		Price:       ptr.Ptr(3.80),
		IsAvailable: ptr.Ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Flat White", resp.Name)
	assert.Equal(t, 3.80, resp.Price)
	assert.False(t, resp.IsAvailable)
	assert.Equal(t, 1, cache.invalidated)

	// Частичное обновление не может сделать продукт некорректным
	_, err = svc.Update(ctx, 1, &models.UpdateProductRequest{Price: ptr.Ptr(-1.0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newFakeProductRepo(), newFakeCache(), nopLogger{})

	_, err := svc.Update(context.Background(), 99, &models.UpdateProductRequest{Price: ptr.Ptr(3.80)})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDelete(t *testing.T) {
	repo := newFakeProductRepo(testProduct(1, "Flat White"))
	cache := newFakeCache()
	svc := NewService(repo, cache, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 1))
	assert.Empty(t, repo.products)
	assert.Equal(t, 1, cache.invalidated)

	assert.ErrorIs(t, svc.Delete(ctx, 1), ErrProductNotFound)
}
