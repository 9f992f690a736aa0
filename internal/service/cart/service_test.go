package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkpoint/storefront-service/internal/domain"
	cartStorage "github.com/perkpoint/storefront-service/internal/infra/storage/cart"
	productRepo "github.com/perkpoint/storefront-service/internal/infra/storage/product"
	"github.com/perkpoint/storefront-service/internal/service/cart/models"
	"github.com/perkpoint/storefront-service/pkg/ptr"
)

// fakeCartRepo эмулирует семантику слияния строк по ключу (user, product, option)
type fakeCartRepo struct {
	nextID int64
	lines  []*domain.CartLine
}

func (r *fakeCartRepo) Upsert(_ context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	for _, existing := range r.lines {
		if existing.UserID == line.UserID && existing.SameKey(line.ProductID, line.SelectedOption) {
			existing.Quantity += line.Quantity
			return existing, nil
		}
	}
	r.nextID++
	stored := *line
	stored.ID = r.nextID
	r.lines = append(r.lines, &stored)
	return &stored, nil
}

func (r *fakeCartRepo) ListByUser(_ context.Context, userID string) ([]*domain.CartLine, error) {
	var out []*domain.CartLine
	for _, line := range r.lines {
		if line.UserID == userID {
			out = append(out, line)
		}
	}
	return out, nil
}

func (r *fakeCartRepo) SetQuantity(_ context.Context, userID string, productID int64, selectedOption *string, quantity int) error {
	for _, line := range r.lines {
		if line.UserID == userID && line.SameKey(productID, selectedOption) {
			line.Quantity = quantity
			return nil
		}
	}
	return cartStorage.ErrLineNotFound
}

func (r *fakeCartRepo) DeleteLine(_ context.Context, userID string, productID int64, selectedOption *string) error {
	for i, line := range r.lines {
		if line.UserID == userID && line.SameKey(productID, selectedOption) {
			r.lines = append(r.lines[:i], r.lines[i+1:]...)
			return nil
		}
	}
	return cartStorage.ErrLineNotFound
}

func (r *fakeCartRepo) ClearByUser(_ context.Context, userID string) error {
	var kept []*domain.CartLine
	for _, line := range r.lines {
		if line.UserID != userID {
			kept = append(kept, line)
		}
	}
	r.lines = kept
	return nil
}

type fakeProductRepo struct {
	products map[int64]*domain.Product
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, productRepo.ErrProductNotFound
	}
	return p, nil
}

type stubSettingsProvider struct {
	settings *domain.Settings
}

func (s *stubSettingsProvider) Get(_ context.Context) (*domain.Settings, error) {
	return s.settings, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeCartRepo) {
	settings := domain.DefaultSettings()
	settings.ProductOptions = []domain.ProductOption{
		{ID: "oat", Title: "Oat milk", Price: 0.50},
	}
	cartRepo := &fakeCartRepo{}
	products := &fakeProductRepo{products: map[int64]*domain.Product{
		10: {ID: 10, Name: "Flat White", Price: 3.50, Category: domain.CategoryCoffees, IsAvailable: true, AvailableOptions: []string{"oat"}},
		11: {ID: 11, Name: "Croissant", Price: 2.00, Category: domain.CategoryCakes, IsAvailable: true},
		12: {ID: 12, Name: "Mocha", Price: 4.00, Category: domain.CategoryCoffees, IsAvailable: false},
	}}
	svc := NewService(cartRepo, products, &stubSettingsProvider{settings: settings}, nopLogger{})
	return svc, cartRepo
}

func TestAddItem_MergesSameProductAndOption(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", &models.AddItemRequest{ProductID: 10, Quantity: 1, SelectedOption: ptr.Ptr("oat")})
	require.NoError(t, err)

	resp, err := svc.AddItem(ctx, "user-1", &models.AddItemRequest{ProductID: 10, Quantity: 2, SelectedOption: ptr.Ptr("oat")})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	// 3 x (3.50 + 0.50)
	assert.Equal(t, 12.00, resp.Total)
}

func TestAddItem_DifferentOptionsStaySeparate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", &models.AddItemRequest{ProductID: 10, Quantity: 1, SelectedOption: ptr.Ptr("oat")})
	require.NoError(t, err)

	resp, err := svc.AddItem(ctx, "user-1", &models.AddItemRequest{ProductID: 10, Quantity: 1})
	require.NoError(t, err)

	assert.Len(t, resp.Items, 2)
}

func TestAddItem_EmptyOptionTreatedAsNone(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", &models.AddItemRequest{ProductID: 11, Quantity: 1, SelectedOption: ptr.Ptr("")})
	require.NoError(t, err)

	resp, err := svc.AddItem(ctx, "user-1", &models.AddItemRequest{ProductID: 11, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Nil(t, resp.Items[0].SelectedOption)
}

func TestAddItem_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "user-1", &models.AddItemRequest{ProductID: 99, Quantity: 1})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("unavailable product", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "user-1", &models.AddItemRequest{ProductID: 12, Quantity: 1})
		assert.ErrorIs(t, err, ErrProductUnavailable)
	})

	t.Run("option not offered for product", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "user-1", &models.AddItemRequest{ProductID: 11, Quantity: 1, SelectedOption: ptr.Ptr("oat")})
		assert.ErrorIs(t, err, ErrInvalidOption)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "user-1", &models.AddItemRequest{ProductID: 10, Quantity: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("quantity over limit", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "user-1", &models.AddItemRequest{ProductID: 10, Quantity: domain.MaxCartQuantity + 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdateItem_SetsQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", &models.AddItemRequest{ProductID: 11, Quantity: 1})
	require.NoError(t, err)

	resp, err := svc.UpdateItem(ctx, "user-1", &models.UpdateItemRequest{ProductID: 11, Quantity: 5})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.Equal(t, 10.00, resp.Total)
}

func TestUpdateItem_ZeroQuantityRemovesLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", &models.AddItemRequest{ProductID: 11, Quantity: 2})
	require.NoError(t, err)

	resp, err := svc.UpdateItem(ctx, "user-1", &models.UpdateItemRequest{ProductID: 11, Quantity: 0})
	require.NoError(t, err)

	assert.Empty(t, resp.Items)
	assert.Equal(t, 0.00, resp.Total)
}

func TestUpdateItem_LineNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.UpdateItem(ctx, "user-1", &models.UpdateItemRequest{ProductID: 11, Quantity: 3})
	assert.ErrorIs(t, err, ErrLineNotFound)

	_, err = svc.UpdateItem(ctx, "user-1", &models.UpdateItemRequest{ProductID: 11, Quantity: 0})
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestClear(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", &models.AddItemRequest{ProductID: 10, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-2", &models.AddItemRequest{ProductID: 11, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "user-1"))

	assert.Len(t, repo.lines, 1)
	assert.Equal(t, "user-2", repo.lines[0].UserID)
}
