package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkpoint/storefront-service/internal/domain"
	settingsStorage "github.com/perkpoint/storefront-service/internal/infra/storage/settings"
	"github.com/perkpoint/storefront-service/internal/service/settings/models"
	"github.com/perkpoint/storefront-service/pkg/ptr"
)

type fakeSettingsRepo struct {
	stored   *domain.Settings
	getCalls int
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*domain.Settings, error) {
	r.getCalls++
	if r.stored == nil {
		return nil, settingsStorage.ErrSettingsNotFound
	}
	copied := *r.stored
	return &copied, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, s *domain.Settings) (*domain.Settings, error) {
	copied := *s
	copied.UpdatedAt = time.Now()
	r.stored = &copied
	return &copied, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestLoad_InitialisesDefaultsWhenMissing(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Load(context.Background()))

	require.NotNil(t, repo.stored)
	assert.Equal(t, domain.DefaultMaxOrdersPerSlot, repo.stored.MaxOrdersPerSlot)
	assert.Empty(t, repo.stored.BlockedDates)
}

func TestGet_ServesFromCache(t *testing.T) {
	repo := &fakeSettingsRepo{stored: domain.DefaultSettings()}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))
	callsAfterLoad := repo.getCalls

	for i := 0; i < 3; i++ {
		_, err := svc.Get(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, callsAfterLoad, repo.getCalls)
}

func TestInvalidate_ForcesReload(t *testing.T) {
	repo := &fakeSettingsRepo{stored: domain.DefaultSettings()}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))
	callsAfterLoad := repo.getCalls

	svc.Invalidate()

	_, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Greater(t, repo.getCalls, callsAfterLoad)
}

func TestGetFresh_AlwaysReadsRepository(t *testing.T) {
	repo := &fakeSettingsRepo{stored: domain.DefaultSettings()}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))

	// Имитируем изменение настроек мимо кэша
	repo.stored.MaxOrdersPerSlot = 7

	fresh, err := svc.GetFresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, fresh.MaxOrdersPerSlot)

	// GetFresh обновляет кэш
	cached, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, cached.MaxOrdersPerSlot)
}

func TestUpdate_PartialUpdate(t *testing.T) {
	repo := &fakeSettingsRepo{stored: domain.DefaultSettings()}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	resp, err := svc.Update(ctx, &models.UpdateSettingsRequest{
		MaxOrdersPerSlot: ptr.Ptr(5),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.MaxOrdersPerSlot)
	assert.Equal(t, 5, repo.stored.MaxOrdersPerSlot)
	assert.Empty(t, resp.BlockedDates)
}

func TestUpdate_BlockedDates(t *testing.T) {
	repo := &fakeSettingsRepo{stored: domain.DefaultSettings()}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	t.Run("deduplicates", func(t *testing.T) {
		resp, err := svc.Update(ctx, &models.UpdateSettingsRequest{
			BlockedDates: &[]string{"2026-09-05", "2026-09-05", "2026-09-06"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-09-05", "2026-09-06"}, resp.BlockedDates)
	})

	t.Run("rejects bad format", func(t *testing.T) {
		_, err := svc.Update(ctx, &models.UpdateSettingsRequest{
			BlockedDates: &[]string{"05/09/2026"},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdate_MaxOrdersPerSlotRange(t *testing.T) {
	repo := &fakeSettingsRepo{stored: domain.DefaultSettings()}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	_, err := svc.Update(ctx, &models.UpdateSettingsRequest{MaxOrdersPerSlot: ptr.Ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(ctx, &models.UpdateSettingsRequest{MaxOrdersPerSlot: ptr.Ptr(domain.MaxMaxOrdersPerSlot + 1)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_ProductOptions(t *testing.T) {
	repo := &fakeSettingsRepo{stored: domain.DefaultSettings()}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	t.Run("assigns ids to new options", func(t *testing.T) {
		resp, err := svc.Update(ctx, &models.UpdateSettingsRequest{
			ProductOptions: &[]models.ProductOptionUpdateEntry{
				{Title: "Oat milk", Price: 0.50},
				{ID: "soy", Title: "Soy milk", Price: 0.40, IsDefault: true},
			},
		})
		require.NoError(t, err)

		require.Len(t, resp.ProductOptions, 2)
		assert.NotEmpty(t, resp.ProductOptions[0].ID)
		assert.Equal(t, "soy", resp.ProductOptions[1].ID)
		assert.True(t, resp.ProductOptions[1].IsDefault)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := svc.Update(ctx, &models.UpdateSettingsRequest{
			ProductOptions: &[]models.ProductOptionUpdateEntry{{Title: "", Price: 0.50}},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := svc.Update(ctx, &models.UpdateSettingsRequest{
			ProductOptions: &[]models.ProductOptionUpdateEntry{{Title: "Oat", Price: -1}},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects two defaults", func(t *testing.T) {
		_, err := svc.Update(ctx, &models.UpdateSettingsRequest{
			ProductOptions: &[]models.ProductOptionUpdateEntry{
				{Title: "Oat", Price: 0.50, IsDefault: true},
				{Title: "Soy", Price: 0.40, IsDefault: true},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
