package get_collection_dates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkpoint/storefront-service/internal/domain"
)

type stubSettingsProvider struct {
	settings *domain.Settings
}

func (s *stubSettingsProvider) GetFresh(_ context.Context) (*domain.Settings, error) {
	return s.settings, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(settings *domain.Settings, now time.Time) *UseCase {
	uc := NewUseCase(&stubSettingsProvider{settings: settings}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_ReturnsOnlyWorkingWeekdays(t *testing.T) {
	// Вторник: первая рабочая дата будет в четверг
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(domain.DefaultSettings(), now)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Dates, domain.MaxCollectionDates)
	for _, d := range resp.Dates {
		assert.True(t, domain.CollectionWeekdays[d.Date.Weekday()],
			"unexpected weekday %s", d.Date.Weekday())
		assert.False(t, d.IsToday)
	}
	assert.Equal(t, time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC), resp.Dates[0].Date)
}

func TestExecute_MarksTodayWhenWorkingDay(t *testing.T) {
	// Суббота: сегодняшняя дата входит в список первой
	now := time.Date(2026, 9, 5, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(domain.DefaultSettings(), now)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, resp.Dates)
	assert.Equal(t, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), resp.Dates[0].Date)
	assert.True(t, resp.Dates[0].IsToday)
	for _, d := range resp.Dates[1:] {
		assert.False(t, d.IsToday)
	}
}

func TestExecute_SkipsTodayAfterClosing(t *testing.T) {
	// Суббота 20:00: все слоты дня уже в прошлом, сегодня не предлагается
	now := time.Date(2026, 9, 5, 20, 0, 0, 0, time.UTC)
	uc := newTestUseCase(domain.DefaultSettings(), now)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, resp.Dates)
	assert.Equal(t, time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC), resp.Dates[0].Date)
	for _, d := range resp.Dates {
		assert.False(t, d.IsToday)
	}
}

func TestExecute_SkipsBlockedDates(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.BlockedDates = []string{"2026-09-03", "2026-09-04"}

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(settings, now)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, resp.Dates)
	assert.Equal(t, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), resp.Dates[0].Date)
	for _, d := range resp.Dates {
		assert.False(t, settings.IsDateBlocked(d.Date))
	}
}

func TestExecute_StableForFixedClock(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(domain.DefaultSettings(), now)

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	second, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Dates, second.Dates)
}
