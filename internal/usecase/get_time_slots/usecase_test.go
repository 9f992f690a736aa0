package get_time_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkpoint/storefront-service/internal/domain"
	"github.com/perkpoint/storefront-service/pkg/types"
)

type stubReservationRepo struct {
	fullTimes []types.TimeString
}

func (s *stubReservationRepo) TimesAtCapacity(_ context.Context, _ time.Time, _ int) ([]types.TimeString, error) {
	return s.fullTimes, nil
}

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

func TestExecute_ReturnsSlotsWithAvailability(t *testing.T) {
	uc := NewUseCase(
		&stubReservationRepo{fullTimes: []types.TimeString{"12:00"}},
		&stubSettingsProvider{settings: domain.DefaultSettings()},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)}

	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC) // суббота
	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 19)
	for _, slot := range resp.Slots {
		if slot.Time == "12:00" {
			assert.False(t, slot.Available)
		} else {
			assert.True(t, slot.Available)
		}
	}
}

func TestExecute_RejectsNonWorkingDay(t *testing.T) {
	uc := NewUseCase(
		&stubReservationRepo{},
		&stubSettingsProvider{settings: domain.DefaultSettings()},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)}

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{Date: monday})
	assert.ErrorIs(t, err, ErrDateNotOfferable)
}

func TestExecute_RejectsTodayAfterClosing(t *testing.T) {
	uc := NewUseCase(
		&stubReservationRepo{},
		&stubSettingsProvider{settings: domain.DefaultSettings()},
		nopLogger{},
	)
	// Суббота 20:00: все слоты дня уже недостижимы
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 5, 20, 0, 0, 0, time.UTC)}

	saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{Date: saturday})
	assert.ErrorIs(t, err, ErrDateNotOfferable)
}

func TestExecute_RejectsBlockedDate(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.BlockedDates = []string{"2026-09-05"}

	uc := NewUseCase(
		&stubReservationRepo{},
		&stubSettingsProvider{settings: settings},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)}

	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{Date: date})
	assert.ErrorIs(t, err, ErrDateNotOfferable)
}
