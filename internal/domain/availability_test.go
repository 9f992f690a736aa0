package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkpoint/storefront-service/pkg/types"
)

func TestGenerateSlotTimes_FullDay(t *testing.T) {
	times, err := GenerateSlotTimes(OpeningTime, ClosingTime, SlotGranularityMinutes)
	require.NoError(t, err)

	// 10:45 .. 15:15 с шагом 15 минут
	require.Len(t, times, 19)
	assert.Equal(t, types.TimeString("10:45"), times[0])
	assert.Equal(t, types.TimeString("15:15"), times[len(times)-1])

	// Время закрытия никогда не является слотом
	for _, tm := range times {
		assert.NotEqual(t, ClosingTime, tm)
	}
}

func TestBuildSlots_LeadTimeFilter(t *testing.T) {
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC) // четверг
	times := []types.TimeString{"10:45", "11:00", "11:15"}

	// now 10:35, cutoff 10:50: слот 10:45 отбрасывается
	now := time.Date(2026, 9, 3, 10, 35, 0, 0, time.UTC)
	slots := BuildSlots(date, times, now, LeadTimeMinutes, nil)

	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("11:00"), slots[0].Time)
	assert.Equal(t, types.TimeString("11:15"), slots[1].Time)
}

func TestBuildSlots_LeadTimeBoundaryIsExcluded(t *testing.T) {
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	times := []types.TimeString{"10:45"}

	// Слот ровно через 15 минут не проходит: требуется СТРОГО позже
	now := time.Date(2026, 9, 3, 10, 30, 0, 0, time.UTC)
	slots := BuildSlots(date, times, now, LeadTimeMinutes, nil)
	assert.Empty(t, slots)

	// Секундой раньше слот проходит
	now = time.Date(2026, 9, 3, 10, 29, 59, 0, time.UTC)
	slots = BuildSlots(date, times, now, LeadTimeMinutes, nil)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Available)
}

func TestBuildSlots_FutureDateKeepsAllSlots(t *testing.T) {
	date := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC) // пятница
	times := []types.TimeString{"10:45", "15:15"}

	now := time.Date(2026, 9, 3, 23, 0, 0, 0, time.UTC)
	slots := BuildSlots(date, times, now, LeadTimeMinutes, nil)
	require.Len(t, slots, 2)
}

func TestBuildSlots_FullSlotsMarkedUnavailable(t *testing.T) {
	date := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	times := []types.TimeString{"10:45", "11:00", "11:15"}
	atCapacity := map[types.TimeString]bool{"11:00": true}

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	slots := BuildSlots(date, times, now, LeadTimeMinutes, atCapacity)

	require.Len(t, slots, 3)
	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[2].Available)
}

func TestBuildSlots_LeadPastClosingGivesEmpty(t *testing.T) {
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	times, err := GenerateSlotTimes(OpeningTime, ClosingTime, SlotGranularityMinutes)
	require.NoError(t, err)

	// После 15:15 бронировать уже нечего
	now := time.Date(2026, 9, 3, 15, 10, 0, 0, time.UTC)
	slots := BuildSlots(date, times, now, LeadTimeMinutes, nil)
	assert.Empty(t, slots)
}

func TestIsDateOfferable(t *testing.T) {
	settings := DefaultSettings()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) // вторник

	thursday := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	past := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsDateOfferable(thursday, now, settings))
	assert.False(t, IsDateOfferable(monday, now, settings))
	assert.False(t, IsDateOfferable(past, now, settings))

	settings.BlockedDates = []string{"2026-09-03"}
	assert.False(t, IsDateOfferable(thursday, now, settings))
}

func TestIsDateOfferable_TodayDependsOnRemainingSlots(t *testing.T) {
	settings := DefaultSettings()
	saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	// Утром суббота предлагается: впереди весь рабочий день
	morning := time.Date(2026, 9, 5, 8, 0, 0, 0, time.UTC)
	assert.True(t, IsDateOfferable(saturday, morning, settings))

	// После закрытия не остаётся ни одного слота, дата не предлагается
	evening := time.Date(2026, 9, 5, 20, 0, 0, 0, time.UTC)
	assert.False(t, IsDateOfferable(saturday, evening, settings))

	// Последний слот 15:15: после 15:00 его уже не забронировать
	lateAfternoon := time.Date(2026, 9, 5, 15, 1, 0, 0, time.UTC)
	assert.False(t, IsDateOfferable(saturday, lateAfternoon, settings))
}
