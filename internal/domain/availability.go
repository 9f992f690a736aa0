package domain

import (
	"time"

	"github.com/perkpoint/storefront-service/pkg/types"
)

// GenerateSlotTimes generates the day's slot grid with a fixed step. The
// closing time itself is never a slot: the last slot starts one step before
// closing.
func GenerateSlotTimes(openTime, closeTime types.TimeString, granularityMinutes int) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)
	current := openTime

	for current.IsBefore(closeTime) {
		slots = append(slots, current)

		next, err := current.AddMinutes(granularityMinutes)
		if err != nil {
			return nil, err
		}
		current = next
	}

	return slots, nil
}

// BuildSlots assembles the day's slots with an availability flag. Slots
// starting within leadTimeMinutes from now are dropped entirely; slots booked
// to capacity stay in the list as unavailable.
func BuildSlots(
	date time.Time,
	times []types.TimeString,
	now time.Time,
	leadTimeMinutes int,
	atCapacity map[types.TimeString]bool,
) []TimeSlot {
	// A slot is bookable only if it starts STRICTLY after now + leadTime
	cutoff := now.Add(time.Duration(leadTimeMinutes) * time.Minute)

	result := make([]TimeSlot, 0, len(times))
	for _, t := range times {
		instant, err := t.At(date)
		if err != nil {
			continue
		}
		if !instant.After(cutoff) {
			continue
		}
		result = append(result, TimeSlot{
			Time:      t,
			Available: !atCapacity[t],
		})
	}

	return result
}

// IsDateOfferable reports whether the van takes orders on the given date.
// The date must fall on a working weekday, must not be blocked or in the
// past, and must still have at least one slot past the lead-time cutoff.
// The slot condition excludes today once the working window has closed.
func IsDateOfferable(date time.Time, now time.Time, settings *Settings) bool {
	if isDateInPast(date, now) {
		return false
	}
	if !CollectionWeekdays[date.Weekday()] {
		return false
	}
	if settings.IsDateBlocked(date) {
		return false
	}

	times, err := GenerateSlotTimes(OpeningTime, ClosingTime, SlotGranularityMinutes)
	if err != nil {
		return false
	}
	return len(BuildSlots(date, times, now, LeadTimeMinutes, nil)) > 0
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
