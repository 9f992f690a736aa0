package create_order

import (
	"fmt"
	"time"

	"github.com/perkpoint/storefront-service/internal/domain"
	"github.com/perkpoint/storefront-service/pkg/types"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if !req.TermsAccepted {
		return ErrTermsNotAccepted
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: pickup date is required", ErrInvalidDate)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// validateDate проверяет, что в указанную дату фургон принимает заказы
func validateDate(date time.Time, now time.Time, settings *domain.Settings) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}
	if !domain.CollectionWeekdays[date.Weekday()] {
		return ErrDateNotOfferable
	}
	if settings.IsDateBlocked(date) {
		return ErrDateNotOfferable
	}
	return nil
}

// validateSlotTime проверяет, что время лежит в сетке слотов рабочего дня
// и до него остался минимальный запас времени.
func validateSlotTime(date time.Time, slotTime types.TimeString, now time.Time) error {
	openTime := types.TimeString(domain.OpeningTime)
	closeTime := types.TimeString(domain.ClosingTime)

	// Время закрытия не является слотом
	if slotTime.IsBefore(openTime) || !slotTime.IsBefore(closeTime) {
		return fmt.Errorf("%w: time %s is outside working hours", ErrInvalidTime, slotTime)
	}

	// Время должно попадать в сетку с шагом SlotGranularityMinutes
	slotMinutes, err := slotTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	openMinutes, err := openTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	if (slotMinutes-openMinutes)%domain.SlotGranularityMinutes != 0 {
		return fmt.Errorf("%w: time %s is not on the slot grid", ErrInvalidTime, slotTime)
	}

	// Слот бронируем, только если его начало СТРОГО позже now + LeadTimeMinutes
	instant, err := slotTime.At(date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	cutoff := now.Add(time.Duration(domain.LeadTimeMinutes) * time.Minute)
	if !instant.After(cutoff) {
		return ErrSlotTooSoon
	}

	return nil
}
