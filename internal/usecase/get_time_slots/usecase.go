package get_time_slots

import (
	"context"
	"fmt"

	"github.com/perkpoint/storefront-service/internal/domain"
	"github.com/perkpoint/storefront-service/pkg/types"
)

// UseCase use case для получения слотов самовывоза на дату
type UseCase struct {
	reservationRepo ReservationRepository
	settings        SettingsProvider
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	settings SettingsProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов.
// Список пересчитывается на каждый запрос и нигде не хранится.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetTimeSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetTimeSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 2. Получаем текущее время и настройки
	now := uc.timeProvider.Now()

	settings, err := uc.settings.GetFresh(ctx)
	if err != nil {
		uc.logger.Error("GetTimeSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Проверяем, что дата вообще предлагается для самовывоза
	if !domain.IsDateOfferable(req.Date, now, settings) {
		uc.logger.Warn("GetTimeSlots: date %s is not offerable", req.Date.Format(domain.DateFormat))
		return nil, ErrDateNotOfferable
	}

	// 4. Генерируем все слоты дня
	times, err := domain.GenerateSlotTimes(domain.OpeningTime, domain.ClosingTime, domain.SlotGranularityMinutes)
	if err != nil {
		uc.logger.Error("GetTimeSlots: failed to generate slot times: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slot times: %v", ErrInternal, err)
	}

	// 5. Получаем времена, занятые до предела вместимости
	fullTimes, err := uc.reservationRepo.TimesAtCapacity(ctx, req.Date, settings.MaxOrdersPerSlot)
	if err != nil {
		uc.logger.Error("GetTimeSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	atCapacity := make(map[types.TimeString]bool, len(fullTimes))
	for _, t := range fullTimes {
		atCapacity[t] = true
	}

	// 6. Собираем слоты с учётом времени и занятости
	slots := domain.BuildSlots(req.Date, times, now, domain.LeadTimeMinutes, atCapacity)

	uc.logger.Info("GetTimeSlots: date=%s, slots=%d, full=%d",
		req.Date.Format(domain.DateFormat), len(slots), len(fullTimes))

	return &Response{
		Date:  req.Date,
		Slots: slots,
	}, nil
}
