package get_collection_dates

import (
	"context"
	"fmt"
	"time"

	"github.com/perkpoint/storefront-service/internal/domain"
)

// UseCase use case для получения ближайших дат самовывоза
type UseCase struct {
	settings     SettingsProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(settings SettingsProvider, logger Logger) *UseCase {
	return &UseCase{
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения дат самовывоза.
// Сканирует до CollectionDaysToScan дней вперёд, начиная с сегодняшнего,
// и возвращает не более MaxCollectionDates рабочих дат.
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()

	settings, err := uc.settings.GetFresh(ctx)
	if err != nil {
		uc.logger.Error("GetCollectionDates: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	dates := make([]domain.CollectionDate, 0, domain.MaxCollectionDates)
	for offset := 0; offset < domain.CollectionDaysToScan && len(dates) < domain.MaxCollectionDates; offset++ {
		candidate := today.AddDate(0, 0, offset)

		// Сегодняшняя дата выпадает из списка, когда в ней не осталось
		// ни одного доступного по времени слота
		if !domain.IsDateOfferable(candidate, now, settings) {
			continue
		}

		dates = append(dates, domain.CollectionDate{
			Date:    candidate,
			IsToday: offset == 0,
		})
	}

	uc.logger.Info("GetCollectionDates: %d dates offered", len(dates))
	return &Response{Dates: dates}, nil
}
