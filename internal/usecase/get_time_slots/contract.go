package get_time_slots

import (
	"context"
	"time"

	"github.com/perkpoint/storefront-service/internal/domain"
	"github.com/perkpoint/storefront-service/pkg/types"
)

// ReservationRepository интерфейс репозитория резерваций слотов
type ReservationRepository interface {
	// TimesAtCapacity возвращает времена даты, занятые до предела maxPerSlot
	TimesAtCapacity(ctx context.Context, date time.Time, maxPerSlot int) ([]types.TimeString, error)
}

// SettingsProvider источник актуальных настроек витрины
type SettingsProvider interface {
	// GetFresh читает настройки напрямую из БД, минуя кэш
	GetFresh(ctx context.Context) (*domain.Settings, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
