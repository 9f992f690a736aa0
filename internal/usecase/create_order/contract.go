package create_order

import (
	"context"
	"time"

	"github.com/perkpoint/storefront-service/internal/domain"
	"github.com/perkpoint/storefront-service/pkg/types"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// ReservationRepository интерфейс репозитория резерваций слотов
type ReservationRepository interface {
	// GetForSlot возвращает резервации слота; в транзакции блокирует строки
	GetForSlot(ctx context.Context, date time.Time, startTime types.TimeString) ([]*domain.SlotReservation, error)
	Create(ctx context.Context, res *domain.SlotReservation) (*domain.SlotReservation, error)
}

// CartRepository интерфейс репозитория корзин
type CartRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.CartLine, error)
	ClearByUser(ctx context.Context, userID string) error
}

// SettingsProvider источник актуальных настроек витрины
type SettingsProvider interface {
	// GetFresh читает настройки напрямую из БД, минуя кэш
	GetFresh(ctx context.Context) (*domain.Settings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
