package orders

import (
	"context"

	"github.com/perkpoint/storefront-service/internal/domain"
	"github.com/perkpoint/storefront-service/internal/integrations/stripepay"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Order, error)
	ListWithFilter(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	SetPaymentIntent(ctx context.Context, id int64, intentID string) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus, paymentError *string) error
}

// ReservationRepository интерфейс репозитория резервов слотов
type ReservationRepository interface {
	DeleteByOrderID(ctx context.Context, orderID int64) error
}

// PaymentClient интерфейс платежного провайдера
type PaymentClient interface {
	CreateIntent(amountMinorUnits int64, idempotencyKey string, metadata map[string]string) (*stripepay.PaymentIntent, error)
	GetIntent(intentID string) (*stripepay.PaymentIntent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
