package cart

import (
	"context"

	"github.com/perkpoint/storefront-service/internal/domain"
)

// CartRepository интерфейс репозитория корзин
type CartRepository interface {
	Upsert(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.CartLine, error)
	SetQuantity(ctx context.Context, userID string, productID int64, selectedOption *string, quantity int) error
	DeleteLine(ctx context.Context, userID string, productID int64, selectedOption *string) error
	ClearByUser(ctx context.Context, userID string) error
}

// ProductRepository интерфейс репозитория продуктов
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// SettingsProvider источник актуальных настроек витрины
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.Settings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
