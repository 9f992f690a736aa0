package catalog

import (
	"context"

	"github.com/perkpoint/storefront-service/internal/domain"
)

// ProductRepository интерфейс репозитория продуктов
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, category *domain.ProductCategory) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// Cache интерфейс кэша списка продуктов
type Cache interface {
	GetProducts(ctx context.Context, key string) ([]*domain.Product, bool)
	SetProducts(ctx context.Context, key string, products []*domain.Product)
	Invalidate(ctx context.Context)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
