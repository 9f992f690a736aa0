package products

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/perkpoint/storefront-service/internal/domain"
)

const keyPrefix = "storefront:products:"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache кэш списков продуктов поверх Redis.
// Актуальность поддерживается инвалидацией при изменении каталога;
// TTL ограничивает возраст данных, отдаваемых при недоступности БД.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewCache создает новый кэш продуктов.
// ttl <= 0 означает хранение без ограничения срока.
func NewCache(client *redis.Client, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetProducts возвращает кэшированный список по ключу
func (c *Cache) GetProducts(ctx context.Context, key string) ([]*domain.Product, bool) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache: GetProducts key=%s: %v", key, err)
		}
		return nil, false
	}

	var products []*domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.logger.Warn("cache: GetProducts unmarshal key=%s: %v", key, err)
		return nil, false
	}
	return products, true
}

// SetProducts сохраняет список продуктов по ключу.
// Ошибки кэша не влияют на основной поток и только логируются.
func (c *Cache) SetProducts(ctx context.Context, key string, products []*domain.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn("cache: SetProducts marshal key=%s: %v", key, err)
		return
	}

	if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache: SetProducts key=%s: %v", key, err)
	}
}

// Invalidate удаляет все кэшированные списки продуктов
func (c *Cache) Invalidate(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	keys := make([]string, 0, 8)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache: Invalidate scan: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache: Invalidate del: %v", err)
	}
}
