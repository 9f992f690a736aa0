package models

import (
	"time"

	"github.com/perkpoint/storefront-service/internal/domain"
)

// ProductOptionResponse опция продукта в ответе API
type ProductOptionResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	IsDefault bool    `json:"is_default"`
}

// SettingsResponse настройки витрины в ответе API
type SettingsResponse struct {
	MaxOrdersPerSlot int                     `json:"max_orders_per_slot"`
	BlockedDates     []string                `json:"blocked_dates"`
	ProductOptions   []ProductOptionResponse `json:"product_options"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// UpdateSettingsRequest запрос на обновление настроек.
// Nil-поля не изменяются.
type UpdateSettingsRequest struct {
	MaxOrdersPerSlot *int                        `json:"max_orders_per_slot,omitempty"`
	BlockedDates     *[]string                   `json:"blocked_dates,omitempty"`
	ProductOptions   *[]ProductOptionUpdateEntry `json:"product_options,omitempty"`
}

// ProductOptionUpdateEntry опция продукта в запросе на обновление.
// Пустой ID означает создание новой опции.
type ProductOptionUpdateEntry struct {
	ID        string  `json:"id,omitempty"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	IsDefault bool    `json:"is_default"`
}

// FromDomainSettings конвертирует доменную модель в ответ API
func FromDomainSettings(s *domain.Settings) *SettingsResponse {
	options := make([]ProductOptionResponse, 0, len(s.ProductOptions))
	for _, opt := range s.ProductOptions {
		options = append(options, ProductOptionResponse{
			ID:        opt.ID,
			Title:     opt.Title,
			Price:     opt.Price,
			IsDefault: opt.IsDefault,
		})
	}

	blocked := s.BlockedDates
	if blocked == nil {
		blocked = []string{}
	}

	return &SettingsResponse{
		MaxOrdersPerSlot: s.MaxOrdersPerSlot,
		BlockedDates:     blocked,
		ProductOptions:   options,
		UpdatedAt:        s.UpdatedAt,
	}
}
