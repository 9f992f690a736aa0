package models

import (
	"time"

	"github.com/perkpoint/storefront-service/internal/domain"
)

// ProductResponse продукт в ответе API
type ProductResponse struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Category         string   `json:"category"`
	Price            float64  `json:"price"`
	ImageURL         string   `json:"image_url,omitempty"`
	IsAvailable      bool     `json:"is_available"`
	AvailableOptions []string `json:"available_options,omitempty"`
	DefaultOption    *string  `json:"default_option,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProductListResponse список продуктов
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Degraded bool              `json:"degraded,omitempty"`
}

// CreateProductRequest запрос на создание продукта
type CreateProductRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Category         string   `json:"category"`
	Price            float64  `json:"price"`
	ImageURL         string   `json:"image_url,omitempty"`
	IsAvailable      *bool    `json:"is_available,omitempty"`
	AvailableOptions []string `json:"available_options,omitempty"`
	DefaultOption    *string  `json:"default_option,omitempty"`
}

// UpdateProductRequest запрос на обновление продукта.
// Nil-поля не изменяются.
type UpdateProductRequest struct {
	Name             *string   `json:"name,omitempty"`
	Description      *string   `json:"description,omitempty"`
	Category         *string   `json:"category,omitempty"`
	Price            *float64  `json:"price,omitempty"`
	ImageURL         *string   `json:"image_url,omitempty"`
	IsAvailable      *bool     `json:"is_available,omitempty"`
	AvailableOptions *[]string `json:"available_options,omitempty"`
	DefaultOption    *string   `json:"default_option,omitempty"`
}

// FromDomainProduct конвертирует доменную модель в ответ API
func FromDomainProduct(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Category:         string(p.Category),
		Price:            p.Price,
		ImageURL:         p.ImageURL,
		IsAvailable:      p.IsAvailable,
		AvailableOptions: p.AvailableOptions,
		DefaultOption:    p.DefaultOption,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// FromDomainProductList конвертирует список доменных моделей в ответ API
func FromDomainProductList(products []*domain.Product, degraded bool) *ProductListResponse {
	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *FromDomainProduct(p))
	}
	return &ProductListResponse{Products: items, Degraded: degraded}
}
