package models

import (
	"github.com/perkpoint/storefront-service/internal/domain"
)

// AddItemRequest запрос на добавление позиции в корзину
type AddItemRequest struct {
	ProductID      int64   `json:"product_id"`
	Quantity       int     `json:"quantity"`
	SelectedOption *string `json:"selected_option,omitempty"`
}

// UpdateItemRequest запрос на изменение количества позиции.
// Quantity <= 0 удаляет позицию из корзины.
type UpdateItemRequest struct {
	ProductID      int64   `json:"product_id"`
	Quantity       int     `json:"quantity"`
	SelectedOption *string `json:"selected_option,omitempty"`
}

// CartLineResponse позиция корзины в ответе API
type CartLineResponse struct {
	ID             int64   `json:"id"`
	ProductID      int64   `json:"product_id"`
	ProductName    string  `json:"product_name"`
	UnitPrice      float64 `json:"unit_price"`
	Quantity       int     `json:"quantity"`
	SelectedOption *string `json:"selected_option,omitempty"`
	OptionTitle    string  `json:"option_title,omitempty"`
	OptionPrice    float64 `json:"option_price"`
	LineTotal      float64 `json:"line_total"`
}

// CartResponse корзина пользователя с рассчитанными суммами
type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total float64            `json:"total"`
}

// FromDomainCart конвертирует позиции корзины в ответ API,
// подставляя цены опций из настроек витрины.
func FromDomainCart(lines []*domain.CartLine, settings *domain.Settings) *CartResponse {
	lookup := settings.OptionPrice

	items := make([]CartLineResponse, 0, len(lines))
	for _, line := range lines {
		item := CartLineResponse{
			ID:             line.ID,
			ProductID:      line.ProductID,
			ProductName:    line.ProductName,
			UnitPrice:      line.UnitPrice,
			Quantity:       line.Quantity,
			SelectedOption: line.SelectedOption,
			LineTotal:      domain.LineTotal(line, lookup),
		}
		if line.SelectedOption != nil {
			if opt, ok := settings.FindOption(*line.SelectedOption); ok {
				item.OptionTitle = opt.Title
				item.OptionPrice = opt.Price
			}
		}
		items = append(items, item)
	}

	return &CartResponse{
		Items: items,
		Total: domain.CartTotal(lines, lookup),
	}
}
