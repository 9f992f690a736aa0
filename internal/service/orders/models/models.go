package models

import (
	"time"

	"github.com/perkpoint/storefront-service/internal/domain"
)

// OrderItemResponse позиция заказа в ответе API
type OrderItemResponse struct {
	ProductName    string  `json:"product_name"`
	UnitPrice      float64 `json:"unit_price"`
	Quantity       int     `json:"quantity"`
	SelectedOption *string `json:"selected_option,omitempty"`
	OptionTitle    *string `json:"option_title,omitempty"`
	OptionPrice    float64 `json:"option_price"`
	LineTotal      float64 `json:"line_total"`
}

// OrderResponse заказ в ответе API
type OrderResponse struct {
	ID            int64               `json:"id"`
	UserID        string              `json:"user_id"`
	UserEmail     string              `json:"user_email,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	Total         float64             `json:"total"`
	PickupDate    string              `json:"pickup_date"`
	PickupTime    string              `json:"pickup_time"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	PaymentError  *string             `json:"payment_error,omitempty"`
	Notes         *string             `json:"notes,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// OrderListResponse список заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// ListOrdersRequest параметры фильтрации списка заказов
type ListOrdersRequest struct {
	Date            *string
	Status          *string
	PaymentStatus   *string
	IncludeInactive bool
}

// UpdateStatusRequest запрос на смену статуса заказа
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// PaymentIntentResponse результат создания платежного намерения
type PaymentIntentResponse struct {
	OrderID      int64  `json:"order_id"`
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// FromDomainOrder конвертирует доменную модель в ответ API
func FromDomainOrder(o *domain.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductName:    item.ProductName,
			UnitPrice:      item.UnitPrice,
			Quantity:       item.Quantity,
			SelectedOption: item.SelectedOption,
			OptionTitle:    item.OptionTitle,
			OptionPrice:    item.OptionPrice,
			LineTotal:      item.LineTotal,
		})
	}

	return &OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		UserEmail:     o.UserEmail,
		Items:         items,
		Total:         o.Total,
		PickupDate:    o.PickupDate.Format(domain.DateFormat),
		PickupTime:    o.PickupTime.String(),
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		PaymentError:  o.PaymentError,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// FromDomainOrderList конвертирует список доменных моделей в ответ API
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	items := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *FromDomainOrder(o))
	}
	return &OrderListResponse{Orders: items, Total: len(items)}
}
