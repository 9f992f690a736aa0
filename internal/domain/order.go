package domain

import (
	"time"

	"github.com/perkpoint/storefront-service/pkg/types"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// OrderItem is the denormalized snapshot of one cart line, frozen at checkout.
type OrderItem struct {
	ProductName    string  `json:"productName"`
	UnitPrice      float64 `json:"unitPrice"`
	Quantity       int     `json:"quantity"`
	SelectedOption *string `json:"selectedOption,omitempty"`
	OptionTitle    *string `json:"optionTitle,omitempty"`
	OptionPrice    float64 `json:"optionPrice"`
	LineTotal      float64 `json:"lineTotal"`
}

// Order represents a placed order with its collection slot.
type Order struct {
	ID              int64
	UserID          string
	UserEmail       string
	Items           []OrderItem
	Total           float64
	PickupDate      time.Time
	PickupTime      types.TimeString
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	PaymentIntentID *string
	PaymentError    *string
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true while the order still holds its collection slot.
func (o *Order) IsActive() bool {
	return o.Status != OrderStatusCancelled
}

// CanTransitionTo reports whether the status change is allowed.
// Cancelled and completed are terminal.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	if o.Status == OrderStatusCancelled || o.Status == OrderStatusCompleted {
		return false
	}
	switch next {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return next != o.Status
	default:
		return false
	}
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// OrdersFilter фильтр для выборки заказов (админ-панель)
type OrdersFilter struct {
	Date            *time.Time     // Заказы на конкретную дату получения
	Status          *OrderStatus   // Фильтр по статусу (опционально)
	PaymentStatus   *PaymentStatus // Фильтр по статусу оплаты (опционально)
	IncludeInactive bool           // Включать ли отменённые заказы
}
