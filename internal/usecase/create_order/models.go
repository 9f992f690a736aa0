package create_order

import (
	"time"

	"github.com/perkpoint/storefront-service/internal/domain"
	"github.com/perkpoint/storefront-service/pkg/types"
)

// Request модель запроса на оформление заказа
type Request struct {
	UserID        string           // ID пользователя
	UserEmail     string           // Email для уведомлений
	Date          time.Time        // Дата самовывоза (без времени)
	Time          types.TimeString // Время слота самовывоза
	Notes         *string          // Комментарий к заказу (опционально)
	TermsAccepted bool             // Приняты ли условия обслуживания
}

// Response модель ответа с созданным заказом
type Response struct {
	ID            int64              `json:"id"`
	UserID        string             `json:"user_id"`
	Items         []domain.OrderItem `json:"items"`
	Total         float64            `json:"total"`
	PickupDate    string             `json:"pickup_date"`
	PickupTime    string             `json:"pickup_time"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	Notes         *string            `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}
