package create_order

import (
	"fmt"
	"time"

	"github.com/perkpoint/storefront-service/internal/domain"
	createOrder "github.com/perkpoint/storefront-service/internal/usecase/create_order"
	"github.com/perkpoint/storefront-service/pkg/types"
)

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	UserEmail     string  `json:"user_email"`
	PickupDate    string  `json:"pickup_date"` // "2026-08-28"
	PickupTime    string  `json:"pickup_time"` // "10:45"
	Notes         *string `json:"notes,omitempty"`
	TermsAccepted bool    `json:"terms_accepted"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateOrderRequest) ToUseCaseRequest(userID string) (*createOrder.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.PickupDate)
	if err != nil {
		return nil, fmt.Errorf("parse pickup date: %w", err)
	}

	slotTime, err := types.NewTimeStringFromString(r.PickupTime)
	if err != nil {
		return nil, fmt.Errorf("parse pickup time: %w", err)
	}

	return &createOrder.Request{
		UserID:        userID,
		UserEmail:     r.UserEmail,
		Date:          date,
		Time:          slotTime,
		Notes:         r.Notes,
		TermsAccepted: r.TermsAccepted,
	}, nil
}
