package create_payment_intent

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
	"github.com/perkpoint/storefront-service/internal/api/middleware"
	ordersService "github.com/perkpoint/storefront-service/internal/service/orders"
	ordersModels "github.com/perkpoint/storefront-service/internal/service/orders/models"
)

const (
	msgInvalidOrderID = "invalid order id"
	msgOrderNotFound  = "order not found"
	msgAccessDenied   = "access denied"
	msgAlreadyPaid    = "order is already paid"
	msgPaymentFailed  = "payment provider is unavailable"
)

type OrdersService interface {
	CreatePaymentIntent(ctx context.Context, orderID int64, userID string) (*ordersModels.PaymentIntentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service OrdersService
	logger  Logger
}

func NewHandler(service OrdersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders/{id}/payment-intent
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /orders/{id}/payment-intent - Invalid order id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	intent, err := h.service.CreatePaymentIntent(r.Context(), orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ordersService.ErrOrderNotFound):
			h.logger.Warn("POST /orders/{id}/payment-intent - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, ordersService.ErrAccessDenied):
			h.logger.Warn("POST /orders/{id}/payment-intent - Access denied: order_id=%d, user_id=%s", orderID, userID)
			handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)

		case errors.Is(err, ordersService.ErrAlreadyPaid):
			h.logger.Warn("POST /orders/{id}/payment-intent - Already paid: order_id=%d", orderID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyPaid)

		case errors.Is(err, ordersService.ErrPaymentFailed):
			h.logger.Error("POST /orders/{id}/payment-intent - Provider error: order_id=%d, error=%v", orderID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentFailed)

		default:
			h.logger.Error("POST /orders/{id}/payment-intent - Failed: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders/{id}/payment-intent - Intent created: order_id=%d, intent_id=%s", orderID, intent.IntentID)
	handlers.RespondJSON(w, http.StatusCreated, intent)
}
