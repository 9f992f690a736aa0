package create_order

import (
	"errors"
	"net/http"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
	"github.com/perkpoint/storefront-service/internal/api/middleware"
	createOrder "github.com/perkpoint/storefront-service/internal/usecase/create_order"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid pickup date or time, expected YYYY-MM-DD and HH:MM"
	msgSlotFull           = "the selected collection slot is fully booked"
	msgSlotTooSoon        = "the selected collection slot is too soon"
	msgDateNotOfferable   = "collection is not offered on this date"
	msgEmptyCart          = "cart is empty"
	msgTermsNotAccepted   = "terms and conditions must be accepted"
)

type Handler struct {
	useCase CreateOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /orders - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createOrder.ErrSlotFull):
			h.logger.Warn("POST /orders - Slot full: user_id=%s, date=%s, time=%s", userID, req.PickupDate, req.PickupTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, createOrder.ErrSlotTooSoon):
			h.logger.Warn("POST /orders - Slot too soon: user_id=%s, time=%s", userID, req.PickupTime)
			handlers.RespondBadRequest(w, msgSlotTooSoon)

		case errors.Is(err, createOrder.ErrDateNotOfferable):
			h.logger.Warn("POST /orders - Date not offerable: user_id=%s, date=%s", userID, req.PickupDate)
			handlers.RespondBadRequest(w, msgDateNotOfferable)

		case errors.Is(err, createOrder.ErrEmptyCart):
			h.logger.Warn("POST /orders - Empty cart: user_id=%s", userID)
			handlers.RespondBadRequest(w, msgEmptyCart)

		case errors.Is(err, createOrder.ErrTermsNotAccepted):
			h.logger.Warn("POST /orders - Terms not accepted: user_id=%s", userID)
			handlers.RespondBadRequest(w, msgTermsNotAccepted)

		case errors.Is(err, createOrder.ErrInvalidDate),
			errors.Is(err, createOrder.ErrInvalidTime),
			errors.Is(err, createOrder.ErrInvalidInput):
			h.logger.Warn("POST /orders - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /orders - Failed to create order: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Order created: order_id=%d, user_id=%s", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
