package update_order_status

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
	ordersService "github.com/perkpoint/storefront-service/internal/service/orders"
	ordersModels "github.com/perkpoint/storefront-service/internal/service/orders/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidOrderID     = "invalid order id"
	msgOrderNotFound      = "order not found"
	msgInvalidStatus      = "unknown order status"
	msgInvalidTransition  = "status transition is not allowed"
)

type OrdersService interface {
	UpdateStatus(ctx context.Context, id int64, req *ordersModels.UpdateStatusRequest) (*ordersModels.OrderResponse, error)
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

// Handle PATCH /api/v1/admin/orders/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/orders/{id}/status - Invalid order id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req ordersModels.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/orders/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ordersService.ErrOrderNotFound):
			h.logger.Warn("PATCH /admin/orders/{id}/status - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, ordersService.ErrInvalidStatus):
			h.logger.Warn("PATCH /admin/orders/{id}/status - Invalid status %q: order_id=%d", req.Status, orderID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, ordersService.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/orders/{id}/status - Invalid transition: order_id=%d, error=%v", orderID, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /admin/orders/{id}/status - Failed to update: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/orders/{id}/status - Order updated: order_id=%d, status=%s", orderID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, order)
}
