package list_orders

import (
	"context"
	"errors"
	"net/http"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
	ordersService "github.com/perkpoint/storefront-service/internal/service/orders"
	ordersModels "github.com/perkpoint/storefront-service/internal/service/orders/models"
)

const msgInvalidFilter = "invalid filter parameters"

type OrdersService interface {
	List(ctx context.Context, req *ordersModels.ListOrdersRequest) (*ordersModels.OrderListResponse, error)
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

// Handle GET /api/v1/admin/orders?date=&status=&payment_status=&include_inactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &ordersModels.ListOrdersRequest{
		IncludeInactive: query.Get("include_inactive") == "true",
	}
	if v := query.Get("date"); v != "" {
		req.Date = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}
	if v := query.Get("payment_status"); v != "" {
		req.PaymentStatus = &v
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ordersService.ErrInvalidInput), errors.Is(err, ordersService.ErrInvalidStatus):
			h.logger.Warn("GET /admin/orders - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/orders - Failed to list orders: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/orders - %d orders returned", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
