package update_cart_item

import (
	"context"
	"errors"
	"net/http"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
	"github.com/perkpoint/storefront-service/internal/api/middleware"
	cartService "github.com/perkpoint/storefront-service/internal/service/cart"
	cartModels "github.com/perkpoint/storefront-service/internal/service/cart/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgLineNotFound       = "cart item not found"
)

type CartService interface {
	UpdateItem(ctx context.Context, userID string, req *cartModels.UpdateItemRequest) (*cartModels.CartResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service CartService
	logger  Logger
}

func NewHandler(service CartService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/cart/items
// Количество <= 0 удаляет позицию из корзины.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req cartModels.UpdateItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /cart/items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cart, err := h.service.UpdateItem(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, cartService.ErrLineNotFound):
			h.logger.Warn("PATCH /cart/items - Line not found: user_id=%s, product_id=%d", userID, req.ProductID)
			handlers.RespondNotFound(w, msgLineNotFound)

		case errors.Is(err, cartService.ErrInvalidInput):
			h.logger.Warn("PATCH /cart/items - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /cart/items - Failed to update item: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /cart/items - Item updated: user_id=%s, product_id=%d, qty=%d", userID, req.ProductID, req.Quantity)
	handlers.RespondJSON(w, http.StatusOK, cart)
}
