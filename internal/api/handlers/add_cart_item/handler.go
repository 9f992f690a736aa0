package add_cart_item

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
	msgProductNotFound    = "product not found"
	msgProductUnavailable = "product is not available"
	msgInvalidOption      = "option is not available for this product"
)

type CartService interface {
	AddItem(ctx context.Context, userID string, req *cartModels.AddItemRequest) (*cartModels.CartResponse, error)
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

// Handle POST /api/v1/cart/items
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req cartModels.AddItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cart/items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cart, err := h.service.AddItem(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, cartService.ErrProductNotFound):
			h.logger.Warn("POST /cart/items - Product not found: product_id=%d", req.ProductID)
			handlers.RespondNotFound(w, msgProductNotFound)

		case errors.Is(err, cartService.ErrProductUnavailable):
			h.logger.Warn("POST /cart/items - Product unavailable: product_id=%d", req.ProductID)
			handlers.RespondBadRequest(w, msgProductUnavailable)

		case errors.Is(err, cartService.ErrInvalidOption):
			h.logger.Warn("POST /cart/items - Invalid option: product_id=%d", req.ProductID)
			handlers.RespondBadRequest(w, msgInvalidOption)

		case errors.Is(err, cartService.ErrInvalidInput):
			h.logger.Warn("POST /cart/items - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /cart/items - Failed to add item: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cart/items - Item added: user_id=%s, product_id=%d", userID, req.ProductID)
	handlers.RespondJSON(w, http.StatusOK, cart)
}
