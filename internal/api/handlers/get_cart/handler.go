package get_cart

import (
	"context"
	"net/http"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
	"github.com/perkpoint/storefront-service/internal/api/middleware"
	cartModels "github.com/perkpoint/storefront-service/internal/service/cart/models"
)

type CartService interface {
	Get(ctx context.Context, userID string) (*cartModels.CartResponse, error)
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

// Handle GET /api/v1/cart
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	cart, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /cart - Failed to get cart: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cart)
}
