package clear_cart

import (
	"context"
	"net/http"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
	"github.com/perkpoint/storefront-service/internal/api/middleware"
)

type CartService interface {
	Clear(ctx context.Context, userID string) error
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

// Handle DELETE /api/v1/cart
// Очистка пустой корзины не является ошибкой.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	if err := h.service.Clear(r.Context(), userID); err != nil {
		h.logger.Error("DELETE /cart - Failed to clear cart: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /cart - Cart cleared: user_id=%s", userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
