package delete_product

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
	catalogService "github.com/perkpoint/storefront-service/internal/service/catalog"
)

const (
	msgInvalidProductID = "invalid product id"
	msgProductNotFound  = "product not found"
)

type CatalogService interface {
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/products/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/products/{id} - Invalid product id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	if err := h.service.Delete(r.Context(), productID); err != nil {
		switch {
		case errors.Is(err, catalogService.ErrProductNotFound):
			h.logger.Warn("DELETE /admin/products/{id} - Product not found: product_id=%d", productID)
			handlers.RespondNotFound(w, msgProductNotFound)

		default:
			h.logger.Error("DELETE /admin/products/{id} - Failed to delete product: product_id=%d, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/products/{id} - Product deleted: product_id=%d", productID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
