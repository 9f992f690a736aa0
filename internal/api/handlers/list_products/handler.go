package list_products

import (
	"context"
	"errors"
	"net/http"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
	catalogService "github.com/perkpoint/storefront-service/internal/service/catalog"
	catalogModels "github.com/perkpoint/storefront-service/internal/service/catalog/models"
)

const msgInvalidCategory = "unknown product category"

type CatalogService interface {
	List(ctx context.Context, category *string) (*catalogModels.ProductListResponse, error)
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

// Handle GET /api/v1/products?category=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var category *string
	if v := r.URL.Query().Get("category"); v != "" {
		category = &v
	}

	result, err := h.service.List(r.Context(), category)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrInvalidInput):
			h.logger.Warn("GET /products - Invalid category: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCategory)

		default:
			h.logger.Error("GET /products - Failed to list products: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "catalog is temporarily unavailable")
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
