package create_product

import (
	"context"
	"errors"
	"net/http"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
	catalogService "github.com/perkpoint/storefront-service/internal/service/catalog"
	catalogModels "github.com/perkpoint/storefront-service/internal/service/catalog/models"
)

const msgInvalidRequestBody = "invalid request body"

type CatalogService interface {
	Create(ctx context.Context, req *catalogModels.CreateProductRequest) (*catalogModels.ProductResponse, error)
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

// Handle POST /api/v1/admin/products
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req catalogModels.CreateProductRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/products - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrInvalidInput):
			h.logger.Warn("POST /admin/products - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /admin/products - Failed to create product: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/products - Product created: product_id=%d", product.ID)
	handlers.RespondJSON(w, http.StatusCreated, product)
}
