package update_product

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
	catalogService "github.com/perkpoint/storefront-service/internal/service/catalog"
	catalogModels "github.com/perkpoint/storefront-service/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidProductID   = "invalid product id"
	msgProductNotFound    = "product not found"
)

type CatalogService interface {
	Update(ctx context.Context, id int64, req *catalogModels.UpdateProductRequest) (*catalogModels.ProductResponse, error)
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

// Handle PATCH /api/v1/admin/products/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/products/{id} - Invalid product id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	var req catalogModels.UpdateProductRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/products/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	product, err := h.service.Update(r.Context(), productID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrProductNotFound):
			h.logger.Warn("PATCH /admin/products/{id} - Product not found: product_id=%d", productID)
			handlers.RespondNotFound(w, msgProductNotFound)

		case errors.Is(err, catalogService.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/products/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /admin/products/{id} - Failed to update product: product_id=%d, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/products/{id} - Product updated: product_id=%d", productID)
	handlers.RespondJSON(w, http.StatusOK, product)
}
