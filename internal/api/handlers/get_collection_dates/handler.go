package get_collection_dates

import (
	"net/http"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
	"github.com/perkpoint/storefront-service/internal/domain"
	getCollectionDates "github.com/perkpoint/storefront-service/internal/usecase/get_collection_dates"
)

type Handler struct {
	useCase GetCollectionDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetCollectionDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/collection-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("GET /collection-dates - Failed to get dates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := FromUseCaseResponse(result)
	h.logger.Info("GET /collection-dates - %d dates returned", len(response.Dates))
	handlers.RespondJSON(w, http.StatusOK, response)
}

// CollectionDatesResponse HTTP response model
type CollectionDatesResponse struct {
	Dates []CollectionDate `json:"dates"`
}

// CollectionDate дата самовывоза в ответе API
type CollectionDate struct {
	Date    string `json:"date"` // "2026-08-28"
	IsToday bool   `json:"is_today"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(result *getCollectionDates.Response) *CollectionDatesResponse {
	dates := make([]CollectionDate, 0, len(result.Dates))
	for _, d := range result.Dates {
		dates = append(dates, CollectionDate{
			Date:    d.Date.Format(domain.DateFormat),
			IsToday: d.IsToday,
		})
	}
	return &CollectionDatesResponse{Dates: dates}
}
