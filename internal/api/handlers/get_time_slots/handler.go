package get_time_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
	"github.com/perkpoint/storefront-service/internal/domain"
	getTimeSlots "github.com/perkpoint/storefront-service/internal/usecase/get_time_slots"
)

const (
	msgInvalidDate      = "invalid date, expected YYYY-MM-DD"
	msgDateNotOfferable = "collection is not offered on this date"
)

type Handler struct {
	useCase GetTimeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetTimeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/time-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := r.URL.Query().Get("date")
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /time-slots - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getTimeSlots.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getTimeSlots.ErrDateNotOfferable):
			h.logger.Warn("GET /time-slots - Date %s not offerable", rawDate)
			handlers.RespondBadRequest(w, msgDateNotOfferable)

		case errors.Is(err, getTimeSlots.ErrInvalidDate), errors.Is(err, getTimeSlots.ErrInvalidInput):
			h.logger.Warn("GET /time-slots - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /time-slots - Failed to get slots for %s: %v", rawDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)
	h.logger.Info("GET /time-slots - %d slots returned for %s", len(response.Slots), rawDate)
	handlers.RespondJSON(w, http.StatusOK, response)
}

// TimeSlotsResponse HTTP response model
type TimeSlotsResponse struct {
	Date  string     `json:"date"` // "2026-08-28"
	Slots []TimeSlot `json:"slots"`
}

// TimeSlot слот самовывоза в ответе API
type TimeSlot struct {
	Time      string `json:"time"` // "10:45"
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(result *getTimeSlots.Response) *TimeSlotsResponse {
	slots := make([]TimeSlot, 0, len(result.Slots))
	for _, s := range result.Slots {
		slots = append(slots, TimeSlot{
			Time:      s.Time.String(),
			Available: s.Available,
		})
	}
	return &TimeSlotsResponse{
		Date:  result.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}
