package get_time_slots

import (
	"time"

	"github.com/perkpoint/storefront-service/internal/domain"
)

// Request модель запроса на получение слотов самовывоза
type Request struct {
	Date time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date  time.Time         // Дата, на которую запрашивались слоты
	Slots []domain.TimeSlot // Все слоты дня с признаком доступности
}
