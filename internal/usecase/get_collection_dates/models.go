package get_collection_dates

import "github.com/perkpoint/storefront-service/internal/domain"

// Response модель ответа со списком дат самовывоза
type Response struct {
	Dates []domain.CollectionDate // Ближайшие даты, в которые фургон работает
}
