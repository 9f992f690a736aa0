package get_collection_dates

import (
	"context"

	getCollectionDates "github.com/perkpoint/storefront-service/internal/usecase/get_collection_dates"
)

type GetCollectionDatesUseCase interface {
	Execute(ctx context.Context) (*getCollectionDates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
