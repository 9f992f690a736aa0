package domain

import (
	"time"

	"github.com/perkpoint/storefront-service/pkg/types"
)

// Default settings values (used when the settings row is absent)
const (
	DefaultMaxOrdersPerSlot = 3
)

// Collection window of the van. Slots run from opening up to (but never
// including) closing, with a fixed step and a minimum lead time from "now".
const (
	OpeningTime            types.TimeString = "10:45"
	ClosingTime            types.TimeString = "15:30"
	SlotGranularityMinutes                  = 15
	LeadTimeMinutes                         = 15
)

// Date scan bounds for the collection-date picker
const (
	CollectionDaysToScan = 30
	MaxCollectionDates   = 8
)

// Business validation constants
const (
	MinMaxOrdersPerSlot = 1
	MaxMaxOrdersPerSlot = 100
	MaxNotesLength      = 500
	MaxCartQuantity     = 50
)

// DateFormat формат дат API и настроек (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// CollectionWeekdays дни недели, в которые фургон торгует (чт-вс)
var CollectionWeekdays = map[time.Weekday]bool{
	time.Thursday: true,
	time.Friday:   true,
	time.Saturday: true,
	time.Sunday:   true,
}

// ActiveOrderStatuses статусы, при которых заказ удерживает свой слот
var ActiveOrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusProcessing,
	OrderStatusReady,
	OrderStatusCompleted,
}
