package domain

import (
	"time"

	"github.com/perkpoint/storefront-service/pkg/types"
)

// TimeSlot represents one collection slot on a given date.
// Recomputed on every query, never persisted.
type TimeSlot struct {
	Time      types.TimeString
	Available bool
}

// CollectionDate represents a date offered in the collection picker.
type CollectionDate struct {
	Date    time.Time
	IsToday bool
}

// SlotReservation ties one order to one collection slot. Rows accumulate per
// (date, time) up to Settings.MaxOrdersPerSlot.
type SlotReservation struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	OrderID   int64
	CreatedAt time.Time
}
