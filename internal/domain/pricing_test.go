package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkpoint/storefront-service/pkg/ptr"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse(DateFormat, value)
	require.NoError(t, err)
	return date
}

func testOptionPrice(optionID string) float64 {
	if optionID == "oat" {
		return 0.50
	}
	return 0
}

func TestLineTotal(t *testing.T) {
	t.Run("no option", func(t *testing.T) {
		line := &CartLine{UnitPrice: 3.50, Quantity: 2}
		assert.Equal(t, 7.00, LineTotal(line, testOptionPrice))
	})

	t.Run("option adds per unit", func(t *testing.T) {
		line := &CartLine{UnitPrice: 3.50, Quantity: 2, SelectedOption: ptr.Ptr("oat")}
		assert.Equal(t, 8.00, LineTotal(line, testOptionPrice))
	})

	t.Run("unknown option prices as zero", func(t *testing.T) {
		line := &CartLine{UnitPrice: 3.50, Quantity: 2, SelectedOption: ptr.Ptr("gone")}
		assert.Equal(t, 7.00, LineTotal(line, testOptionPrice))
	})

	t.Run("nil lookup", func(t *testing.T) {
		line := &CartLine{UnitPrice: 3.50, Quantity: 1, SelectedOption: ptr.Ptr("oat")}
		assert.Equal(t, 3.50, LineTotal(line, nil))
	})
}

func TestCartTotal(t *testing.T) {
	lines := []*CartLine{
		{UnitPrice: 3.50, Quantity: 2, SelectedOption: ptr.Ptr("oat")},
		{UnitPrice: 2.00, Quantity: 1},
	}
	assert.Equal(t, 10.00, CartTotal(lines, testOptionPrice))

	assert.Equal(t, 0.00, CartTotal(nil, testOptionPrice))
}

func TestCanTransitionTo(t *testing.T) {
	t.Run("forward transitions allowed", func(t *testing.T) {
		order := &Order{Status: OrderStatusNew}
		assert.True(t, order.CanTransitionTo(OrderStatusProcessing))
		assert.True(t, order.CanTransitionTo(OrderStatusCancelled))
	})

	t.Run("same status rejected", func(t *testing.T) {
		order := &Order{Status: OrderStatusProcessing}
		assert.False(t, order.CanTransitionTo(OrderStatusProcessing))
	})

	t.Run("terminal states reject everything", func(t *testing.T) {
		cancelled := &Order{Status: OrderStatusCancelled}
		completed := &Order{Status: OrderStatusCompleted}
		for _, next := range []OrderStatus{OrderStatusNew, OrderStatusProcessing, OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled} {
			assert.False(t, cancelled.CanTransitionTo(next))
			assert.False(t, completed.CanTransitionTo(next))
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		order := &Order{Status: OrderStatusNew}
		assert.False(t, order.CanTransitionTo(OrderStatus("shipped")))
	})
}

func TestIsDateBlocked(t *testing.T) {
	settings := &Settings{BlockedDates: []string{"2026-09-05"}}

	blocked := mustDate(t, "2026-09-05")
	open := mustDate(t, "2026-09-06")
	assert.True(t, settings.IsDateBlocked(blocked))
	assert.False(t, settings.IsDateBlocked(open))
}

func TestSettingsOptionLookup(t *testing.T) {
	settings := &Settings{ProductOptions: []ProductOption{
		{ID: "oat", Title: "Oat milk", Price: 0.50},
	}}

	assert.Equal(t, 0.50, settings.OptionPrice("oat"))
	assert.Equal(t, 0.00, settings.OptionPrice("gone"))

	opt, ok := settings.FindOption("oat")
	assert.True(t, ok)
	assert.Equal(t, "Oat milk", opt.Title)

	_, ok = settings.FindOption("gone")
	assert.False(t, ok)
}
