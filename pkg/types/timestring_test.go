package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("10:45")
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:45"), ts)

	for _, bad := range []string{"", "25:00", "10:60", "1045", "9:5"} {
		_, err := NewTimeStringFromString(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestMinutes(t *testing.T) {
	m, err := TimeString("10:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 645, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = TimeString("bad").Minutes()
	assert.Error(t, err)
}

func TestAddMinutes(t *testing.T) {
	next, err := TimeString("10:45").AddMinutes(15)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:00"), next)

	// Переход через полночь
	next, err = TimeString("23:50").AddMinutes(15)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:05"), next)
}

func TestIsBeforeIsAfter(t *testing.T) {
	assert.True(t, TimeString("10:45").IsBefore("11:00"))
	assert.False(t, TimeString("11:00").IsBefore("10:45"))
	assert.False(t, TimeString("11:00").IsBefore("11:00"))

	assert.True(t, TimeString("11:00").IsAfter("10:45"))
	assert.False(t, TimeString("11:00").IsAfter("11:00"))

	// Некорректные значения сравниваются как false
	assert.False(t, TimeString("bad").IsBefore("11:00"))
	assert.False(t, TimeString("11:00").IsAfter("bad"))
}

func TestAt(t *testing.T) {
	date := time.Date(2026, 9, 5, 23, 59, 0, 0, time.UTC)

	instant, err := TimeString("10:45").At(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 5, 10, 45, 0, 0, time.UTC), instant)

	_, err = TimeString("bad").At(date)
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:45:00"))
	assert.Equal(t, TimeString("10:45"), ts)

	require.NoError(t, ts.Scan([]byte("11:30:00")))
	assert.Equal(t, TimeString("11:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 5, 12, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("12:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
