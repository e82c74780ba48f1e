package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestValidateSlotWindow(t *testing.T) {
	wh := defaultHours()
	today := mustDate(t, "2025-03-05") // a Wednesday

	tests := []struct {
		name   string
		date   string
		slot   string
		reason string
	}{
		{"weekday inside hours", "2025-03-10", "10:00:00", ""},
		{"today is allowed", "2025-03-05", "14:30:00", ""},
		{"opening slot", "2025-03-10", "09:00:00", ""},
		{"closing slot", "2025-03-10", "17:00:00", ""},
		{"past date", "2025-03-04", "10:00:00", ReasonDateNotFuture},
		{"exactly at horizon", "2025-06-05", "10:00:00", ""},
		{"beyond horizon", "2025-06-06", "10:00:00", ReasonDateBeyondHorizon},
		{"saturday", "2025-03-08", "10:00:00", ReasonWeekdaysOnly},
		{"sunday", "2025-03-09", "10:00:00", ReasonWeekdaysOnly},
		{"before opening", "2025-03-10", "08:30:00", ReasonOutsideWorkingHours},
		{"after closing", "2025-03-10", "17:30:00", ReasonOutsideWorkingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := wh.ValidateSlotWindow(today, mustDate(t, tt.date), tt.slot)
			if tt.reason == "" {
				assert.True(t, verdict.Available)
				assert.Empty(t, verdict.Reason)
			} else {
				assert.False(t, verdict.Available)
				assert.Equal(t, tt.reason, verdict.Reason)
			}
		})
	}
}

func TestValidateSlotWindowCheckOrder(t *testing.T) {
	wh := defaultHours()
	today := mustDate(t, "2025-03-05")

	// A past weekend date outside working hours fails on the date
	// check first.
	verdict := wh.ValidateSlotWindow(today, mustDate(t, "2025-03-01"), "22:00:00")
	assert.Equal(t, ReasonDateNotFuture, verdict.Reason)

	// A future weekend fails on the weekday check before the hours
	// check.
	verdict = wh.ValidateSlotWindow(today, mustDate(t, "2025-03-08"), "22:00:00")
	assert.Equal(t, ReasonWeekdaysOnly, verdict.Reason)
}

func TestValidateAvailabilityDate(t *testing.T) {
	wh := defaultHours()
	today := mustDate(t, "2025-03-05")

	assert.True(t, wh.ValidateAvailabilityDate(today, mustDate(t, "2025-03-10")).Available)
	assert.True(t, wh.ValidateAvailabilityDate(today, today).Available)

	verdict := wh.ValidateAvailabilityDate(today, mustDate(t, "2025-03-04"))
	assert.Equal(t, ReasonPastDate, verdict.Reason)

	verdict = wh.ValidateAvailabilityDate(today, mustDate(t, "2025-03-08"))
	assert.Equal(t, ReasonWeekendsClosed, verdict.Reason)
}

func TestFreeSlots(t *testing.T) {
	wh := defaultHours()

	// No bookings: the full template comes back.
	free := wh.FreeSlots(nil)
	assert.Len(t, free, 17)

	// One booked slot drops exactly that slot.
	free = wh.FreeSlots([]string{"10:00:00"})
	assert.Len(t, free, 16)
	assert.NotContains(t, free, "10:00:00")
	assert.Contains(t, free, "09:30:00")
	assert.Contains(t, free, "10:30:00")

	// Booked times outside the template are ignored.
	free = wh.FreeSlots([]string{"08:00:00", "23:00:00"})
	assert.Len(t, free, 17)
}

func TestFreeSlotsAllBooked(t *testing.T) {
	wh := defaultHours()
	free := wh.FreeSlots(wh.SlotTemplate())
	assert.Empty(t, free)
}
