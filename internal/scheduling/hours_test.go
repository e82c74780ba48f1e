package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultHours() WorkingHours {
	return WorkingHours{
		DayStart:      "09:00:00",
		DayEnd:        "17:00:00",
		SlotMinutes:   30,
		HorizonMonths: 3,
		CancelNotice:  2 * time.Hour,
	}
}

func TestSlotTemplate(t *testing.T) {
	slots := defaultHours().SlotTemplate()

	require.Len(t, slots, 17)
	assert.Equal(t, "09:00:00", slots[0])
	assert.Equal(t, "09:30:00", slots[1])
	assert.Equal(t, "16:30:00", slots[15])
	assert.Equal(t, "17:00:00", slots[16])
}

func TestSlotTemplateCustomHours(t *testing.T) {
	wh := WorkingHours{DayStart: "08:00:00", DayEnd: "12:00:00", SlotMinutes: 60}

	assert.Equal(t, []string{"08:00:00", "09:00:00", "10:00:00", "11:00:00", "12:00:00"}, wh.SlotTemplate())
}

func TestContains(t *testing.T) {
	wh := defaultHours()

	assert.True(t, wh.Contains("09:00:00"))
	assert.True(t, wh.Contains("12:30:00"))
	assert.True(t, wh.Contains("17:00:00"), "closing slot itself is bookable")
	assert.False(t, wh.Contains("08:30:00"))
	assert.False(t, wh.Contains("17:30:00"))
}

func TestOnSlotBoundary(t *testing.T) {
	wh := defaultHours()

	assert.True(t, wh.OnSlotBoundary("09:00:00"))
	assert.True(t, wh.OnSlotBoundary("10:30:00"))
	assert.False(t, wh.OnSlotBoundary("10:15:00"))
	assert.False(t, wh.OnSlotBoundary("bogus"))
}

func TestParseClock(t *testing.T) {
	h, m, s, err := ParseClock("14:30:00")
	require.NoError(t, err)
	assert.Equal(t, 14, h)
	assert.Equal(t, 30, m)
	assert.Equal(t, 0, s)

	for _, bad := range []string{"", "14:30", "25:00:00", "14:60:00", "14:00:61", "ab:cd:ef"} {
		_, _, _, err := ParseClock(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}
