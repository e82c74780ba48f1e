package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: 3, Day: 10}, d)
	assert.Equal(t, "2025-03-10", d.String())
}

func TestParseDateRejectsMalformed(t *testing.T) {
	for _, bad := range []string{
		"", "2025-3-10", "10-03-2025", "2025/03/10", "2025-13-01",
		"2025-00-10", "2025-02-30", "2025-04-31", "20250310", "yyyy-mm-dd",
	} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestDateOrdering(t *testing.T) {
	earlier, _ := ParseDate("2025-03-10")
	later, _ := ParseDate("2025-03-11")
	nextMonth, _ := ParseDate("2025-04-01")

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.True(t, earlier.Before(nextMonth))
	assert.False(t, earlier.Before(earlier))
	assert.False(t, earlier.After(earlier))
}

func TestAddMonths(t *testing.T) {
	d, _ := ParseDate("2025-03-10")
	assert.Equal(t, "2025-06-10", d.AddMonths(3).String())

	// Normalization follows time.AddDate.
	endOfJan, _ := ParseDate("2025-01-31")
	assert.Equal(t, "2025-03-03", endOfJan.AddMonths(1).String())
}

func TestWeekday(t *testing.T) {
	monday, _ := ParseDate("2025-03-10")
	saturday, _ := ParseDate("2025-03-15")
	sunday, _ := ParseDate("2025-03-16")

	assert.Equal(t, time.Monday, monday.Weekday())
	assert.False(t, monday.IsWeekend())
	assert.True(t, saturday.IsWeekend())
	assert.True(t, sunday.IsWeekend())
}

func TestAt(t *testing.T) {
	d, _ := ParseDate("2025-03-10")
	at, err := d.At("14:30:00")
	require.NoError(t, err)

	assert.Equal(t, 2025, at.Year())
	assert.Equal(t, time.March, at.Month())
	assert.Equal(t, 10, at.Day())
	assert.Equal(t, 14, at.Hour())
	assert.Equal(t, 30, at.Minute())

	_, err = d.At("not-a-time")
	assert.Error(t, err)
}
