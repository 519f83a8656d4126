package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	mar10, mar15 := d(2026, time.March, 10), d(2026, time.March, 15)
	mar12, mar20 := d(2026, time.March, 12), d(2026, time.March, 20)

	// New range contains the existing start.
	assert.True(t, Overlaps(mar10, mar15, mar12, mar20))
	// New range contains the existing end.
	assert.True(t, Overlaps(d(2026, time.March, 18), d(2026, time.March, 25), mar12, mar20))
	// Existing fully contains the new range.
	assert.True(t, Overlaps(d(2026, time.March, 13), d(2026, time.March, 14), mar12, mar20))
	// Inclusive boundaries touch.
	assert.True(t, Overlaps(d(2026, time.March, 1), mar12, mar12, mar20))

	assert.False(t, Overlaps(d(2026, time.March, 1), d(2026, time.March, 9), mar10, mar15))
	assert.False(t, Overlaps(d(2026, time.March, 21), d(2026, time.March, 25), mar12, mar20))
}

func TestOverlapDays(t *testing.T) {
	t.Parallel()

	periodStart, periodEnd := d(2026, time.January, 1), d(2026, time.January, 31)

	// Leave fully inside the period.
	assert.Equal(t, 3, OverlapDays(d(2026, time.January, 12), d(2026, time.January, 14), periodStart, periodEnd))
	// Leave straddling the period start.
	assert.Equal(t, 2, OverlapDays(d(2025, time.December, 30), d(2026, time.January, 2), periodStart, periodEnd))
	// Single day.
	assert.Equal(t, 1, OverlapDays(d(2026, time.January, 5), d(2026, time.January, 5), periodStart, periodEnd))
	// Disjoint floors at zero.
	assert.Equal(t, 0, OverlapDays(d(2026, time.February, 1), d(2026, time.February, 3), periodStart, periodEnd))
}

func TestInclusiveDays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, InclusiveDays(d(2026, time.March, 10), d(2026, time.March, 10)))
	assert.Equal(t, 6, InclusiveDays(d(2026, time.March, 10), d(2026, time.March, 15)))
	assert.Equal(t, 0, InclusiveDays(d(2026, time.March, 15), d(2026, time.March, 10)))
}

func TestWeekdayCount(t *testing.T) {
	t.Parallel()

	// January 2026 starts on a Thursday: 22 weekdays.
	assert.Equal(t, 22, WeekdayCount(2026, time.January))
	// February 2026: 20 weekdays.
	assert.Equal(t, 20, WeekdayCount(2026, time.February))
}

func TestContains(t *testing.T) {
	t.Parallel()

	start, end := d(2026, time.March, 10), d(2026, time.March, 15)
	assert.True(t, Contains(start, end, d(2026, time.March, 10)))
	assert.True(t, Contains(start, end, d(2026, time.March, 15)))
	// Time-of-day is ignored.
	assert.True(t, Contains(start, end, time.Date(2026, time.March, 12, 23, 59, 0, 0, time.UTC)))
	assert.False(t, Contains(start, end, d(2026, time.March, 16)))
}
