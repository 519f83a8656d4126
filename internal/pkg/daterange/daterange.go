// Package daterange implements inclusive calendar-date interval math
// shared by the remote-work register and the payroll generator.
package daterange

import "time"

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether two inclusive date ranges intersect. It
// covers all three configurations: a contains b's start, a contains
// b's end, and b fully contains a.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	aStart, aEnd = day(aStart), day(aEnd)
	bStart, bEnd = day(bStart), day(bEnd)
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// OverlapDays returns the inclusive day count of the intersection of
// two date ranges, floored at zero.
func OverlapDays(aStart, aEnd, bStart, bEnd time.Time) int {
	start := day(aStart)
	if b := day(bStart); b.After(start) {
		start = b
	}
	end := day(aEnd)
	if b := day(bEnd); b.Before(end) {
		end = b
	}
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// InclusiveDays returns endDate-startDate+1 in whole days.
func InclusiveDays(start, end time.Time) int {
	s, e := day(start), day(end)
	if s.After(e) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// WeekdayCount counts Monday-Friday dates in a calendar month.
func WeekdayCount(year int, month time.Month) int {
	count := 0
	current := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for current.Month() == month {
		if current.Weekday() != time.Saturday && current.Weekday() != time.Sunday {
			count++
		}
		current = current.AddDate(0, 0, 1)
	}
	return count
}

// Contains reports whether date falls inside the inclusive range.
func Contains(start, end, date time.Time) bool {
	d := day(date)
	return !d.Before(day(start)) && !d.After(day(end))
}
