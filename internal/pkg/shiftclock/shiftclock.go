package shiftclock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status is the closed set of attendance statuses. Free-text status
// values never enter the system; parsing happens only at the boundary.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
)

// ParseStatus accepts a case-insensitive status string at the system
// boundary and returns the canonical enum value.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present":
		return StatusPresent, nil
	case "late":
		return StatusLate, nil
	case "absent":
		return StatusAbsent, nil
	case "half_day", "half-day", "halfday":
		return StatusHalfDay, nil
	}
	return "", fmt.Errorf("unknown attendance status %q", s)
}

const (
	// StandardWorkMinutes is the 8-hour standard day overtime baseline.
	StandardWorkMinutes = 480
	// HalfDayThresholdMinutes: records worked for less than 4 hours are
	// surfaced as half_day at read time.
	HalfDayThresholdMinutes = 240
)

// Clock converts timestamps against configured shift boundaries. All
// wall-clock comparisons happen in a single configured business
// location so shift math is unambiguous across stored timestamps.
type Clock struct {
	shiftStartMinutes int
	shiftEndMinutes   int
	graceMinutes      int
	loc               *time.Location
}

// Deltas are the per-record minute deltas derived from a check-in/out pair.
type Deltas struct {
	LateMinutes     int
	EarlyMinutes    int
	OvertimeMinutes int
	TotalMinutes    int
}

// New builds a Clock from "HH:MM" shift boundaries.
func New(shiftStart, shiftEnd string, graceMinutes int, loc *time.Location) (*Clock, error) {
	startMins, err := parseHHMM(shiftStart)
	if err != nil {
		return nil, fmt.Errorf("invalid shift start: %w", err)
	}
	endMins, err := parseHHMM(shiftEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid shift end: %w", err)
	}
	if endMins <= startMins {
		return nil, fmt.Errorf("shift end %s must be after shift start %s", shiftEnd, shiftStart)
	}
	if graceMinutes < 0 {
		return nil, fmt.Errorf("grace minutes must not be negative")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{
		shiftStartMinutes: startMins,
		shiftEndMinutes:   endMins,
		graceMinutes:      graceMinutes,
		loc:               loc,
	}, nil
}

func parseHHMM(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%q is not in HH:MM format", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%q has an invalid hour", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%q has an invalid minute", s)
	}
	return hour*60 + minute, nil
}

// Location returns the business time location the clock evaluates in.
func (c *Clock) Location() *time.Location {
	return c.loc
}

func (c *Clock) minuteOfDay(t time.Time) int {
	local := t.In(c.loc)
	return local.Hour()*60 + local.Minute()
}

// MinutesLate reports how far past shift start a check-in lands. The
// grace window does not shrink this number, it only affects the status.
func (c *Clock) MinutesLate(checkIn time.Time) int {
	return max(0, c.minuteOfDay(checkIn)-c.shiftStartMinutes)
}

// DetermineStatus classifies a check-in as present or late. Late means
// the check-in lands past shift start plus the grace window.
func (c *Clock) DetermineStatus(checkIn time.Time) Status {
	if c.minuteOfDay(checkIn) > c.shiftStartMinutes+c.graceMinutes {
		return StatusLate
	}
	return StatusPresent
}

// ComputeDeltas derives the minute deltas for a completed day.
// Overtime is computed from total worked minutes against the standard
// 8-hour day, not from crossing the shift end.
func (c *Clock) ComputeDeltas(checkIn, checkOut time.Time) Deltas {
	inMins := c.minuteOfDay(checkIn)
	outMins := c.minuteOfDay(checkOut)

	d := Deltas{
		LateMinutes:  max(0, inMins-c.shiftStartMinutes),
		EarlyMinutes: max(0, c.shiftEndMinutes-outMins),
		TotalMinutes: max(0, outMins-inMins),
	}
	d.OvertimeMinutes = max(0, d.TotalMinutes-StandardWorkMinutes)
	return d
}

// ClassifyWorked applies the read-time half-day reclassification: any
// record worked for more than zero but under four hours is surfaced as
// half_day regardless of the stored status.
func ClassifyWorked(stored Status, totalMinutes int) Status {
	if totalMinutes > 0 && totalMinutes < HalfDayThresholdMinutes {
		return StatusHalfDay
	}
	return stored
}
