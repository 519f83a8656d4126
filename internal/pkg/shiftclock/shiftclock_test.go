package shiftclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClock(t *testing.T) *Clock {
	t.Helper()
	clock, err := New("09:00", "17:00", 15, time.UTC)
	require.NoError(t, err)
	return clock
}

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	_, err := New("9am", "17:00", 15, time.UTC)
	assert.Error(t, err)

	_, err = New("17:00", "09:00", 15, time.UTC)
	assert.Error(t, err)

	_, err = New("09:00", "17:00", -1, time.UTC)
	assert.Error(t, err)
}

func TestDetermineStatus_GraceWindow(t *testing.T) {
	t.Parallel()
	clock := newTestClock(t)

	assert.Equal(t, StatusPresent, clock.DetermineStatus(at(8, 45)))
	assert.Equal(t, StatusPresent, clock.DetermineStatus(at(9, 0)))
	// Exactly at the grace boundary still counts as present.
	assert.Equal(t, StatusPresent, clock.DetermineStatus(at(9, 15)))
	assert.Equal(t, StatusLate, clock.DetermineStatus(at(9, 16)))
	assert.Equal(t, StatusLate, clock.DetermineStatus(at(11, 0)))
}

func TestDetermineStatus_UsesConfiguredLocation(t *testing.T) {
	t.Parallel()

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	clock, err := New("09:00", "17:00", 15, jakarta)
	require.NoError(t, err)

	// 02:00 UTC is 09:00 in Jakarta (UTC+7).
	checkIn := time.Date(2026, time.March, 10, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusPresent, clock.DetermineStatus(checkIn))
}

func TestComputeDeltas(t *testing.T) {
	t.Parallel()
	clock := newTestClock(t)

	cases := []struct {
		name     string
		in, out  time.Time
		expected Deltas
	}{
		{
			name: "standard day",
			in:   at(9, 0), out: at(17, 0),
			expected: Deltas{LateMinutes: 0, EarlyMinutes: 0, OvertimeMinutes: 0, TotalMinutes: 480},
		},
		{
			name: "late arrival early departure",
			in:   at(9, 30), out: at(16, 30),
			expected: Deltas{LateMinutes: 30, EarlyMinutes: 30, OvertimeMinutes: 0, TotalMinutes: 420},
		},
		{
			name: "overtime from total worked minutes not shift end",
			in:   at(8, 0), out: at(17, 0),
			expected: Deltas{LateMinutes: 0, EarlyMinutes: 0, OvertimeMinutes: 60, TotalMinutes: 540},
		},
		{
			name: "checkout after shift end without a long day earns no overtime",
			in:   at(10, 0), out: at(17, 30),
			expected: Deltas{LateMinutes: 60, EarlyMinutes: 0, OvertimeMinutes: 0, TotalMinutes: 450},
		},
		{
			name: "checkout before checkin floors at zero",
			in:   at(10, 0), out: at(9, 0),
			expected: Deltas{LateMinutes: 60, EarlyMinutes: 480, OvertimeMinutes: 0, TotalMinutes: 0},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := clock.ComputeDeltas(tc.in, tc.out)
			assert.Equal(t, tc.expected, got)
			assert.GreaterOrEqual(t, got.TotalMinutes, 0)
			assert.Equal(t, max(0, got.TotalMinutes-StandardWorkMinutes), got.OvertimeMinutes)
		})
	}
}

func TestClassifyWorked(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusHalfDay, ClassifyWorked(StatusPresent, 120))
	assert.Equal(t, StatusHalfDay, ClassifyWorked(StatusLate, 239))
	assert.Equal(t, StatusPresent, ClassifyWorked(StatusPresent, 240))
	assert.Equal(t, StatusLate, ClassifyWorked(StatusLate, 480))
	// Zero worked minutes keeps the stored status.
	assert.Equal(t, StatusPresent, ClassifyWorked(StatusPresent, 0))
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]Status{
		"Present":  StatusPresent,
		"LATE":     StatusLate,
		" absent ": StatusAbsent,
		"Half-Day": StatusHalfDay,
		"half_day": StatusHalfDay,
	} {
		got, err := ParseStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := ParseStatus("vacationing")
	assert.Error(t, err)
}
