//go:build unit

package shift_test

import (
	"testing"
	"time"

	"playa-admin/internal/domain/lot"
	"playa-admin/internal/domain/shift"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-06-02 is a Monday.
var monday9 = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func openShift(t *testing.T, start time.Time) *shift.Shift {
	t.Helper()
	s, err := shift.Open(uuid.New(), uuid.New(), start, 1000)
	require.NoError(t, err)
	return s
}

func closedShift(t *testing.T, start time.Time, d time.Duration) *shift.Shift {
	t.Helper()
	s := openShift(t, start)
	require.NoError(t, s.Close(start.Add(d), 2000))
	return s
}

func weekdaySchedule(t *testing.T) lot.Schedule {
	t.Helper()
	s, err := lot.ParseSchedule("LUN-VIE 08:00-20:00")
	require.NoError(t, err)
	return s
}

func TestClassify(t *testing.T) {
	t.Run("regular shift inside schedule is normal", func(t *testing.T) {
		c := shift.Classify(closedShift(t, monday9, 8*time.Hour), weekdaySchedule(t))
		assert.Equal(t, shift.SeverityNormal, c.Severity)
		assert.False(t, c.OutsideSchedule)
		assert.Equal(t, int64(480), c.DurationMinutes)
		assert.Equal(t, "8h 0min", c.DurationLabel)
	})

	t.Run("over twelve hours is critical", func(t *testing.T) {
		c := shift.Classify(closedShift(t, monday9, 13*time.Hour), weekdaySchedule(t))
		assert.Equal(t, shift.SeverityCritical, c.Severity)
	})

	t.Run("critical wins over warning conditions", func(t *testing.T) {
		// Saturday start is outside the schedule, but the 13h duration
		// must still resolve to critical.
		saturday := time.Date(2025, 6, 7, 9, 0, 0, 0, time.UTC)
		c := shift.Classify(closedShift(t, saturday, 13*time.Hour), weekdaySchedule(t))
		assert.Equal(t, shift.SeverityCritical, c.Severity)
		assert.True(t, c.OutsideSchedule)
	})

	t.Run("under an hour is a warning", func(t *testing.T) {
		c := shift.Classify(closedShift(t, monday9, 45*time.Minute), weekdaySchedule(t))
		assert.Equal(t, shift.SeverityWarning, c.Severity)
		assert.Equal(t, "45min", c.DurationLabel)
	})

	t.Run("start outside window beyond tolerance is a warning", func(t *testing.T) {
		early := time.Date(2025, 6, 2, 6, 30, 0, 0, time.UTC) // 90min before opening
		c := shift.Classify(closedShift(t, early, 8*time.Hour), weekdaySchedule(t))
		assert.Equal(t, shift.SeverityWarning, c.Severity)
		assert.False(t, c.OutsideSchedule)
	})

	t.Run("start within the 60min tolerance is normal", func(t *testing.T) {
		early := time.Date(2025, 6, 2, 7, 15, 0, 0, time.UTC) // 45min before opening
		c := shift.Classify(closedShift(t, early, 8*time.Hour), weekdaySchedule(t))
		assert.Equal(t, shift.SeverityNormal, c.Severity)
	})

	t.Run("saturday start on a weekday-only schedule is flagged", func(t *testing.T) {
		saturday := time.Date(2025, 6, 7, 9, 0, 0, 0, time.UTC)
		c := shift.Classify(closedShift(t, saturday, 4*time.Hour), weekdaySchedule(t))
		assert.True(t, c.OutsideSchedule)
		assert.Equal(t, shift.SeverityWarning, c.Severity)
	})

	t.Run("empty schedule raises no schedule flags", func(t *testing.T) {
		saturday := time.Date(2025, 6, 7, 3, 0, 0, 0, time.UTC)
		c := shift.Classify(closedShift(t, saturday, 4*time.Hour), lot.EmptySchedule())
		assert.Equal(t, shift.SeverityNormal, c.Severity)
		assert.False(t, c.OutsideSchedule)
	})

	t.Run("open shift is in progress with undefined duration", func(t *testing.T) {
		c := shift.Classify(openShift(t, monday9), weekdaySchedule(t))
		assert.True(t, c.InProgress)
		assert.Equal(t, int64(0), c.DurationMinutes)
		assert.Equal(t, "en curso", c.DurationLabel)
		assert.Equal(t, shift.SeverityNormal, c.Severity)
	})

	t.Run("midnight-spanning shift uses the absolute delta", func(t *testing.T) {
		evening := time.Date(2025, 6, 2, 19, 30, 0, 0, time.UTC)
		c := shift.Classify(closedShift(t, evening, 6*time.Hour), weekdaySchedule(t))
		assert.Equal(t, int64(360), c.DurationMinutes)
		assert.Equal(t, shift.SeverityNormal, c.Severity)
	})
}

func TestShiftClose(t *testing.T) {
	t.Run("double close rejected", func(t *testing.T) {
		s := closedShift(t, monday9, time.Hour)
		err := s.Close(monday9.Add(2*time.Hour), 500)
		assert.ErrorIs(t, err, shift.ErrAlreadyClosed)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		s := openShift(t, monday9)
		err := s.Close(monday9.Add(-time.Minute), 500)
		assert.ErrorIs(t, err, shift.ErrEndBeforeStart)
	})

	t.Run("negative cash rejected", func(t *testing.T) {
		_, err := shift.Open(uuid.New(), uuid.New(), monday9, -1)
		assert.ErrorIs(t, err, shift.ErrNegativeCash)
	})
}
