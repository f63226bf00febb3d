package shift

import (
	"fmt"
	"time"

	"playa-admin/internal/domain/lot"
)

const (
	criticalDuration = 12 * time.Hour
	shortDuration    = 60 * time.Minute
	windowTolerance  = 60 * time.Minute
)

// Classification annotates a shift for the shift board. Severity resolves
// deterministically: critical beats warning beats normal.
type Classification struct {
	Severity        Severity
	InProgress      bool
	DurationMinutes int64
	DurationLabel   string
	OutsideSchedule bool
}

// Classify evaluates a shift against the lot's weekly schedule. Duration is
// the absolute delta between start and end; a shift spanning midnight needs
// no calendar arithmetic. An empty schedule raises no schedule flags.
func Classify(s *Shift, schedule lot.Schedule) Classification {
	c := Classification{Severity: SeverityNormal}

	if s.End() == nil {
		c.InProgress = true
		c.DurationLabel = "en curso"
	} else {
		d := s.End().Sub(s.Start())
		c.DurationMinutes = int64(d / time.Minute)
		c.DurationLabel = FormatDuration(d)
	}

	outOfWindow := false
	if !schedule.IsEmpty() {
		blocks := schedule.BlocksFor(s.Start().Weekday())
		if len(blocks) == 0 {
			c.OutsideSchedule = true
		} else {
			outOfWindow = !startWithinTolerance(s.Start(), blocks)
		}
	}

	switch {
	case !c.InProgress && s.End().Sub(s.Start()) > criticalDuration:
		c.Severity = SeverityCritical
	case (!c.InProgress && s.End().Sub(s.Start()) < shortDuration) || outOfWindow || c.OutsideSchedule:
		c.Severity = SeverityWarning
	}

	return c
}

func startWithinTolerance(start time.Time, blocks []lot.Block) bool {
	minute := time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute
	for _, b := range blocks {
		lo := time.Duration(b.Start())*time.Minute - windowTolerance
		hi := time.Duration(b.End())*time.Minute + windowTolerance
		if minute >= lo && minute <= hi {
			return true
		}
	}
	return false
}

// FormatDuration renders "Xh Ymin", dropping the hour part under one hour.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int64(d / time.Hour)
	m := int64(d/time.Minute) % 60
	if h == 0 {
		return fmt.Sprintf("%dmin", m)
	}
	return fmt.Sprintf("%dh %dmin", h, m)
}
