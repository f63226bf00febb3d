package subscription

import "time"

// ProrateFirstMonth computes the partial first-month charge: remaining days
// of the start month (inclusive of the start day) over the month's total
// days, rounded half up to whole currency units. Starting on the 1st yields
// the full monthly amount.
func ProrateFirstMonth(monthly int64, start time.Time) int64 {
	if monthly <= 0 {
		return 0
	}

	total := int64(daysInMonth(start))
	remaining := total - int64(start.Day()) + 1

	// integer half-up rounding of monthly*remaining/total
	return (monthly*remaining*2 + total) / (total * 2)
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
