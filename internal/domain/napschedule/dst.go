package napschedule

import "time"

// ClockShiftOn reports whether the UTC offset of day's location changes
// between its local midnight and the following one.
func ClockShiftOn(day time.Time) bool {
	y, m, d := day.Date()
	loc := day.Location()
	_, startOffset := time.Date(y, m, d, 0, 0, 0, 0, loc).Zone()
	_, endOffset := time.Date(y, m, d+1, 0, 0, 0, 0, loc).Zone()
	return startOffset != endOffset
}
