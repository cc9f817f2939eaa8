package accounting

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// calendarDay strips any time-of-day and zone from t, keeping the calendar fields as
// they were recorded.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// HoldDays returns the whole number of calendar days between from and to, never negative.
func HoldDays(from, to time.Time) int {
	days := int(calendarDay(to).Sub(calendarDay(from)) / day)
	if days < 0 {
		return 0
	}
	return days
}

// MonthKey returns the YYYY-MM bucket of a calendar day. It reads the recorded date
// fields directly so a sale on the last day of a month never drifts into the next one.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}
