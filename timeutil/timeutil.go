// Package timeutil formats durations and dates for display and answers
// calendar-day questions about tasks.
package timeutil

import (
	"fmt"
	"time"

	"github.com/benjamonnguyen/daytrack"
)

// FormatDuration renders minutes as "45m", "2h" or "2h 5m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatTime renders seconds as MM:SS, or HH:MM:SS once an hour has passed.
func FormatTime(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from a to b, both read in loc. DST shifts
// do not affect the result.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DaysBetween(a, b, loc) == 0
}

// RelativeDate labels date relative to the day of now.
func RelativeDate(date, now time.Time) string {
	diff := DaysBetween(now, date, now.Location())
	switch {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Tomorrow"
	case diff == -1:
		return "Yesterday"
	case diff > 1 && diff <= 7:
		return fmt.Sprintf("In %d days", diff)
	case diff < -1 && diff >= -7:
		return fmt.Sprintf("%d days ago", -diff)
	}
	return date.In(now.Location()).Format("Jan 2")
}

// IsOverdue reports whether an incomplete task's due day is before today.
// Time of day is ignored.
func IsOverdue(task daytrack.Task, now time.Time) bool {
	if !task.HasDueDate() || task.IsCompleted() {
		return false
	}
	return DaysBetween(now, task.DueDate, now.Location()) < 0
}
