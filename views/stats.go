package views

import (
	"time"
	"unicode/utf8"

	"github.com/benjamonnguyen/daytrack"
	"github.com/benjamonnguyen/daytrack/timeutil"
)

type CategoryStat struct {
	Category     daytrack.Category
	Label        string
	TotalMinutes int
	TaskCount    int
}

// ByCategory sums tracked minutes and counts tasks per category, in the order
// each category first appears.
func ByCategory(tasks []daytrack.Task) []CategoryStat {
	var stats []CategoryStat
	idx := make(map[daytrack.Category]int)
	for _, t := range tasks {
		i, ok := idx[t.Category]
		if !ok {
			i = len(stats)
			idx[t.Category] = i
			stats = append(stats, CategoryStat{Category: t.Category, Label: t.Category.Label()})
		}
		stats[i].TotalMinutes += t.ActualTimeMinutes
		stats[i].TaskCount++
	}
	return stats
}

type DayActivity struct {
	Date      time.Time
	Day       string
	Completed int
	Minutes   int
}

// WeeklyActivity reports completions for the trailing 7 days, oldest first.
func WeeklyActivity(tasks []daytrack.Task, now time.Time) []DayActivity {
	today := timeutil.StartOfDay(now)
	days := make([]DayActivity, 0, 7)
	for i := 6; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)
		d := DayActivity{Date: start, Day: start.Format("Mon")}
		for _, t := range tasks {
			if t.CompletedAt.IsZero() || t.CompletedAt.Before(start) || !t.CompletedAt.Before(end) {
				continue
			}
			d.Completed++
			d.Minutes += t.ActualTimeMinutes
		}
		days = append(days, d)
	}
	return days
}

const (
	estimateSeriesLen = 10
	maxTitleRunes     = 15
)

type EstimatePoint struct {
	Title     string
	Estimated int
	Actual    int
}

// EstimateVsActual pairs estimated and actual minutes for the 10 most recently
// added completed tasks that carry an estimate.
func EstimateVsActual(tasks []daytrack.Task) []EstimatePoint {
	completed := where(tasks, func(t daytrack.Task) bool {
		return t.IsCompleted() && t.EstimatedTimeMinutes > 0
	})
	if len(completed) > estimateSeriesLen {
		completed = completed[len(completed)-estimateSeriesLen:]
	}
	points := make([]EstimatePoint, 0, len(completed))
	for _, t := range completed {
		points = append(points, EstimatePoint{
			Title:     truncate(t.Title, maxTitleRunes),
			Estimated: t.EstimatedTimeMinutes,
			Actual:    t.ActualTimeMinutes,
		})
	}
	return points
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

type dayKey struct {
	y int
	m time.Month
	d int
}

func keyOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{y, m, d}
}

// Streak counts consecutive days with at least one completion, walking back
// from today. A today without completions is skipped rather than ending the
// streak, so the result is then yesterday's run length.
func Streak(tasks []daytrack.Task, now time.Time) int {
	active := make(map[dayKey]bool)
	for _, t := range tasks {
		if !t.CompletedAt.IsZero() {
			active[keyOf(t.CompletedAt.In(now.Location()))] = true
		}
	}

	streak := 0
	day := timeutil.StartOfDay(now)
	if !active[keyOf(day)] {
		day = day.AddDate(0, 0, -1)
	}
	for active[keyOf(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// Dashboard is the headline numbers shown above the task list.
type Dashboard struct {
	CompletedToday    int
	CompletedThisWeek int
	MinutesToday      int
	Pending           int
	InProgress        int
	Streak            int
}

func Summarize(tasks []daytrack.Task, now time.Time) Dashboard {
	loc := now.Location()
	weekAgo := timeutil.StartOfDay(now).AddDate(0, 0, -7)

	d := Dashboard{Streak: Streak(tasks, now)}
	for _, t := range tasks {
		if !t.CompletedAt.IsZero() {
			if timeutil.SameDay(t.CompletedAt, now, loc) {
				d.CompletedToday++
				d.MinutesToday += t.ActualTimeMinutes
			}
			if !t.CompletedAt.Before(weekAgo) {
				d.CompletedThisWeek++
			}
		}
		switch t.Status {
		case daytrack.StatusInProgress:
			d.InProgress++
			d.Pending++
		case daytrack.StatusPending:
			d.Pending++
		}
	}
	return d
}
