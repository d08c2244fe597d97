package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/benjamonnguyen/daytrack"
	"github.com/benjamonnguyen/daytrack/timeutil"
	"github.com/benjamonnguyen/daytrack/views"
)

func statusIcon(s daytrack.Status) string {
	switch s {
	case daytrack.StatusInProgress:
		return "◐"
	case daytrack.StatusCompleted:
		return "●"
	}
	return "○"
}

// renderTask renders one numbered row. elapsed is only shown for the task
// holding the active timer.
func renderTask(n int, t daytrack.Task, now time.Time, elapsed time.Duration, timeFormat string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%2d. %s %s", n, statusIcon(t.Status), t.Title)

	meta := []string{
		fmt.Sprintf("[%s]", t.Priority.Label()),
		"#" + string(t.Category),
	}
	if t.HasDueDate() {
		meta = append(meta, "due "+timeutil.RelativeDate(t.DueDate, now))
	}
	meta = append(meta, fmt.Sprintf("%s/%s",
		timeutil.FormatDuration(t.ActualTimeMinutes),
		timeutil.FormatDuration(t.EstimatedTimeMinutes)))

	row := sb.String() + "  " + faintStyle.Render(strings.Join(meta, "  "))
	switch {
	case t.IsCompleted():
		row = faintStyle.Render(fmt.Sprintf("%2d. %s %s  done %s  %s",
			n, statusIcon(t.Status), t.Title,
			t.CompletedAt.Format(timeFormat),
			timeutil.FormatDuration(t.ActualTimeMinutes)))
	case timeutil.IsOverdue(t, now):
		row += " " + colorize(colorRed, "overdue")
	}
	if t.IsTimerRunning {
		row += "  " + timerStyle.Render("⏱ "+timeutil.FormatTime(int(elapsed.Seconds())))
	}
	return row
}

func renderDashboard(d views.Dashboard) string {
	return fmt.Sprintf("Today: %d done, %s tracked   Week: %d done   Pending: %d (%d in progress)   Streak: %dd",
		d.CompletedToday,
		timeutil.FormatDuration(d.MinutesToday),
		d.CompletedThisWeek,
		d.Pending,
		d.InProgress,
		d.Streak,
	)
}

func describeFilter(f views.Filter, s views.Sort) string {
	var parts []string
	if f.Category != "" {
		parts = append(parts, "#"+string(f.Category))
	}
	if f.Priority != 0 {
		parts = append(parts, fmt.Sprintf("!%d", f.Priority))
	}
	if f.Status != "" {
		parts = append(parts, "@"+string(f.Status))
	}
	filter := "all"
	if len(parts) > 0 {
		filter = strings.Join(parts, " ")
	}
	return fmt.Sprintf("filter: %s   sort: %s %s", filter, s.Field, s.Direction)
}

func renderCategoryStats(stats []views.CategoryStat) []string {
	if len(stats) == 0 {
		return []string{faintStyle.Render("no tracked time yet")}
	}
	most := 0
	for _, s := range stats {
		most = max(most, s.TotalMinutes)
	}
	lines := make([]string, 0, len(stats))
	for _, s := range stats {
		lines = append(lines, fmt.Sprintf("  %-9s %-8s %2d tasks  %s",
			s.Label, timeutil.FormatDuration(s.TotalMinutes), s.TaskCount, bar(s.TotalMinutes, most, 20)))
	}
	return lines
}

func renderWeekly(days []views.DayActivity) []string {
	most := 0
	for _, d := range days {
		most = max(most, d.Completed)
	}
	lines := make([]string, 0, len(days))
	for _, d := range days {
		lines = append(lines, fmt.Sprintf("  %s  %2d done  %-8s %s",
			d.Day, d.Completed, timeutil.FormatDuration(d.Minutes), bar(d.Completed, most, 20)))
	}
	return lines
}

func renderEstimates(points []views.EstimatePoint) []string {
	if len(points) == 0 {
		return []string{faintStyle.Render("complete a task to compare estimates")}
	}
	lines := make([]string, 0, len(points))
	for _, p := range points {
		diff := p.Actual - p.Estimated
		c := colorGreen
		if diff > 0 {
			c = colorRed
		}
		lines = append(lines, fmt.Sprintf("  %-18s est %-7s actual %-7s %s",
			p.Title,
			timeutil.FormatDuration(p.Estimated),
			timeutil.FormatDuration(p.Actual),
			colorize(c, fmt.Sprintf("%+dm", diff))))
	}
	return lines
}
