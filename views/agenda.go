package views

import (
	"time"

	"github.com/benjamonnguyen/daytrack"
	"github.com/benjamonnguyen/daytrack/timeutil"
)

// Agenda splits incomplete tasks by due date relative to today.
type Agenda struct {
	Overdue  []daytrack.Task
	Today    []daytrack.Task
	Upcoming []daytrack.Task
}

// Partition builds the agenda. Upcoming covers [tomorrow 00:00, today+7 00:00).
// Incomplete tasks without a due date appear in no section.
func Partition(tasks []daytrack.Task, now time.Time) Agenda {
	today := timeutil.StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	nextWeek := today.AddDate(0, 0, 7)

	var a Agenda
	for _, t := range tasks {
		if t.IsCompleted() || !t.HasDueDate() {
			continue
		}
		due := t.DueDate.In(now.Location())
		switch {
		case timeutil.IsOverdue(t, now):
			a.Overdue = append(a.Overdue, t)
		case timeutil.SameDay(due, now, now.Location()):
			a.Today = append(a.Today, t)
		case !due.Before(tomorrow) && due.Before(nextWeek):
			a.Upcoming = append(a.Upcoming, t)
		}
	}
	return a
}
