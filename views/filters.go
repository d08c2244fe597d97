// Package views computes read-only projections over a snapshot of tasks.
// Every function is pure: it takes the tasks and the current time and never
// mutates its input.
package views

import (
	"cmp"
	"slices"
	"time"

	"github.com/benjamonnguyen/daytrack"
	"github.com/benjamonnguyen/daytrack/timeutil"
)

func where(tasks []daytrack.Task, keep func(daytrack.Task) bool) []daytrack.Task {
	var out []daytrack.Task
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func WithStatus(tasks []daytrack.Task, s daytrack.Status) []daytrack.Task {
	return where(tasks, func(t daytrack.Task) bool { return t.Status == s })
}

func WithCategory(tasks []daytrack.Task, c daytrack.Category) []daytrack.Task {
	return where(tasks, func(t daytrack.Task) bool { return t.Category == c })
}

func WithPriority(tasks []daytrack.Task, p daytrack.Priority) []daytrack.Task {
	return where(tasks, func(t daytrack.Task) bool { return t.Priority == p })
}

func CompletedOnly(tasks []daytrack.Task) []daytrack.Task {
	return WithStatus(tasks, daytrack.StatusCompleted)
}

// DueOn returns tasks due within [day 00:00, next day 00:00) in day's location.
func DueOn(tasks []daytrack.Task, day time.Time) []daytrack.Task {
	start := timeutil.StartOfDay(day)
	end := start.AddDate(0, 0, 1)
	return where(tasks, func(t daytrack.Task) bool {
		return t.HasDueDate() && !t.DueDate.Before(start) && t.DueDate.Before(end)
	})
}

// Filter narrows tasks by equality. A zero field means "all".
type Filter struct {
	Category daytrack.Category
	Priority daytrack.Priority
	Status   daytrack.Status
}

func (f Filter) IsZero() bool {
	return f == Filter{}
}

func (f Filter) match(t daytrack.Task) bool {
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Priority != 0 && t.Priority != f.Priority {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	return true
}

type SortField string

const (
	SortByPriority  SortField = "priority"
	SortByDueDate   SortField = "dueDate"
	SortByCreatedAt SortField = "createdAt"
)

func ParseSortField(s string) (SortField, bool) {
	switch f := SortField(s); f {
	case SortByPriority, SortByDueDate, SortByCreatedAt:
		return f, true
	}
	return "", false
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sort struct {
	Field     SortField
	Direction Direction
}

// DefaultSort matches the task list's initial ordering.
var DefaultSort = Sort{Field: SortByPriority, Direction: Asc}

// FilterSort applies f and orders the result by s. The sort is stable, so
// ties keep insertion order. Tasks without a due date stay after dated tasks
// in both directions when sorting by due date.
func FilterSort(tasks []daytrack.Task, f Filter, s Sort) []daytrack.Task {
	out := where(tasks, f.match)
	sign := 1
	if s.Direction == Desc {
		sign = -1
	}

	slices.SortStableFunc(out, func(a, b daytrack.Task) int {
		switch s.Field {
		case SortByDueDate:
			switch {
			case !a.HasDueDate() && !b.HasDueDate():
				return 0
			case !a.HasDueDate():
				return 1
			case !b.HasDueDate():
				return -1
			}
			return sign * a.DueDate.Compare(b.DueDate)
		case SortByCreatedAt:
			return sign * a.CreatedAt.Compare(b.CreatedAt)
		default:
			return sign * cmp.Compare(a.Priority, b.Priority)
		}
	})
	return out
}
