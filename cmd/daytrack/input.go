package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/benjamonnguyen/daytrack"
	"github.com/benjamonnguyen/daytrack/timeutil"
	"github.com/benjamonnguyen/daytrack/views"
	"github.com/google/uuid"
)

const (
	defaultCategory = daytrack.CategoryWork
	defaultPriority = daytrack.PriorityMedium
	defaultEstimate = 30
)

// taskFields holds what was typed after a command. Markers:
// #category !priority ^due ~estimate. Other words make up the title.
type taskFields struct {
	title    string
	category *daytrack.Category
	priority *daytrack.Priority
	due      *time.Time
	estimate *int
}

func parseFields(input string, now time.Time) (taskFields, error) {
	var f taskFields
	var words []string
	var errs []error
	for _, w := range strings.Fields(input) {
		if len(w) < 2 {
			words = append(words, w)
			continue
		}
		switch w[0] {
		case '#':
			c, err := daytrack.ParseCategory(strings.ToLower(w[1:]))
			if err != nil {
				errs = append(errs, err)
				continue
			}
			f.category = &c
		case '!':
			p, err := daytrack.ParsePriority(w[1:])
			if err != nil {
				errs = append(errs, err)
				continue
			}
			f.priority = &p
		case '^':
			d, err := parseDue(w[1:], now)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			f.due = &d
		case '~':
			n, err := strconv.Atoi(strings.TrimSuffix(w[1:], "m"))
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid estimate %q", w[1:]))
				continue
			}
			f.estimate = &n
		default:
			words = append(words, w)
		}
	}
	f.title = strings.Join(words, " ")
	return f, errors.Join(errs...)
}

// parseDue accepts today, tomorrow, +N (days from today) or YYYY-MM-DD.
func parseDue(s string, now time.Time) (time.Time, error) {
	today := timeutil.StartOfDay(now)
	switch strings.ToLower(s) {
	case "today":
		return today, nil
	case "tomorrow", "tmr":
		return today.AddDate(0, 0, 1), nil
	}
	if rest, ok := strings.CutPrefix(s, "+"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("invalid due offset %q", s)
		}
		return today.AddDate(0, 0, n), nil
	}
	d, err := time.ParseInLocation(time.DateOnly, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q: use today, tomorrow, +N or YYYY-MM-DD", s)
	}
	return d, nil
}

func taskDataFromInput(input string, now time.Time) (daytrack.TaskData, error) {
	f, err := parseFields(input, now)
	if err != nil {
		return daytrack.TaskData{}, err
	}
	d := daytrack.TaskData{
		Title:                f.title,
		Category:             defaultCategory,
		Priority:             defaultPriority,
		Status:               daytrack.StatusPending,
		EstimatedTimeMinutes: defaultEstimate,
	}
	if f.category != nil {
		d.Category = *f.category
	}
	if f.priority != nil {
		d.Priority = *f.priority
	}
	if f.due != nil {
		d.DueDate = *f.due
	}
	if f.estimate != nil {
		d.EstimatedTimeMinutes = *f.estimate
	}
	return d, daytrack.ValidateTaskData(d)
}

// patchFromInput only sets what was typed. "^none" clears the due date.
func patchFromInput(input string, now time.Time) (daytrack.TaskPatch, error) {
	var p daytrack.TaskPatch
	var rest []string
	for _, w := range strings.Fields(input) {
		if strings.EqualFold(w, "^none") {
			p.ClearDueDate = true
			continue
		}
		rest = append(rest, w)
	}
	f, err := parseFields(strings.Join(rest, " "), now)
	if err != nil {
		return daytrack.TaskPatch{}, err
	}
	if f.title != "" {
		p.Title = &f.title
	}
	p.Category = f.category
	p.Priority = f.priority
	p.DueDate = f.due
	p.EstimatedTimeMinutes = f.estimate
	if p == (daytrack.TaskPatch{}) {
		return p, errors.New("nothing to change")
	}
	return p, daytrack.ValidatePatch(p)
}

// parseRow resolves the leading row number of arg against rows and returns
// the rest of arg.
func parseRow(arg string, rows []uuid.UUID) (uuid.UUID, string, error) {
	num, rest, _ := strings.Cut(strings.TrimSpace(arg), " ")
	n, err := strconv.Atoi(num)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("expected a task number, got %q", num)
	}
	if n < 1 || n > len(rows) {
		return uuid.Nil, "", fmt.Errorf("no task %d", n)
	}
	return rows[n-1], strings.TrimSpace(rest), nil
}

// parseFilter reads #category !priority @status and +field / -field for
// ascending or descending sort. Empty input resets both.
func parseFilter(input string) (views.Filter, views.Sort, error) {
	f := views.Filter{}
	s := views.DefaultSort
	var errs []error
	for _, w := range strings.Fields(input) {
		if len(w) < 2 {
			errs = append(errs, fmt.Errorf("unknown filter %q", w))
			continue
		}
		var err error
		switch w[0] {
		case '#':
			f.Category, err = daytrack.ParseCategory(strings.ToLower(w[1:]))
		case '!':
			f.Priority, err = daytrack.ParsePriority(w[1:])
		case '@':
			f.Status, err = daytrack.ParseStatus(strings.ToLower(w[1:]))
		case '+', '-':
			field, ok := views.ParseSortField(w[1:])
			if !ok {
				err = fmt.Errorf("unknown sort field %q", w[1:])
				break
			}
			s = views.Sort{Field: field, Direction: views.Asc}
			if w[0] == '-' {
				s.Direction = views.Desc
			}
		default:
			err = fmt.Errorf("unknown filter %q", w)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return views.Filter{}, views.Sort{}, err
	}
	return f, s, nil
}
