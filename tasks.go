package daytrack

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MinEstimateMinutes = 1
	MaxEstimateMinutes = 480
)

// TaskData is everything a caller supplies when creating a task. The
// remaining fields are initialized by the store.
type TaskData struct {
	Title                string
	Description          string
	Category             Category
	Priority             Priority
	DueDate              time.Time
	Status               Status
	EstimatedTimeMinutes int
}

// TaskPatch holds the fields to merge into an existing task. Nil fields are
// left untouched. Timer fields can only change through the timer operations.
type TaskPatch struct {
	Title                *string
	Description          *string
	Category             *Category
	Priority             *Priority
	DueDate              *time.Time
	ClearDueDate         bool
	Status               *Status
	EstimatedTimeMinutes *int
	ActualTimeMinutes    *int
	CompletedAt          *time.Time
}

// ValidateTaskData checks the form input contract. The store does not call
// it; callers building TaskData from user input do.
func ValidateTaskData(d TaskData) error {
	var errs []error
	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if !d.Category.Valid() {
		errs = append(errs, fmt.Errorf("unknown category %q", d.Category))
	}
	if !d.Priority.Valid() {
		errs = append(errs, fmt.Errorf("priority must be 1-4, got %d", d.Priority))
	}
	if d.Status != "" && !d.Status.Valid() {
		errs = append(errs, fmt.Errorf("unknown status %q", d.Status))
	}
	if d.EstimatedTimeMinutes < MinEstimateMinutes || d.EstimatedTimeMinutes > MaxEstimateMinutes {
		errs = append(errs, fmt.Errorf("estimate must be %d-%d minutes, got %d",
			MinEstimateMinutes, MaxEstimateMinutes, d.EstimatedTimeMinutes))
	}
	return errors.Join(errs...)
}

// ValidatePatch applies the same contract to the fields a patch sets.
func ValidatePatch(p TaskPatch) error {
	var errs []error
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if p.Category != nil && !p.Category.Valid() {
		errs = append(errs, fmt.Errorf("unknown category %q", *p.Category))
	}
	if p.Priority != nil && !p.Priority.Valid() {
		errs = append(errs, fmt.Errorf("priority must be 1-4, got %d", *p.Priority))
	}
	if p.Status != nil && !p.Status.Valid() {
		errs = append(errs, fmt.Errorf("unknown status %q", *p.Status))
	}
	if p.EstimatedTimeMinutes != nil &&
		(*p.EstimatedTimeMinutes < MinEstimateMinutes || *p.EstimatedTimeMinutes > MaxEstimateMinutes) {
		errs = append(errs, fmt.Errorf("estimate must be %d-%d minutes, got %d",
			MinEstimateMinutes, MaxEstimateMinutes, *p.EstimatedTimeMinutes))
	}
	if p.ActualTimeMinutes != nil && *p.ActualTimeMinutes < 0 {
		errs = append(errs, fmt.Errorf("actual time cannot be negative, got %d", *p.ActualTimeMinutes))
	}
	return errors.Join(errs...)
}
