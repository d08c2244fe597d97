package daytrack

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Task is a unit of trackable work. Zero time values mean "not set".
type Task struct {
	ID                   uuid.UUID
	Title                string
	Description          string
	Category             Category
	Priority             Priority
	DueDate              time.Time
	Status               Status
	EstimatedTimeMinutes int
	ActualTimeMinutes    int
	CreatedAt            time.Time
	CompletedAt          time.Time
	IsTimerRunning       bool
	TimerStartedAt       time.Time
}

func (t Task) HasDueDate() bool {
	return !t.DueDate.IsZero()
}

func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
)

var Categories = []Category{CategoryWork, CategoryPersonal, CategoryHealth, CategoryLearning}

func (c Category) Label() string {
	switch c {
	case CategoryWork:
		return "Work"
	case CategoryPersonal:
		return "Personal"
	case CategoryHealth:
		return "Health"
	case CategoryLearning:
		return "Learning"
	}
	return string(c)
}

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategoryLearning:
		return true
	}
	return false
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Priority ranks urgency; 1 is most urgent and sorts first.
type Priority int

const (
	PriorityUrgent Priority = iota + 1
	PriorityHigh
	PriorityMedium
	PriorityLow
)

func (p Priority) Label() string {
	switch p {
	case PriorityUrgent:
		return "Urgent"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	}
	return fmt.Sprintf("P%d", int(p))
}

func (p Priority) Valid() bool {
	return p >= PriorityUrgent && p <= PriorityLow
}

func ParsePriority(s string) (Priority, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid priority %q: %w", s, err)
	}
	p := Priority(n)
	if !p.Valid() {
		return 0, fmt.Errorf("priority must be 1-4, got %q", s)
	}
	return p, nil
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Done"
	}
	return string(s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Next follows the cycle pending -> in-progress -> completed -> pending.
func (s Status) Next() Status {
	switch s {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusPending
	}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}
