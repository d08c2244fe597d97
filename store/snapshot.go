package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/benjamonnguyen/daytrack"
	"github.com/google/uuid"
)

// snapshotVersion is bumped whenever taskEntity changes shape. decodeSnapshot
// rejects versions it does not know.
const snapshotVersion = 1

type snapshot struct {
	Version int          `json:"version"`
	Tasks   []taskEntity `json:"tasks"`
}

// taskEntity is the persisted form of a task. Dates are RFC 3339 text and
// absent dates are null.
type taskEntity struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Category             string     `json:"category"`
	Priority             int        `json:"priority"`
	DueDate              *time.Time `json:"dueDate"`
	Status               string     `json:"status"`
	EstimatedTimeMinutes int        `json:"estimatedTimeMinutes"`
	ActualTimeMinutes    int        `json:"actualTimeMinutes"`
	CreatedAt            time.Time  `json:"createdAt"`
	CompletedAt          *time.Time `json:"completedAt"`
	IsTimerRunning       bool       `json:"isTimerRunning"`
	TimerStartedAt       *time.Time `json:"timerStartedAt"`
}

func encodeSnapshot(tasks []daytrack.Task) ([]byte, error) {
	s := snapshot{
		Version: snapshotVersion,
		Tasks:   make([]taskEntity, 0, len(tasks)),
	}
	for _, t := range tasks {
		s.Tasks = append(s.Tasks, mapToTaskEntity(t))
	}
	return json.Marshal(s)
}

func decodeSnapshot(data []byte) ([]daytrack.Task, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}

	tasks := make([]daytrack.Task, 0, len(s.Tasks))
	for _, e := range s.Tasks {
		t, err := mapToTask(e)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func mapToTaskEntity(t daytrack.Task) taskEntity {
	return taskEntity{
		ID:                   t.ID.String(),
		Title:                t.Title,
		Description:          t.Description,
		Category:             string(t.Category),
		Priority:             int(t.Priority),
		DueDate:              nullableTime(t.DueDate),
		Status:               string(t.Status),
		EstimatedTimeMinutes: t.EstimatedTimeMinutes,
		ActualTimeMinutes:    t.ActualTimeMinutes,
		CreatedAt:            t.CreatedAt,
		CompletedAt:          nullableTime(t.CompletedAt),
		IsTimerRunning:       t.IsTimerRunning,
		TimerStartedAt:       nullableTime(t.TimerStartedAt),
	}
}

func mapToTask(e taskEntity) (daytrack.Task, error) {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return daytrack.Task{}, fmt.Errorf("invalid task id %q: %w", e.ID, err)
	}
	return daytrack.Task{
		ID:                   id,
		Title:                e.Title,
		Description:          e.Description,
		Category:             daytrack.Category(e.Category),
		Priority:             daytrack.Priority(e.Priority),
		DueDate:              localTime(e.DueDate),
		Status:               daytrack.Status(e.Status),
		EstimatedTimeMinutes: e.EstimatedTimeMinutes,
		ActualTimeMinutes:    e.ActualTimeMinutes,
		CreatedAt:            e.CreatedAt.Local(),
		CompletedAt:          localTime(e.CompletedAt),
		IsTimerRunning:       e.IsTimerRunning,
		TimerStartedAt:       localTime(e.TimerStartedAt),
	}, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func localTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.Local()
}
