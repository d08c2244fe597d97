package main

import (
	"time"

	"github.com/benjamonnguyen/daytrack"
	"github.com/benjamonnguyen/daytrack/views"
)

type TaskResponse struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Category             string     `json:"category"`
	Priority             int        `json:"priority"`
	DueDate              *time.Time `json:"dueDate"`
	Status               string     `json:"status"`
	EstimatedTimeMinutes int        `json:"estimatedTime"`
	ActualTimeMinutes    int        `json:"actualTime"`
	CreatedAt            time.Time  `json:"createdAt"`
	CompletedAt          *time.Time `json:"completedAt"`
	IsTimerRunning       bool       `json:"isTimerRunning"`
	TimerStartedAt       *time.Time `json:"timerStartedAt"`
}

func mapToTaskResponse(t daytrack.Task) TaskResponse {
	return TaskResponse{
		ID:                   t.ID.String(),
		Title:                t.Title,
		Description:          t.Description,
		Category:             string(t.Category),
		Priority:             int(t.Priority),
		DueDate:              optionalTime(t.DueDate),
		Status:               string(t.Status),
		EstimatedTimeMinutes: t.EstimatedTimeMinutes,
		ActualTimeMinutes:    t.ActualTimeMinutes,
		CreatedAt:            t.CreatedAt,
		CompletedAt:          optionalTime(t.CompletedAt),
		IsTimerRunning:       t.IsTimerRunning,
		TimerStartedAt:       optionalTime(t.TimerStartedAt),
	}
}

func mapToTaskResponses(tasks []daytrack.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, mapToTaskResponse(t))
	}
	return out
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

type CreateTaskRequest struct {
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Category             string     `json:"category"`
	Priority             int        `json:"priority"`
	DueDate              *time.Time `json:"dueDate"`
	Status               string     `json:"status"`
	EstimatedTimeMinutes int        `json:"estimatedTime"`
}

func (r CreateTaskRequest) TaskData() daytrack.TaskData {
	d := daytrack.TaskData{
		Title:                r.Title,
		Description:          r.Description,
		Category:             daytrack.Category(r.Category),
		Priority:             daytrack.Priority(r.Priority),
		Status:               daytrack.Status(r.Status),
		EstimatedTimeMinutes: r.EstimatedTimeMinutes,
	}
	if r.DueDate != nil {
		d.DueDate = *r.DueDate
	}
	return d
}

// PatchTaskRequest only changes the fields present in the body.
type PatchTaskRequest struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	Category             *string    `json:"category"`
	Priority             *int       `json:"priority"`
	DueDate              *time.Time `json:"dueDate"`
	ClearDueDate         bool       `json:"clearDueDate"`
	Status               *string    `json:"status"`
	EstimatedTimeMinutes *int       `json:"estimatedTime"`
	ActualTimeMinutes    *int       `json:"actualTime"`
	CompletedAt          *time.Time `json:"completedAt"`
}

func (r PatchTaskRequest) TaskPatch() daytrack.TaskPatch {
	p := daytrack.TaskPatch{
		Title:                r.Title,
		Description:          r.Description,
		DueDate:              r.DueDate,
		ClearDueDate:         r.ClearDueDate,
		EstimatedTimeMinutes: r.EstimatedTimeMinutes,
		ActualTimeMinutes:    r.ActualTimeMinutes,
		CompletedAt:          r.CompletedAt,
	}
	if r.Category != nil {
		c := daytrack.Category(*r.Category)
		p.Category = &c
	}
	if r.Priority != nil {
		pr := daytrack.Priority(*r.Priority)
		p.Priority = &pr
	}
	if r.Status != nil {
		s := daytrack.Status(*r.Status)
		p.Status = &s
	}
	return p
}

type TimerResponse struct {
	TaskID         string `json:"taskId,omitempty"`
	Running        bool   `json:"running"`
	ElapsedSeconds int    `json:"elapsedSeconds"`
	Elapsed        string `json:"elapsed"`
}

type AgendaResponse struct {
	Overdue  []TaskResponse `json:"overdue"`
	Today    []TaskResponse `json:"today"`
	Upcoming []TaskResponse `json:"upcoming"`
}

func mapToAgendaResponse(a views.Agenda) AgendaResponse {
	return AgendaResponse{
		Overdue:  mapToTaskResponses(a.Overdue),
		Today:    mapToTaskResponses(a.Today),
		Upcoming: mapToTaskResponses(a.Upcoming),
	}
}

type DashboardResponse struct {
	CompletedToday    int `json:"completedToday"`
	CompletedThisWeek int `json:"completedThisWeek"`
	MinutesToday      int `json:"minutesToday"`
	Pending           int `json:"pending"`
	InProgress        int `json:"inProgress"`
	Streak            int `json:"streak"`
}

type CategoryStatResponse struct {
	Category     string `json:"category"`
	Label        string `json:"label"`
	TotalMinutes int    `json:"totalMinutes"`
	TaskCount    int    `json:"taskCount"`
}

type DayActivityResponse struct {
	Date      string `json:"date"`
	Day       string `json:"day"`
	Completed int    `json:"completed"`
	Minutes   int    `json:"minutes"`
}

type EstimateResponse struct {
	Title     string `json:"title"`
	Estimated int    `json:"estimated"`
	Actual    int    `json:"actual"`
}

type StreakResponse struct {
	Days int `json:"days"`
}
