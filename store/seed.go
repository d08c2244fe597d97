package store

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/benjamonnguyen/daytrack"
	"github.com/google/uuid"
)

type sample struct {
	data      daytrack.TaskData
	dueInDays int
	undated   bool
}

var samples = []sample{
	{data: daytrack.TaskData{Title: "Review quarterly roadmap", Description: "Go through last quarter's outcomes and draft priorities", Category: daytrack.CategoryWork, Priority: daytrack.PriorityUrgent, Status: daytrack.StatusInProgress, EstimatedTimeMinutes: 90}},
	{data: daytrack.TaskData{Title: "Morning run", Description: "5k easy pace", Category: daytrack.CategoryHealth, Priority: daytrack.PriorityHigh, Status: daytrack.StatusCompleted, EstimatedTimeMinutes: 40}},
	{data: daytrack.TaskData{Title: "Finish Go concurrency chapter", Description: "Channels, select and context cancellation", Category: daytrack.CategoryLearning, Priority: daytrack.PriorityHigh, Status: daytrack.StatusPending, EstimatedTimeMinutes: 60}, dueInDays: 1},
	{data: daytrack.TaskData{Title: "Call the dentist", Description: "Reschedule the cleaning appointment", Category: daytrack.CategoryPersonal, Priority: daytrack.PriorityUrgent, Status: daytrack.StatusPending, EstimatedTimeMinutes: 15}},
	{data: daytrack.TaskData{Title: "Prepare design review slides", Description: "Storage layer proposal and open questions", Category: daytrack.CategoryWork, Priority: daytrack.PriorityUrgent, Status: daytrack.StatusPending, EstimatedTimeMinutes: 120}, dueInDays: 2},
	{data: daytrack.TaskData{Title: "Weekly groceries", Description: "Vegetables, fruit, coffee", Category: daytrack.CategoryPersonal, Priority: daytrack.PriorityMedium, Status: daytrack.StatusPending, EstimatedTimeMinutes: 45}, dueInDays: 1},
	{data: daytrack.TaskData{Title: "Team standup", Description: "Daily sync", Category: daytrack.CategoryWork, Priority: daytrack.PriorityHigh, Status: daytrack.StatusCompleted, EstimatedTimeMinutes: 15}},
	{data: daytrack.TaskData{Title: "Read two chapters", Description: "Pick up where I left off", Category: daytrack.CategoryLearning, Priority: daytrack.PriorityLow, Status: daytrack.StatusPending, EstimatedTimeMinutes: 30}, dueInDays: 3},
	{data: daytrack.TaskData{Title: "Sort out photo backups", Category: daytrack.CategoryPersonal, Priority: daytrack.PriorityLow, Status: daytrack.StatusPending, EstimatedTimeMinutes: 60}, undated: true},
}

// Seed fills an empty store with sample tasks. Completed samples get a
// completion time of now and an actual time within 20% of their estimate.
// It reports whether anything was added.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) > 0 {
		return false, nil
	}

	now := s.clock.Now()
	for _, smp := range samples {
		t := daytrack.Task{
			ID:                   uuid.New(),
			Title:                smp.data.Title,
			Description:          smp.data.Description,
			Category:             smp.data.Category,
			Priority:             smp.data.Priority,
			Status:               smp.data.Status,
			EstimatedTimeMinutes: smp.data.EstimatedTimeMinutes,
			CreatedAt:            now,
		}
		if !smp.undated {
			t.DueDate = now.AddDate(0, 0, smp.dueInDays)
		}
		if t.IsCompleted() {
			t.CompletedAt = now
			t.ActualTimeMinutes = int(math.Round(float64(t.EstimatedTimeMinutes) * (0.8 + rand.Float64()*0.4)))
		}
		s.tasks = append(s.tasks, t)
	}

	s.l.Info("seeded sample tasks", "count", len(samples))
	return true, s.persist(ctx)
}
