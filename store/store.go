// Package store owns the task collection and the single active timer. All
// mutation goes through Store; readers get copies.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/benjamonnguyen/daytrack"
	"github.com/benjamonnguyen/daytrack/clock"
	"github.com/benjamonnguyen/daytrack/views"
	"github.com/google/uuid"
)

type Options struct {
	Clock  clock.Clock
	Logger daytrack.Logger
	// Key overrides daytrack.TaskStorageKey.
	Key string
}

type Store struct {
	mu    sync.Mutex
	clock clock.Clock
	l     daytrack.Logger
	blobs daytrack.BlobStore
	key   string

	tasks             []daytrack.Task
	activeTimerTaskID uuid.UUID
}

// New returns an empty store. A nil blobs keeps everything in memory.
func New(blobs daytrack.BlobStore, opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = daytrack.NopLogger()
	}
	if opts.Key == "" {
		opts.Key = daytrack.TaskStorageKey
	}
	return &Store{
		clock: opts.Clock,
		l:     opts.Logger,
		blobs: blobs,
		key:   opts.Key,
	}
}

// Open rehydrates a store from blobs. Missing or unreadable snapshots yield an
// empty collection; only a failing backend is returned as an error.
func Open(ctx context.Context, blobs daytrack.BlobStore, opts Options) (*Store, error) {
	s := New(blobs, opts)
	if blobs == nil {
		return s, nil
	}

	data, err := blobs.Load(ctx, s.key)
	if err != nil {
		if errors.Is(err, daytrack.ErrNotFound) {
			s.l.Info("no saved tasks, starting empty", "key", s.key)
			return s, nil
		}
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	tasks, err := decodeSnapshot(data)
	if err != nil {
		s.l.Warn("discarding unreadable task snapshot", "key", s.key, "error", err)
		return s, nil
	}

	s.tasks = tasks
	repaired := s.normalize()
	if repaired > 0 {
		s.l.Warn("repaired inconsistent tasks on load", "count", repaired)
	}
	s.l.Debug("loaded tasks", "count", len(tasks), "activeTimer", s.activeTimerTaskID)
	return s, nil
}

// normalize restores the timer and completion invariants on freshly loaded
// tasks. The first running timer wins the active pointer.
func (s *Store) normalize() int {
	now := s.clock.Now()
	repaired := 0
	s.activeTimerTaskID = uuid.Nil
	for i := range s.tasks {
		t := &s.tasks[i]
		dirty := repairEnums(t)
		if t.IsTimerRunning != !t.TimerStartedAt.IsZero() {
			clearTimer(t)
			dirty = true
		}
		if t.IsCompleted() {
			if t.IsTimerRunning {
				clearTimer(t)
				dirty = true
			}
			if t.CompletedAt.IsZero() {
				t.CompletedAt = now
				dirty = true
			}
		} else if !t.CompletedAt.IsZero() {
			t.CompletedAt = time.Time{}
			dirty = true
		}
		if t.IsTimerRunning {
			if s.activeTimerTaskID == uuid.Nil {
				s.activeTimerTaskID = t.ID
			} else {
				clearTimer(t)
				dirty = true
			}
		}
		if t.ActualTimeMinutes < 0 {
			t.ActualTimeMinutes = 0
			dirty = true
		}
		if dirty {
			repaired++
		}
	}
	return repaired
}

// repairEnums resets unknown category, priority or status values to the
// defaults a new task gets. A task whose status is unknown but carries a
// completion time is treated as completed.
func repairEnums(t *daytrack.Task) bool {
	dirty := false
	if !t.Category.Valid() {
		t.Category = daytrack.CategoryWork
		dirty = true
	}
	if !t.Priority.Valid() {
		t.Priority = daytrack.PriorityMedium
		dirty = true
	}
	if !t.Status.Valid() {
		t.Status = daytrack.StatusPending
		if !t.CompletedAt.IsZero() {
			t.Status = daytrack.StatusCompleted
		}
		dirty = true
	}
	return dirty
}

// Add creates a task from d. Status defaults to pending.
func (s *Store) Add(ctx context.Context, d daytrack.TaskData) (daytrack.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	t := daytrack.Task{
		ID:                   uuid.New(),
		Title:                d.Title,
		Description:          d.Description,
		Category:             d.Category,
		Priority:             d.Priority,
		DueDate:              d.DueDate,
		Status:               d.Status,
		EstimatedTimeMinutes: d.EstimatedTimeMinutes,
		CreatedAt:            now,
	}
	if t.Status == "" {
		t.Status = daytrack.StatusPending
	}
	if t.IsCompleted() {
		t.CompletedAt = now
	}
	s.tasks = append(s.tasks, t)

	s.l.Debug("added task", "id", t.ID, "title", t.Title)
	return t, s.persist(ctx)
}

// Update merges p into the task with id. Unknown ids are ignored.
func (s *Store) Update(ctx context.Context, id uuid.UUID, p daytrack.TaskPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.find(id)
	if t == nil {
		s.l.Debug("update ignored, unknown task", "id", id)
		return nil
	}

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.ClearDueDate {
		t.DueDate = time.Time{}
	} else if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.EstimatedTimeMinutes != nil {
		t.EstimatedTimeMinutes = *p.EstimatedTimeMinutes
	}
	if p.Status != nil {
		s.setStatus(t, *p.Status, s.clock.Now())
	}
	// explicit edits win over minutes committed by a status change above
	if p.ActualTimeMinutes != nil {
		t.ActualTimeMinutes = max(0, *p.ActualTimeMinutes)
	}
	if p.CompletedAt != nil && t.IsCompleted() && !p.CompletedAt.IsZero() {
		t.CompletedAt = *p.CompletedAt
	}

	s.l.Debug("updated task", "id", id)
	return s.persist(ctx)
}

// Delete removes the task with id, releasing the active timer if it held it.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.l.Debug("delete ignored, unknown task", "id", id)
		return nil
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	if s.activeTimerTaskID == id {
		s.activeTimerTaskID = uuid.Nil
	}

	s.l.Debug("deleted task", "id", id)
	return s.persist(ctx)
}

// ToggleStatus advances the task along pending -> in-progress -> completed ->
// pending. Completing a task with a running timer commits the open session
// first.
func (s *Store) ToggleStatus(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.find(id)
	if t == nil {
		s.l.Debug("toggle ignored, unknown task", "id", id)
		return nil
	}
	prev := t.Status
	s.setStatus(t, t.Status.Next(), s.clock.Now())

	s.l.Debug("toggled task status", "id", id, "from", prev, "to", t.Status)
	return s.persist(ctx)
}

// StartTimer opens a timer session on id, stopping any other running timer
// and committing its elapsed time. The task moves to in-progress. Starting a
// timer that is already running keeps the current session.
func (s *Store) StartTimer(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.find(id)
	if t == nil {
		s.l.Debug("start timer ignored, unknown task", "id", id)
		return nil
	}
	if t.IsTimerRunning {
		return nil
	}

	now := s.clock.Now()
	if active := s.activeTimerTaskID; active != uuid.Nil && active != id {
		if other := s.find(active); other != nil {
			added := s.stopTimer(other, now)
			s.l.Debug("stopped previous timer", "id", active, "minutes", added)
		}
	}

	t.IsTimerRunning = true
	t.TimerStartedAt = now
	t.Status = daytrack.StatusInProgress
	t.CompletedAt = time.Time{}
	s.activeTimerTaskID = id

	s.l.Debug("started timer", "id", id)
	return s.persist(ctx)
}

// StopTimer closes the open session on id and adds its rounded minutes to the
// task's actual time. No-op if the task is unknown or has no open session.
func (s *Store) StopTimer(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.find(id)
	if t == nil || t.TimerStartedAt.IsZero() {
		return nil
	}
	added := s.stopTimer(t, s.clock.Now())

	s.l.Debug("stopped timer", "id", id, "minutes", added, "total", t.ActualTimeMinutes)
	return s.persist(ctx)
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []daytrack.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

func (s *Store) Task(id uuid.UUID) (daytrack.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.find(id); t != nil {
		return *t, true
	}
	return daytrack.Task{}, false
}

// ActiveTimerTaskID returns uuid.Nil when no timer is running.
func (s *Store) ActiveTimerTaskID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTimerTaskID
}

// Elapsed reports how long the open session on id has been running. It only
// reads state and is what a redraw tick should poll.
func (s *Store) Elapsed(id uuid.UUID) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.find(id)
	if t == nil || !t.IsTimerRunning {
		return 0
	}
	return max(0, s.clock.Now().Sub(t.TimerStartedAt))
}

// Now exposes the store's clock so views agree with timer accounting.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

func (s *Store) ByStatus(st daytrack.Status) []daytrack.Task {
	return views.WithStatus(s.Tasks(), st)
}

func (s *Store) ByCategory(c daytrack.Category) []daytrack.Task {
	return views.WithCategory(s.Tasks(), c)
}

func (s *Store) ByPriority(p daytrack.Priority) []daytrack.Task {
	return views.WithPriority(s.Tasks(), p)
}

// DueToday returns tasks due within [today 00:00, tomorrow 00:00).
func (s *Store) DueToday() []daytrack.Task {
	return views.DueOn(s.Tasks(), s.clock.Now())
}

func (s *Store) Completed() []daytrack.Task {
	return views.CompletedOnly(s.Tasks())
}

func (s *Store) setStatus(t *daytrack.Task, st daytrack.Status, now time.Time) {
	prev := t.Status
	t.Status = st
	if st != daytrack.StatusCompleted {
		t.CompletedAt = time.Time{}
		return
	}
	if prev != daytrack.StatusCompleted {
		if !t.TimerStartedAt.IsZero() {
			s.stopTimer(t, now)
		}
		t.CompletedAt = now
	}
}

// stopTimer commits the open session on t and returns the minutes added.
func (s *Store) stopTimer(t *daytrack.Task, now time.Time) int {
	minutes := 0
	if !t.TimerStartedAt.IsZero() {
		minutes = elapsedMinutes(t.TimerStartedAt, now)
		t.ActualTimeMinutes += minutes
	}
	clearTimer(t)
	if s.activeTimerTaskID == t.ID {
		s.activeTimerTaskID = uuid.Nil
	}
	return minutes
}

func elapsedMinutes(start, end time.Time) int {
	ms := end.Sub(start).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return int(math.Round(float64(ms) / 60000))
}

func clearTimer(t *daytrack.Task) {
	t.IsTimerRunning = false
	t.TimerStartedAt = time.Time{}
}

func (s *Store) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.tasks, func(t daytrack.Task) bool {
		return t.ID == id
	})
}

func (s *Store) find(id uuid.UUID) *daytrack.Task {
	if i := s.indexOf(id); i >= 0 {
		return &s.tasks[i]
	}
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	if s.blobs == nil {
		return nil
	}
	data, err := encodeSnapshot(s.tasks)
	if err != nil {
		s.l.Error("failed to encode tasks", "error", err)
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := s.blobs.Save(ctx, s.key, data); err != nil {
		s.l.Error("failed to save tasks", "key", s.key, "error", err)
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}
