package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/benjamonnguyen/daytrack"
	"github.com/benjamonnguyen/daytrack/store"
	"github.com/benjamonnguyen/daytrack/timeutil"
	"github.com/benjamonnguyen/daytrack/views"
	"github.com/google/uuid"
)

type controller struct {
	store *store.Store
	l     daytrack.Logger
}

func newRouter(c *controller) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", c.ListTasks)
	mux.HandleFunc("POST /tasks", c.CreateTask)
	mux.HandleFunc("GET /tasks/{id}", c.GetTask)
	mux.HandleFunc("PATCH /tasks/{id}", c.PatchTask)
	mux.HandleFunc("DELETE /tasks/{id}", c.DeleteTask)
	mux.HandleFunc("POST /tasks/{id}/toggle", c.ToggleTask)
	mux.HandleFunc("POST /tasks/{id}/timer/start", c.StartTimer)
	mux.HandleFunc("POST /tasks/{id}/timer/stop", c.StopTimer)
	mux.HandleFunc("GET /timer", c.ActiveTimer)
	mux.HandleFunc("GET /views/agenda", c.Agenda)
	mux.HandleFunc("GET /views/dashboard", c.Dashboard)
	mux.HandleFunc("GET /views/categories", c.Categories)
	mux.HandleFunc("GET /views/weekly", c.Weekly)
	mux.HandleFunc("GET /views/estimates", c.Estimates)
	mux.HandleFunc("GET /views/streak", c.Streak)
	return c.logRequests(mux)
}

func (c *controller) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		c.l.Debug("handled request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

// ListTasks accepts category, priority, status, sort and dir query params.
func (c *controller) ListTasks(w http.ResponseWriter, r *http.Request) {
	f, s, err := parseListQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c.writeJSON(w, http.StatusOK, mapToTaskResponses(views.FilterSort(c.store.Tasks(), f, s)))
}

func parseListQuery(r *http.Request) (views.Filter, views.Sort, error) {
	q := r.URL.Query()
	var f views.Filter
	var errs []error
	if v := q.Get("category"); v != "" {
		c, err := daytrack.ParseCategory(v)
		errs = append(errs, err)
		f.Category = c
	}
	if v := q.Get("priority"); v != "" {
		p, err := daytrack.ParsePriority(v)
		errs = append(errs, err)
		f.Priority = p
	}
	if v := q.Get("status"); v != "" {
		st, err := daytrack.ParseStatus(v)
		errs = append(errs, err)
		f.Status = st
	}

	s := views.DefaultSort
	if v := q.Get("sort"); v != "" {
		field, ok := views.ParseSortField(v)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown sort field %q", v))
		}
		s.Field = field
	}
	switch dir := views.Direction(q.Get("dir")); dir {
	case "":
	case views.Asc, views.Desc:
		s.Direction = dir
	default:
		errs = append(errs, fmt.Errorf("dir must be %q or %q", views.Asc, views.Desc))
	}
	return f, s, errors.Join(errs...)
}

func (c *controller) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	d := req.TaskData()
	if err := daytrack.ValidateTaskData(d); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := c.store.Add(r.Context(), d)
	if err != nil {
		c.persistFailed(w, err)
		return
	}
	c.writeJSON(w, http.StatusCreated, mapToTaskResponse(t))
}

func (c *controller) GetTask(w http.ResponseWriter, r *http.Request) {
	t, ok := c.lookup(w, r)
	if !ok {
		return
	}
	c.writeJSON(w, http.StatusOK, mapToTaskResponse(t))
}

func (c *controller) PatchTask(w http.ResponseWriter, r *http.Request) {
	t, ok := c.lookup(w, r)
	if !ok {
		return
	}
	var req PatchTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	p := req.TaskPatch()
	if err := daytrack.ValidatePatch(p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c.mutateAndRespond(w, r, t.ID, func(ctx context.Context) error {
		return c.store.Update(ctx, t.ID, p)
	})
}

func (c *controller) DeleteTask(w http.ResponseWriter, r *http.Request) {
	t, ok := c.lookup(w, r)
	if !ok {
		return
	}
	if err := c.store.Delete(r.Context(), t.ID); err != nil {
		c.persistFailed(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *controller) ToggleTask(w http.ResponseWriter, r *http.Request) {
	t, ok := c.lookup(w, r)
	if !ok {
		return
	}
	c.mutateAndRespond(w, r, t.ID, func(ctx context.Context) error {
		return c.store.ToggleStatus(ctx, t.ID)
	})
}

func (c *controller) StartTimer(w http.ResponseWriter, r *http.Request) {
	t, ok := c.lookup(w, r)
	if !ok {
		return
	}
	c.mutateAndRespond(w, r, t.ID, func(ctx context.Context) error {
		return c.store.StartTimer(ctx, t.ID)
	})
}

func (c *controller) StopTimer(w http.ResponseWriter, r *http.Request) {
	t, ok := c.lookup(w, r)
	if !ok {
		return
	}
	c.mutateAndRespond(w, r, t.ID, func(ctx context.Context) error {
		return c.store.StopTimer(ctx, t.ID)
	})
}

func (c *controller) ActiveTimer(w http.ResponseWriter, _ *http.Request) {
	id := c.store.ActiveTimerTaskID()
	if id == uuid.Nil {
		c.writeJSON(w, http.StatusOK, TimerResponse{Elapsed: timeutil.FormatTime(0)})
		return
	}
	secs := int(c.store.Elapsed(id).Seconds())
	c.writeJSON(w, http.StatusOK, TimerResponse{
		TaskID:         id.String(),
		Running:        true,
		ElapsedSeconds: secs,
		Elapsed:        timeutil.FormatTime(secs),
	})
}

func (c *controller) Agenda(w http.ResponseWriter, _ *http.Request) {
	c.writeJSON(w, http.StatusOK, mapToAgendaResponse(views.Partition(c.store.Tasks(), c.store.Now())))
}

func (c *controller) Dashboard(w http.ResponseWriter, _ *http.Request) {
	d := views.Summarize(c.store.Tasks(), c.store.Now())
	c.writeJSON(w, http.StatusOK, DashboardResponse(d))
}

func (c *controller) Categories(w http.ResponseWriter, _ *http.Request) {
	stats := views.ByCategory(c.store.Tasks())
	res := make([]CategoryStatResponse, 0, len(stats))
	for _, s := range stats {
		res = append(res, CategoryStatResponse{
			Category:     string(s.Category),
			Label:        s.Label,
			TotalMinutes: s.TotalMinutes,
			TaskCount:    s.TaskCount,
		})
	}
	c.writeJSON(w, http.StatusOK, res)
}

func (c *controller) Weekly(w http.ResponseWriter, _ *http.Request) {
	days := views.WeeklyActivity(c.store.Tasks(), c.store.Now())
	res := make([]DayActivityResponse, 0, len(days))
	for _, d := range days {
		res = append(res, DayActivityResponse{
			Date:      d.Date.Format(time.DateOnly),
			Day:       d.Day,
			Completed: d.Completed,
			Minutes:   d.Minutes,
		})
	}
	c.writeJSON(w, http.StatusOK, res)
}

func (c *controller) Estimates(w http.ResponseWriter, _ *http.Request) {
	points := views.EstimateVsActual(c.store.Tasks())
	res := make([]EstimateResponse, 0, len(points))
	for _, p := range points {
		res = append(res, EstimateResponse(p))
	}
	c.writeJSON(w, http.StatusOK, res)
}

func (c *controller) Streak(w http.ResponseWriter, _ *http.Request) {
	c.writeJSON(w, http.StatusOK, StreakResponse{Days: views.Streak(c.store.Tasks(), c.store.Now())})
}

// lookup resolves the {id} path value. It writes the error response itself
// and reports false when the task cannot be served.
func (c *controller) lookup(w http.ResponseWriter, r *http.Request) (daytrack.Task, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid task id: "+err.Error(), http.StatusBadRequest)
		return daytrack.Task{}, false
	}
	t, ok := c.store.Task(id)
	if !ok {
		http.Error(w, "Task not found", http.StatusNotFound)
		return daytrack.Task{}, false
	}
	return t, true
}

func (c *controller) mutateAndRespond(w http.ResponseWriter, r *http.Request, id uuid.UUID, op func(context.Context) error) {
	if err := op(r.Context()); err != nil {
		c.persistFailed(w, err)
		return
	}
	t, ok := c.store.Task(id)
	if !ok {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	c.writeJSON(w, http.StatusOK, mapToTaskResponse(t))
}

// persistFailed reports a change that was applied in memory but not saved.
func (c *controller) persistFailed(w http.ResponseWriter, err error) {
	c.l.Error("failed to persist", "error", err)
	http.Error(w, "Failed to save tasks: "+err.Error(), http.StatusInternalServerError)
}

func (c *controller) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		c.l.Error("failed to encode response", "error", err)
	}
}
