package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benjamonnguyen/daytrack"
	"github.com/benjamonnguyen/daytrack/clock"
	"github.com/benjamonnguyen/daytrack/store"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

type failingBlobs struct{}

func (failingBlobs) Load(context.Context, string) ([]byte, error) { return nil, daytrack.ErrNotFound }
func (failingBlobs) Save(context.Context, string, []byte) error  { return errors.New("disk full") }

func newTestServer(t *testing.T, blobs daytrack.BlobStore) (*httptest.Server, *store.Store, *clock.FakeClock) {
	t.Helper()
	c := clock.Fake(now)
	st := store.New(blobs, store.Options{Clock: c})
	srv := httptest.NewServer(newRouter(&controller{store: st, l: daytrack.NopLogger()}))
	t.Cleanup(srv.Close)
	return srv, st, c
}

func do(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close() //nolint:errcheck
	if out != nil && res.StatusCode < 300 && res.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return res.StatusCode
}

func createTask(t *testing.T, srv *httptest.Server, title string, priority int) TaskResponse {
	t.Helper()
	var res TaskResponse
	code := do(t, http.MethodPost, srv.URL+"/tasks", CreateTaskRequest{
		Title:                title,
		Category:             "work",
		Priority:             priority,
		EstimatedTimeMinutes: 30,
	}, &res)
	if code != http.StatusCreated {
		t.Fatalf("create %q: status %d", title, code)
	}
	return res
}

func TestCreateAndList(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)
	createTask(t, srv, "low", 4)
	urgent := createTask(t, srv, "urgent", 1)
	if urgent.Status != string(daytrack.StatusPending) || urgent.DueDate != nil {
		t.Fatalf("unexpected defaults %+v", urgent)
	}

	var list []TaskResponse
	if code := do(t, http.MethodGet, srv.URL+"/tasks", nil, &list); code != http.StatusOK {
		t.Fatalf("list: status %d", code)
	}
	if len(list) != 2 || list[0].Title != "urgent" {
		t.Fatalf("expected priority order, got %+v", list)
	}

	if code := do(t, http.MethodGet, srv.URL+"/tasks?sort=priority&dir=desc", nil, &list); code != http.StatusOK {
		t.Fatalf("list desc: status %d", code)
	}
	if list[0].Title != "low" {
		t.Fatalf("expected low first, got %q", list[0].Title)
	}

	if code := do(t, http.MethodGet, srv.URL+"/tasks?category=chores", nil, nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad category, got %d", code)
	}
}

func TestCreate_Validation(t *testing.T) {
	srv, st, _ := newTestServer(t, nil)
	code := do(t, http.MethodPost, srv.URL+"/tasks", CreateTaskRequest{Title: " ", Category: "work", Priority: 2, EstimatedTimeMinutes: 30}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if len(st.Tasks()) != 0 {
		t.Fatal("invalid task was stored")
	}
}

func TestPatchToggleDelete(t *testing.T) {
	srv, st, _ := newTestServer(t, nil)
	task := createTask(t, srv, "draft", 2)
	url := srv.URL + "/tasks/" + task.ID

	title := "final"
	var patched TaskResponse
	if code := do(t, http.MethodPatch, url, PatchTaskRequest{Title: &title}, &patched); code != http.StatusOK {
		t.Fatalf("patch: status %d", code)
	}
	if patched.Title != "final" || patched.Priority != 2 {
		t.Fatalf("patch not merged: %+v", patched)
	}

	bad := 0
	if code := do(t, http.MethodPatch, url, PatchTaskRequest{EstimatedTimeMinutes: &bad}, nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad estimate, got %d", code)
	}

	var toggled TaskResponse
	do(t, http.MethodPost, url+"/toggle", nil, &toggled)
	do(t, http.MethodPost, url+"/toggle", nil, &toggled)
	if toggled.Status != string(daytrack.StatusCompleted) || toggled.CompletedAt == nil {
		t.Fatalf("expected completed with timestamp, got %+v", toggled)
	}

	if code := do(t, http.MethodDelete, url, nil, nil); code != http.StatusNoContent {
		t.Fatalf("delete: status %d", code)
	}
	if len(st.Tasks()) != 0 {
		t.Fatal("task not deleted")
	}
	if code := do(t, http.MethodGet, url, nil, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", code)
	}
	if code := do(t, http.MethodGet, srv.URL+"/tasks/not-a-uuid", nil, nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", code)
	}
}

func TestTimerEndpoints(t *testing.T) {
	srv, _, c := newTestServer(t, nil)
	a := createTask(t, srv, "a", 1)
	b := createTask(t, srv, "b", 2)

	var res TaskResponse
	do(t, http.MethodPost, srv.URL+"/tasks/"+a.ID+"/timer/start", nil, &res)
	if !res.IsTimerRunning || res.Status != string(daytrack.StatusInProgress) {
		t.Fatalf("expected running in-progress task, got %+v", res)
	}

	c.Advance(90 * time.Second)
	var timer TimerResponse
	do(t, http.MethodGet, srv.URL+"/timer", nil, &timer)
	if timer.TaskID != a.ID || timer.ElapsedSeconds != 90 || timer.Elapsed != "01:30" {
		t.Fatalf("unexpected timer %+v", timer)
	}

	do(t, http.MethodPost, srv.URL+"/tasks/"+b.ID+"/timer/start", nil, &res)
	var first TaskResponse
	do(t, http.MethodGet, srv.URL+"/tasks/"+a.ID, nil, &first)
	if first.IsTimerRunning || first.ActualTimeMinutes != 2 {
		t.Fatalf("expected first timer stopped with 2 minutes, got %+v", first)
	}

	do(t, http.MethodPost, srv.URL+"/tasks/"+b.ID+"/timer/stop", nil, &res)
	do(t, http.MethodGet, srv.URL+"/timer", nil, &timer)
	if timer.Running {
		t.Fatal("expected no running timer")
	}
}

func TestViewEndpoints(t *testing.T) {
	srv, st, _ := newTestServer(t, nil)
	ctx := context.Background()
	if _, err := st.Add(ctx, daytrack.TaskData{Title: "late", Category: daytrack.CategoryWork, Priority: 2, EstimatedTimeMinutes: 30, DueDate: now.AddDate(0, 0, -2)}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Add(ctx, daytrack.TaskData{Title: "done", Category: daytrack.CategoryHealth, Priority: 3, EstimatedTimeMinutes: 20, Status: daytrack.StatusCompleted}); err != nil {
		t.Fatal(err)
	}

	var agenda AgendaResponse
	do(t, http.MethodGet, srv.URL+"/views/agenda", nil, &agenda)
	if len(agenda.Overdue) != 1 || agenda.Overdue[0].Title != "late" {
		t.Fatalf("unexpected agenda %+v", agenda)
	}

	var dash DashboardResponse
	do(t, http.MethodGet, srv.URL+"/views/dashboard", nil, &dash)
	if dash.CompletedToday != 1 || dash.Pending != 1 || dash.Streak != 1 {
		t.Fatalf("unexpected dashboard %+v", dash)
	}

	var weekly []DayActivityResponse
	do(t, http.MethodGet, srv.URL+"/views/weekly", nil, &weekly)
	if len(weekly) != 7 || weekly[6].Completed != 1 {
		t.Fatalf("unexpected weekly %+v", weekly)
	}

	var streak StreakResponse
	do(t, http.MethodGet, srv.URL+"/views/streak", nil, &streak)
	if streak.Days != 1 {
		t.Fatalf("expected streak 1, got %d", streak.Days)
	}

	var cats []CategoryStatResponse
	if code := do(t, http.MethodGet, srv.URL+"/views/categories", nil, &cats); code != http.StatusOK {
		t.Fatalf("categories: status %d", code)
	}
	var est []EstimateResponse
	do(t, http.MethodGet, srv.URL+"/views/estimates", nil, &est)
	if len(est) != 1 || est[0].Title != "done" {
		t.Fatalf("unexpected estimates %+v", est)
	}
}

func TestPersistFailureReturns500(t *testing.T) {
	srv, st, _ := newTestServer(t, failingBlobs{})
	code := do(t, http.MethodPost, srv.URL+"/tasks", CreateTaskRequest{Title: "x", Category: "work", Priority: 1, EstimatedTimeMinutes: 5}, nil)
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if len(st.Tasks()) != 1 {
		t.Fatal("change should still be applied in memory")
	}
}
