package views

import (
	"testing"
	"time"

	"github.com/benjamonnguyen/daytrack"
	"github.com/google/uuid"
)

var now = time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)

func at(dayOffset, hour int) time.Time {
	return time.Date(2026, 3, 10+dayOffset, hour, 0, 0, 0, time.Local)
}

func task(title string, mods ...func(*daytrack.Task)) daytrack.Task {
	t := daytrack.Task{
		ID:        uuid.New(),
		Title:     title,
		Category:  daytrack.CategoryWork,
		Priority:  daytrack.PriorityMedium,
		Status:    daytrack.StatusPending,
		CreatedAt: now,
	}
	for _, m := range mods {
		m(&t)
	}
	return t
}

func due(d time.Time) func(*daytrack.Task) { return func(t *daytrack.Task) { t.DueDate = d } }

func prio(p daytrack.Priority) func(*daytrack.Task) {
	return func(t *daytrack.Task) { t.Priority = p }
}

func completedAt(d time.Time, minutes int) func(*daytrack.Task) {
	return func(t *daytrack.Task) {
		t.Status = daytrack.StatusCompleted
		t.CompletedAt = d
		t.ActualTimeMinutes = minutes
	}
}

func titles(tasks []daytrack.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func assertTitles(t *testing.T, got []daytrack.Task, want ...string) {
	t.Helper()
	g := titles(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestPartition_OverdueExcludedFromTodayAndUpcoming(t *testing.T) {
	tasks := []daytrack.Task{
		task("late", due(at(-1, 9))),
		task("today", due(at(0, 18))),
		task("today early", due(at(0, 0))),
		task("tomorrow", due(at(1, 9))),
		task("in six days", due(at(6, 23))),
		task("in seven days", due(at(7, 0))),
		task("done late", due(at(-1, 9)), completedAt(at(0, 8), 10)),
		task("no due"),
	}
	a := Partition(tasks, now)
	assertTitles(t, a.Overdue, "late")
	assertTitles(t, a.Today, "today", "today early")
	assertTitles(t, a.Upcoming, "tomorrow", "in six days")
}

func TestFilterSort_PriorityAscending(t *testing.T) {
	tasks := []daytrack.Task{
		task("low soon", prio(daytrack.PriorityLow), due(at(0, 9))),
		task("urgent later", prio(daytrack.PriorityUrgent), due(at(5, 9))),
		task("medium", prio(daytrack.PriorityMedium)),
	}
	got := FilterSort(tasks, Filter{}, Sort{Field: SortByPriority, Direction: Asc})
	assertTitles(t, got, "urgent later", "medium", "low soon")

	got = FilterSort(tasks, Filter{}, Sort{Field: SortByPriority, Direction: Desc})
	assertTitles(t, got, "low soon", "medium", "urgent later")
}

func TestFilterSort_DueDateKeepsUndatedLast(t *testing.T) {
	tasks := []daytrack.Task{
		task("undated a"),
		task("later", due(at(3, 9))),
		task("undated b"),
		task("sooner", due(at(1, 9))),
	}
	got := FilterSort(tasks, Filter{}, Sort{Field: SortByDueDate, Direction: Asc})
	assertTitles(t, got, "sooner", "later", "undated a", "undated b")

	got = FilterSort(tasks, Filter{}, Sort{Field: SortByDueDate, Direction: Desc})
	assertTitles(t, got, "later", "sooner", "undated a", "undated b")
}

func TestFilterSort_CreatedAtAndFilters(t *testing.T) {
	first := task("first", func(t *daytrack.Task) { t.CreatedAt = at(-2, 9) })
	second := task("second", func(t *daytrack.Task) {
		t.CreatedAt = at(-1, 9)
		t.Category = daytrack.CategoryHealth
	})
	third := task("third", func(t *daytrack.Task) {
		t.CreatedAt = at(0, 9)
		t.Status = daytrack.StatusInProgress
	})
	tasks := []daytrack.Task{third, first, second}

	assertTitles(t, FilterSort(tasks, Filter{}, Sort{Field: SortByCreatedAt, Direction: Asc}), "first", "second", "third")
	assertTitles(t, FilterSort(tasks, Filter{Category: daytrack.CategoryWork}, Sort{Field: SortByCreatedAt, Direction: Desc}), "third", "first")
	assertTitles(t, FilterSort(tasks, Filter{Status: daytrack.StatusInProgress}, DefaultSort), "third")
	assertTitles(t, FilterSort(tasks, Filter{Priority: daytrack.PriorityUrgent}, DefaultSort))
}

func TestAccessorFilters(t *testing.T) {
	tasks := []daytrack.Task{
		task("a", due(at(0, 0))),
		task("b", due(at(0, 23)), prio(daytrack.PriorityUrgent)),
		task("c", due(at(1, 0)), completedAt(at(0, 10), 5)),
		task("d", func(t *daytrack.Task) { t.Category = daytrack.CategoryLearning }),
	}
	assertTitles(t, DueOn(tasks, now), "a", "b")
	assertTitles(t, CompletedOnly(tasks), "c")
	assertTitles(t, WithPriority(tasks, daytrack.PriorityUrgent), "b")
	assertTitles(t, WithCategory(tasks, daytrack.CategoryLearning), "d")
	assertTitles(t, WithStatus(tasks, daytrack.StatusPending), "a", "b", "d")
}

func TestStreak(t *testing.T) {
	cases := []struct {
		name  string
		tasks []daytrack.Task
		want  int
	}{
		{"nothing", nil, 0},
		{"today only", []daytrack.Task{task("x", completedAt(at(0, 9), 0))}, 1},
		{"today and two prior", []daytrack.Task{
			task("x", completedAt(at(0, 9), 0)),
			task("y", completedAt(at(-1, 9), 0)),
			task("z", completedAt(at(-2, 23), 0)),
		}, 3},
		{"none today keeps yesterday's run", []daytrack.Task{
			task("y", completedAt(at(-1, 9), 0)),
			task("z", completedAt(at(-2, 9), 0)),
		}, 2},
		{"gap breaks", []daytrack.Task{
			task("x", completedAt(at(0, 9), 0)),
			task("z", completedAt(at(-2, 9), 0)),
		}, 1},
		{"none today or yesterday", []daytrack.Task{
			task("z", completedAt(at(-2, 9), 0)),
		}, 0},
	}
	for _, tc := range cases {
		if got := Streak(tc.tasks, now); got != tc.want {
			t.Fatalf("%s: Streak = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestByCategory(t *testing.T) {
	tasks := []daytrack.Task{
		task("a", func(t *daytrack.Task) { t.ActualTimeMinutes = 30 }),
		task("b", func(t *daytrack.Task) { t.Category = daytrack.CategoryHealth; t.ActualTimeMinutes = 15 }),
		task("c", func(t *daytrack.Task) { t.ActualTimeMinutes = 45 }),
	}
	stats := ByCategory(tasks)
	if len(stats) != 2 {
		t.Fatalf("got %d categories, want 2: %+v", len(stats), stats)
	}
	if stats[0].Category != daytrack.CategoryWork || stats[0].TotalMinutes != 75 || stats[0].TaskCount != 2 || stats[0].Label != "Work" {
		t.Fatalf("unexpected work stat: %+v", stats[0])
	}
	if stats[1].Category != daytrack.CategoryHealth || stats[1].TotalMinutes != 15 || stats[1].TaskCount != 1 {
		t.Fatalf("unexpected health stat: %+v", stats[1])
	}
}

func TestWeeklyActivity(t *testing.T) {
	tasks := []daytrack.Task{
		task("today", completedAt(at(0, 1), 20)),
		task("today too", completedAt(at(0, 13), 10)),
		task("six ago", completedAt(at(-6, 0), 5)),
		task("seven ago", completedAt(at(-7, 23), 99)),
		task("open"),
	}
	days := WeeklyActivity(tasks, now)
	if len(days) != 7 {
		t.Fatalf("got %d days, want 7", len(days))
	}
	if !days[0].Date.Equal(at(-6, 0)) || days[0].Completed != 1 || days[0].Minutes != 5 {
		t.Fatalf("oldest day = %+v", days[0])
	}
	if days[6].Completed != 2 || days[6].Minutes != 30 || days[6].Day != now.Format("Mon") {
		t.Fatalf("today = %+v", days[6])
	}
	for _, d := range days[1:6] {
		if d.Completed != 0 || d.Minutes != 0 {
			t.Fatalf("expected empty day, got %+v", d)
		}
	}
}

func TestEstimateVsActual(t *testing.T) {
	var tasks []daytrack.Task
	for i := range 12 {
		tasks = append(tasks, task(string(rune('a'+i)), completedAt(at(0, 9), i), func(t *daytrack.Task) {
			t.EstimatedTimeMinutes = 10
		}))
	}
	tasks = append(tasks,
		task("no estimate", completedAt(at(0, 9), 5)),
		task("A rather long task title", completedAt(at(0, 9), 7), func(t *daytrack.Task) { t.EstimatedTimeMinutes = 20 }),
		task("open", func(t *daytrack.Task) { t.EstimatedTimeMinutes = 20 }),
	)

	points := EstimateVsActual(tasks)
	if len(points) != 10 {
		t.Fatalf("got %d points, want 10", len(points))
	}
	if points[0].Title != "d" {
		t.Fatalf("first point = %+v, want task d", points[0])
	}
	last := points[9]
	if last.Title != "A rather long t..." || last.Estimated != 20 || last.Actual != 7 {
		t.Fatalf("last point = %+v", last)
	}
}

func TestSummarize(t *testing.T) {
	tasks := []daytrack.Task{
		task("done today", completedAt(at(0, 9), 25)),
		task("done yesterday", completedAt(at(-1, 9), 40)),
		task("done long ago", completedAt(at(-9, 9), 40)),
		task("working", func(t *daytrack.Task) { t.Status = daytrack.StatusInProgress }),
		task("todo"),
	}
	d := Summarize(tasks, now)
	want := Dashboard{
		CompletedToday:    1,
		CompletedThisWeek: 2,
		MinutesToday:      25,
		Pending:           2,
		InProgress:        1,
		Streak:            2,
	}
	if d != want {
		t.Fatalf("Summarize = %+v, want %+v", d, want)
	}
}
