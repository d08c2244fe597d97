package redisstore

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/benjamonnguyen/daytrack"
	"github.com/benjamonnguyen/daytrack/clock"
	"github.com/benjamonnguyen/daytrack/store"
)

func startMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	s, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func newTestClient(t *testing.T, mr *miniredis.Miniredis) *redis.Client {
	t.Helper()
	client, err := Dial(context.Background(), mr.Addr())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestBlobStore_SaveLoadWithPrefix(t *testing.T) {
	mr := startMiniRedis(t)
	blobs := NewBlobStore(newTestClient(t, mr), daytrack.NopLogger(), Options{Prefix: "test:"})
	ctx := context.Background()

	if err := blobs.Save(ctx, "k", []byte("payload")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, err := mr.Get("test:k"); err != nil || got != "payload" {
		t.Fatalf("raw key = %q, %v", got, err)
	}
	got, err := blobs.Load(ctx, "k")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(got, []byte("payload")) {
		t.Fatalf("Load = %q", got)
	}
}

func TestBlobStore_LoadMissing(t *testing.T) {
	mr := startMiniRedis(t)
	blobs := NewBlobStore(newTestClient(t, mr), daytrack.NopLogger(), Options{})
	if _, err := blobs.Load(context.Background(), "absent"); !errors.Is(err, daytrack.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestBlobStore_BackendDown(t *testing.T) {
	mr := startMiniRedis(t)
	blobs := NewBlobStore(newTestClient(t, mr), daytrack.NopLogger(), Options{})
	mr.Close()

	_, err := blobs.Load(context.Background(), "k")
	if err == nil || errors.Is(err, daytrack.ErrNotFound) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if _, err := store.Open(context.Background(), blobs, store.Options{}); err == nil {
		t.Fatal("store.Open should surface the backend error")
	}
}

func TestDial_Unreachable(t *testing.T) {
	mr := startMiniRedis(t)
	addr := mr.Addr()
	mr.Close()
	if _, err := Dial(context.Background(), addr); err == nil {
		t.Fatal("expected dial error")
	}
}

func TestBlobStore_BacksTaskStore(t *testing.T) {
	mr := startMiniRedis(t)
	blobs := NewBlobStore(newTestClient(t, mr), daytrack.NopLogger(), Options{})
	ctx := context.Background()
	c := clock.Fake(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	s := store.New(blobs, store.Options{Clock: c})
	a, _ := s.Add(ctx, daytrack.TaskData{Title: "a", Category: daytrack.CategoryWork, Priority: daytrack.PriorityHigh})
	b, _ := s.Add(ctx, daytrack.TaskData{Title: "b", Category: daytrack.CategoryHealth, Priority: daytrack.PriorityLow})
	_ = s.StartTimer(ctx, b.ID)
	_ = s.Delete(ctx, a.ID)

	if !mr.Exists(DefaultPrefix + daytrack.TaskStorageKey) {
		t.Fatal("snapshot not written under the task storage key")
	}

	reopened, err := store.Open(ctx, blobs, store.Options{Clock: c})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	tasks := reopened.Tasks()
	if len(tasks) != 1 || tasks[0].ID != b.ID {
		t.Fatalf("unexpected tasks after reload: %+v", tasks)
	}
	if reopened.ActiveTimerTaskID() != b.ID {
		t.Fatalf("active timer = %s, want %s", reopened.ActiveTimerTaskID(), b.ID)
	}
}
