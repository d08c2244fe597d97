package daytrack

import (
	"context"
	"errors"
)

// TaskStorageKey is the fixed key the task collection is saved under.
const TaskStorageKey = "task-storage"

var ErrNotFound = errors.New("not found")

// BlobStore persists opaque blobs by key. Load returns an error wrapping
// ErrNotFound when nothing has been saved under key.
type BlobStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

type Database interface {
	Close() error
	Migrate() error
}
