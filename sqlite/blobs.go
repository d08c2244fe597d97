package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"

	"github.com/benjamonnguyen/daytrack"
)

type blobEntity struct {
	Key       string
	Value     []byte
	UpdatedAt int64
}

// blobStore
type blobStore struct {
	dbGetter txStdLib.DBGetter
	l        daytrack.Logger
}

var _ daytrack.BlobStore = (*blobStore)(nil)

func NewBlobStore(dbGetter txStdLib.DBGetter, logger daytrack.Logger) daytrack.BlobStore {
	return &blobStore{
		l:        logger,
		dbGetter: dbGetter,
	}
}

func (r *blobStore) Load(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("provide key")
	}

	db := r.dbGetter(ctx)
	row := db.QueryRowContext(ctx, "SELECT key, value, updated_at FROM blobs WHERE key = ?", key)
	e, err := extractBlob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to load blob %q: %w", key, err)
	}

	r.l.Debug("loaded blob", "key", key, "bytes", len(e.Value), "updatedAt", time.Unix(e.UpdatedAt, 0))
	return e.Value, nil
}

func (r *blobStore) Save(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("provide key")
	}

	e := blobEntity{
		Key:       key,
		Value:     data,
		UpdatedAt: time.Now().Unix(),
	}
	args := []any{e.Key, e.Value, e.UpdatedAt}
	query := "INSERT INTO blobs (key, value, updated_at) VALUES " + placeholders(len(args)) +
		" ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"

	r.l.Debug("saving blob", "query", query, "key", key, "bytes", len(data))
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save blob %q: %w", key, err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(...any) error
}

// placeholders renders "(?,?,...)" for n bind parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return "(" + strings.TrimSuffix(strings.Repeat("?,", n), ",") + ")"
}

func extractBlob(s rowScanner) (blobEntity, error) {
	var e blobEntity
	if err := s.Scan(&e.Key, &e.Value, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return blobEntity{}, daytrack.ErrNotFound
		}
		return blobEntity{}, err
	}
	return e, nil
}
