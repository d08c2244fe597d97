// Package redisstore implements daytrack.BlobStore on top of a Redis server,
// for running the tracker against a shared cache instead of a local file.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/benjamonnguyen/daytrack"
)

const DefaultPrefix = "daytrack:"

type Options struct {
	// Prefix namespaces every key. Defaults to DefaultPrefix.
	Prefix string
}

type blobStore struct {
	client *redis.Client
	prefix string
	l      daytrack.Logger
}

var _ daytrack.BlobStore = (*blobStore)(nil)

func NewBlobStore(client *redis.Client, logger daytrack.Logger, opts Options) daytrack.BlobStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &blobStore{
		client: client,
		prefix: prefix,
		l:      logger,
	}
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}
	return client, nil
}

func (s *blobStore) Load(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("provide key")
	}
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("failed to load blob %q: %w", key, daytrack.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load blob %q: %w", key, err)
	}
	s.l.Debug("loaded blob", "key", s.prefix+key, "bytes", len(data))
	return data, nil
}

func (s *blobStore) Save(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("provide key")
	}
	s.l.Debug("saving blob", "key", s.prefix+key, "bytes", len(data))
	if err := s.client.Set(ctx, s.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save blob %q: %w", key, err)
	}
	return nil
}
