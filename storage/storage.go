// Package storage opens the configured BlobStore backend.
package storage

import (
	"context"
	"fmt"

	txStdLib "github.com/Thiht/transactor/stdlib"

	"github.com/benjamonnguyen/daytrack"
	"github.com/benjamonnguyen/daytrack/redisstore"
	"github.com/benjamonnguyen/daytrack/sqlite"
)

// Open returns the backend named by cfg.Storage and a func that releases it.
func Open(ctx context.Context, cfg daytrack.Config, logger daytrack.Logger) (daytrack.BlobStore, func() error, error) {
	switch cfg.Storage {
	case daytrack.StorageRedis:
		client, err := redisstore.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis storage", "addr", cfg.RedisAddr)
		return redisstore.NewBlobStore(client, logger, redisstore.Options{}), client.Close, nil
	case daytrack.StorageSQLite, "":
		db, err := sqlite.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed migration: %w", err)
		}
		_, dbGetter := txStdLib.NewTransactor(db.DB(), txStdLib.NestedTransactionsSavepoints)
		logger.Info("using sqlite storage", "url", cfg.DatabaseURL)
		return sqlite.NewBlobStore(dbGetter, logger), db.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}
