package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// badgerStore implements System on a Badger key-value database.
// One binary entry is kept per key, the closest local analog to a browser
// keyed object store.
type badgerStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// NewBadger opens (or creates) a Badger store at the given path.
func NewBadger(path string, logger *slog.Logger) (System, error) {
	if path == "" {
		return nil, fmt.Errorf("path required")
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}

	return &badgerStore{
		db:     db,
		logger: logger.With("system", "storage", "driver", "badger"),
	}, nil
}

func (b *badgerStore) Store(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return ErrInvalidKey
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrUnavailable, key, err)
	}
	return nil
}

func (b *badgerStore) Retrieve(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get %s: %v", ErrUnavailable, key, err)
	}
	return value, nil
}

func (b *badgerStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrUnavailable, key, err)
	}
	return nil
}

func (b *badgerStore) Validate(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}

	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: get %s: %v", ErrUnavailable, key, err)
	}
	return true, nil
}

func (b *badgerStore) Close() error {
	if err := b.db.Close(); err != nil {
		b.logger.Error("badger close failed", "error", err)
		return err
	}
	return nil
}
