package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dgraph-io/badger/v4"
)

// BadgerAdapter stores each key as a single badger entry.
type BadgerAdapter struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a badger database at path. An empty path
// opens an in-memory database.
func OpenBadger(path string) (*BadgerAdapter, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}
	return &BadgerAdapter{db: db}, nil
}

// Get returns the stored value or nil when the key is absent.
func (a *BadgerAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var value []byte
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, a.wrap("get", key, err)
	}
	return value, nil
}

// Set replaces the value stored under key.
func (a *BadgerAdapter) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	return a.wrap("set", key, err)
}

// Remove deletes key. Deleting an absent key is not an error.
func (a *BadgerAdapter) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := a.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	return a.wrap("remove", key, err)
}

// Backup writes a full backup of the database to w.
func (a *BadgerAdapter) Backup(w io.Writer) error {
	if _, err := a.db.Backup(w, 0); err != nil {
		return fmt.Errorf("failed to backup database: %w", err)
	}
	return nil
}

// Restore loads a backup produced by Backup.
func (a *BadgerAdapter) Restore(r io.Reader) error {
	if err := a.db.Load(r, 4); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}

// DropAll removes every key.
func (a *BadgerAdapter) DropAll() error {
	return a.db.DropAll()
}

// Close closes the database.
func (a *BadgerAdapter) Close() error {
	return a.db.Close()
}

func (a *BadgerAdapter) wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, badger.ErrDBClosed) {
		err = ErrClosed
	}
	return fmt.Errorf("badger %s %q: %w", op, key, err)
}
