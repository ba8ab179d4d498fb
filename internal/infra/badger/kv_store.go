package badger

import (
	"context"
	"errors"
	"fmt"

	"career-guidance-service/internal/domain"
	"github.com/dgraph-io/badger/v4"
)

// keyPrefix namespaces profile keys inside the Badger directory.
const keyPrefix = "profile:"

// KVStore is a Badger-backed app.KeyValueStore: one directory per profile,
// durable across restarts.
type KVStore struct {
	db     *badger.DB
	ownsDB bool
}

// Open opens (or creates) a profile store at path.
func Open(path string) (*KVStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	// profile data is tiny
	opts.ValueLogFileSize = 16 << 20
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger profile store: %w", err)
	}
	return &KVStore{db: db, ownsDB: true}, nil
}

// NewKVStore wraps an existing Badger handle. Close does not close db.
func NewKVStore(db *badger.DB) *KVStore {
	return &KVStore{db: db}
}

func (s *KVStore) Get(_ context.Context, key string) (string, error) {
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.ErrKeyNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *KVStore) Put(_ context.Context, key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(keyPrefix+key), []byte(value)); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		return nil
	})
}

func (s *KVStore) Delete(_ context.Context, key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(keyPrefix + key)); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
		return nil
	})
}

// Close releases the database if Open created it.
func (s *KVStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
