// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package orders

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const idempotencyKeyPrefix = "idem:"

// maxReserveAttempts bounds retries on Badger transaction conflicts.
const maxReserveAttempts = 3

// Reservation is the stored outcome of an Idempotency-Key.
type Reservation struct {
	OrderRef  string    `json:"order_ref"`
	CreatedAt time.Time `json:"created_at"`
}

// IdempotencyStore maps Idempotency-Key values to order references.
type IdempotencyStore struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenIdempotencyStore opens a Badger store at path. An empty path keeps
// keys in memory.
func OpenIdempotencyStore(path string, ttl time.Duration) (*IdempotencyStore, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o750); err != nil {
			return nil, fmt.Errorf("create idempotency directory: %w", err)
		}
		opts = badger.DefaultOptions(path).
			WithSyncWrites(true).
			WithNumVersionsToKeep(1)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open idempotency store: %w", err)
	}
	return &IdempotencyStore{db: db, ttl: ttl}, nil
}

// Reserve binds key to orderRef unless the key is already bound. It returns
// the stored reservation and whether this call created it.
func (s *IdempotencyStore) Reserve(key, orderRef string) (Reservation, bool, error) {
	var (
		res     Reservation
		created bool
		err     error
	)
	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		res, created, err = s.reserve(key, orderRef)
		if !errors.Is(err, badger.ErrConflict) {
			return res, created, err
		}
	}
	return Reservation{}, false, fmt.Errorf("reserve idempotency key: %w", err)
}

func (s *IdempotencyStore) reserve(key, orderRef string) (Reservation, bool, error) {
	var (
		res     Reservation
		created bool
	)
	err := s.db.Update(func(txn *badger.Txn) error {
		dbKey := []byte(idempotencyKeyPrefix + key)

		item, err := txn.Get(dbKey)
		if err == nil {
			created = false
			return item.Value(func(val []byte) error {
				return json.Unmarshal(val, &res)
			})
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get idempotency key: %w", err)
		}

		res = Reservation{OrderRef: orderRef, CreatedAt: time.Now().UTC()}
		data, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshal reservation: %w", err)
		}
		entry := badger.NewEntry(dbKey, data)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		created = true
		return txn.SetEntry(entry)
	})
	if err != nil {
		return Reservation{}, false, err
	}
	return res, created, nil
}

// Lookup returns the reservation for key, if any.
func (s *IdempotencyStore) Lookup(key string) (Reservation, bool, error) {
	var res Reservation
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(idempotencyKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &res)
		})
	})
	if err != nil {
		return Reservation{}, false, fmt.Errorf("lookup idempotency key: %w", err)
	}
	return res, found, nil
}

// Release removes a reservation so the key can be retried.
func (s *IdempotencyStore) Release(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(idempotencyKeyPrefix + key))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete idempotency key: %w", err)
		}
		return nil
	})
}

// Close closes the underlying Badger database.
func (s *IdempotencyStore) Close() error {
	return s.db.Close()
}
