// Package badgerstore persists session snapshots in BadgerDB, an embedded
// key-value store with low-latency local access. One key per session id,
// value is the JSON-encoded state.
package badgerstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/devgrade/interview-agent/internal/domain"
)

const keyPrefix = "session/"

// Store implements domain.StateStore over a badger.DB.
type Store struct {
	db *badger.DB
}

// Open creates the directory if needed and opens a persistent database.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("badgerstore: path is required")
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("badgerstore: creating %s: %w", path, err)
	}

	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: opening %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a throwaway database with no disk persistence.
// Useful for testing.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: opening in-memory: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func key(id domain.SessionID) []byte {
	return []byte(keyPrefix + string(id))
}

func (s *Store) Create(state *domain.InterviewState) error {
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key(state.ID))
		if err == nil {
			return fmt.Errorf("session %s: %w", state.ID, domain.ErrSessionExists)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return s.set(txn, state)
	})
}

func (s *Store) Update(state *domain.InterviewState) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(state.ID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("session %s: %w", state.ID, domain.ErrSessionNotFound)
			}
			return err
		}
		return s.set(txn, state)
	})
}

func (s *Store) Get(id domain.SessionID) (*domain.InterviewState, error) {
	var state domain.InterviewState
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &state)
		})
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Store) set(txn *badger.Txn, state *domain.InterviewState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", state.ID, err)
	}
	return txn.Set(key(state.ID), data)
}
