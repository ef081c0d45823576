package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/OussamaBoujdig/archivio1/internal/pkg/env"
)

// Kind names one persisted collection. Each kind is stored as a single JSON
// array file under the data directory.
type Kind string

const (
	KindUsers         Kind = "users"
	KindDocuments     Kind = "documents"
	KindCategories    Kind = "categories"
	KindActivities    Kind = "activities"
	KindNotifications Kind = "notifications"
	KindSessions      Kind = "sessions"
	KindSubscriptions Kind = "subscriptions"
	KindInvoices      Kind = "invoices"
)

// Store reads and writes whole collections. Records are opaque at this layer:
// type safety is the caller's responsibility. A per-kind RWMutex keeps writes
// invisible to concurrent in-process readers until complete; callers doing
// read-modify-write cycles must serialize those themselves.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[Kind]*sync.RWMutex
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{
		dir:   dir,
		locks: make(map[Kind]*sync.RWMutex),
	}, nil
}

func (s *Store) lock(kind Kind) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[kind]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[kind] = l
	}
	return l
}

func (s *Store) path(kind Kind) string {
	return filepath.Join(s.dir, string(kind)+".json")
}

// ReadAll unmarshals the whole collection into out, which must be a pointer
// to a slice. A missing file is lazily created empty and never an error;
// malformed content fails the read.
func (s *Store) ReadAll(kind Kind, out any) error {
	l := s.lock(kind)
	l.RLock()
	raw, err := os.ReadFile(s.path(kind))
	l.RUnlock()

	if os.IsNotExist(err) {
		if err := s.WriteAll(kind, []struct{}{}); err != nil {
			return err
		}
		raw = []byte("[]")
	} else if err != nil {
		return fmt.Errorf("read %s: %w", kind, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s collection: %w", kind, err)
	}
	return nil
}

// WriteAll replaces the whole collection. records must marshal to a JSON
// array (any slice will do).
func (s *Store) WriteAll(kind Kind, records any) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s collection: %w", kind, err)
	}

	l := s.lock(kind)
	l.Lock()
	defer l.Unlock()
	if err := os.WriteFile(s.path(kind), raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", kind, err)
	}
	return nil
}

var globalStore *Store

// SetupStore initializes the process-global store from DATA_DIR.
func SetupStore() {
	dir := env.GetEnv("DATA_DIR", "./data")
	st, err := New(dir)
	if err != nil {
		panic(err)
	}
	globalStore = st
}

// GetStore returns the process-global store.
func GetStore() *Store {
	if globalStore == nil {
		panic("store not initialized. Call SetupStore first.")
	}
	return globalStore
}
