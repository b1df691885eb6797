// Package store persists the component catalog.
//
// The whole collection lives as one JSON array under a single key in a
// key-value backend: an embedded SQLite database by default, Postgres when a
// shared database is wanted, or memory for tests. Everything above this
// package talks to *Store through the inventory.Store interface and never
// sees the backend.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/EmilIverskog/storageFinder/internal/inventory"
)

// DefaultKey is the key the catalog blob is stored under.
const DefaultKey = "warehouse_components"

// ─── Backends ────────────────────────────────────────────────────────────────

// Backend is a minimal key-value medium. Get reports ok=false for a missing key.
type Backend interface {
	Get(key string) (value []byte, ok bool, err error)
	Put(key string, value []byte) error
	Close() error
}

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// ─── Config ──────────────────────────────────────────────────────────────────

type Config struct {
	DataDir string
	Backend string
	DSN     string
	Key     string
}

func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir: filepath.Join(home, ".storagefinder"),
		Backend: BackendSQLite,
		Key:     DefaultKey,
	}
}

// DBPath is where the SQLite backend keeps its database.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "storagefinder.db")
}

// ─── Store ───────────────────────────────────────────────────────────────────

var _ inventory.Store = (*Store)(nil)

type Store struct {
	backend Backend
	key     string
}

// New wraps an already opened backend.
func New(b Backend, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{backend: b, key: key}
}

// Open builds the backend named by cfg.Backend.
func Open(cfg Config) (*Store, error) {
	var (
		b   Backend
		err error
	)
	switch cfg.Backend {
	case "", BackendSQLite:
		b, err = OpenSQLite(cfg.DBPath())
	case BackendPostgres:
		b, err = OpenPostgres(cfg.DSN)
	case BackendMemory:
		b = NewMemory()
	default:
		return nil, fmt.Errorf("storagefinder: unknown backend %q (supported: sqlite, postgres, memory)", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return New(b, cfg.Key), nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// Load reads the catalog. A missing key or an unparsable blob yields an empty
// collection; only backend failures are returned.
func (s *Store) Load() ([]inventory.Component, error) {
	raw, ok, err := s.backend.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}
	if !ok {
		return []inventory.Component{}, nil
	}

	var items []inventory.Component
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("stored catalog is unreadable, treating as empty", "key", s.key, "err", err)
		return []inventory.Component{}, nil
	}
	if items == nil {
		items = []inventory.Component{}
	}
	return items, nil
}

// Save overwrites the catalog with items.
func (s *Store) Save(items []inventory.Component) error {
	if items == nil {
		items = []inventory.Component{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.backend.Put(s.key, raw); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	slog.Debug("catalog saved", "key", s.key, "count", len(items))
	return nil
}
