package store

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/EmilIverskog/storageFinder/internal/inventory"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()

	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestLoadMissingKeyReturnsEmpty(t *testing.T) {
	s := newTestStore(t)

	items, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil collection, got %#v", items)
	}
}

func TestSaveThenLoadPreservesOrder(t *testing.T) {
	s := newTestStore(t)

	want := []inventory.Component{
		{ID: "R-100", Location: "Shelf 3"},
		{ID: "C-22", Location: "Drawer A"},
		{ID: "IC-555", Location: "Box 7"},
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSaveOverwritesPreviousValue(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save([]inventory.Component{{ID: "old", Location: "gone"}}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.Save([]inventory.Component{{ID: "new", Location: "here"}}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("expected only the second value, got %+v", got)
	}
}

func TestLoadCorruptBlobReturnsEmpty(t *testing.T) {
	for _, raw := range []string{`{not json`, `{"id":"A"}`, `[{"id":5}]`, `null`} {
		mem := NewMemory()
		_ = mem.Put(DefaultKey, []byte(raw))
		s := New(mem, "")

		items, err := s.Load()
		if err != nil {
			t.Fatalf("load %q: %v", raw, err)
		}
		if len(items) != 0 {
			t.Fatalf("expected empty collection for %q, got %+v", raw, items)
		}
	}
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	mem := NewMemory()
	s := New(mem, "custom")

	if err := s.Save(nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, ok, _ := mem.Get("custom")
	if !ok || string(raw) != "[]" {
		t.Fatalf("expected [] under custom key, got ok=%v raw=%q", ok, raw)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storagefinder.db")

	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := New(first, "").Save([]inventory.Component{{ID: "A", Location: "Shelf1"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = first.Close()

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer second.Close()

	got, err := New(second, "").Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Location != "Shelf1" {
		t.Fatalf("expected persisted component, got %+v", got)
	}
}

type failingBackend struct{}

func (failingBackend) Get(string) ([]byte, bool, error) { return nil, false, errors.New("disk on fire") }
func (failingBackend) Put(string, []byte) error { return errors.New("disk on fire") }
func (failingBackend) Close() error { return nil }

func TestBackendErrorsPropagate(t *testing.T) {
	s := New(failingBackend{}, "")

	if _, err := s.Load(); err == nil {
		t.Fatalf("expected load error from backend")
	}
	if err := s.Save([]inventory.Component{{ID: "A", Location: "B"}}); err == nil {
		t.Fatalf("expected save error from backend")
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Backend = "redis"

	if _, err := Open(cfg); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestOpenPostgresOpenFailure(t *testing.T) {
	old := sqlOpen
	t.Cleanup(func() { sqlOpen = old })
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		if driver != postgresDriver {
			t.Fatalf("expected driver %q, got %q", postgresDriver, driver)
		}
		if dsn != defaultDSN {
			t.Fatalf("expected default dsn, got %q", dsn)
		}
		return nil, errors.New("boom")
	}

	if _, err := OpenPostgres(""); err == nil {
		t.Fatalf("expected open error")
	}
}
