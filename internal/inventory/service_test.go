package inventory

import (
	"errors"
	"testing"
)

// memStore keeps the collection in a slice and counts writes.
type memStore struct {
	items  []Component
	saves  int
	loadEr error
}

func (m *memStore) Load() ([]Component, error) {
	if m.loadEr != nil {
		return nil, m.loadEr
	}
	return append([]Component(nil), m.items...), nil
}

func (m *memStore) Save(items []Component) error {
	m.saves++
	m.items = append([]Component(nil), items...)
	return nil
}

func TestServiceAddGetAndSearch(t *testing.T) {
	st := &memStore{}
	svc := NewService(st)

	if _, err := svc.Add("R-1", "Shelf 1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	c, err := svc.Get("R-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Location != "Shelf 1" {
		t.Fatalf("unexpected component %+v", c)
	}
	results, err := svc.Search("r-")
	if err != nil || len(results) != 1 {
		t.Fatalf("expected 1 result, got %d (%v)", len(results), err)
	}
}

func TestServiceDuplicateDoesNotSave(t *testing.T) {
	st := &memStore{items: []Component{{ID: "A", Location: "x"}}}
	svc := NewService(st)

	if _, err := svc.Add("A", "y"); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if st.saves != 0 {
		t.Fatalf("expected no writes, got %d", st.saves)
	}
}

func TestServiceUpdateAndDelete(t *testing.T) {
	st := &memStore{items: []Component{{ID: "A", Location: "x"}, {ID: "B", Location: "y"}}}
	svc := NewService(st)

	c, err := svc.Update("A", " A2 ", "z")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if c.ID != "A2" || st.items[0].ID != "A2" {
		t.Fatalf("expected rename in place, got %+v / %+v", c, st.items)
	}

	removed, err := svc.Delete("B")
	if err != nil || !removed {
		t.Fatalf("expected delete to remove B, got removed=%v err=%v", removed, err)
	}
	removed, err = svc.Delete("B")
	if err != nil || removed {
		t.Fatalf("expected second delete to be a no-op, got removed=%v err=%v", removed, err)
	}
	if st.saves != 2 {
		t.Fatalf("expected 2 writes, got %d", st.saves)
	}
}

func TestServiceGetMissing(t *testing.T) {
	svc := NewService(&memStore{})
	if _, err := svc.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceLoadErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&memStore{loadEr: boom})
	if _, err := svc.All(); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped load error, got %v", err)
	}
}

func TestServiceReplaceAndStats(t *testing.T) {
	st := &memStore{items: []Component{{ID: "old", Location: "gone"}}}
	svc := NewService(st)

	err := svc.Replace([]Component{
		{ID: "A", Location: "Shelf1"},
		{ID: "B", Location: "Shelf2"},
		{ID: "C", Location: "Shelf1"},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || len(stats.Locations) != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
