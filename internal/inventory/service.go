package inventory

import (
	"fmt"
	"log/slog"
	"strings"
)

// Store is the persistence contract for the catalog. Load must return an
// empty collection (not an error) when nothing has been saved yet or when the
// saved data is unreadable; errors are reserved for backend failures.
type Store interface {
	Load() ([]Component, error)
	Save(items []Component) error
}

// Stats summarizes the persisted catalog.
type Stats struct {
	Total     int      `json:"total"`
	Locations []string `json:"locations"`
}

// Service runs catalog operations against a Store, re-reading before every
// mutation.
type Service struct {
	store Store
}

func NewService(s Store) *Service {
	return &Service{store: s}
}

// All returns the full collection.
func (s *Service) All() ([]Component, error) {
	items, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return items, nil
}

func (s *Service) Search(query string) ([]Component, error) {
	items, err := s.All()
	if err != nil {
		return nil, err
	}
	return Search(items, query), nil
}

func (s *Service) Get(id string) (Component, error) {
	items, err := s.All()
	if err != nil {
		return Component{}, err
	}
	c, ok := Find(items, id)
	if !ok {
		return Component{}, ErrNotFound
	}
	return c, nil
}

// Add validates and appends a new component.
func (s *Service) Add(id, location string) (Component, error) {
	items, err := s.All()
	if err != nil {
		return Component{}, err
	}
	next, err := Add(items, Component{ID: id, Location: location})
	if err != nil {
		return Component{}, err
	}
	if err := s.save(next); err != nil {
		return Component{}, err
	}
	c := next[len(next)-1]
	slog.Info("component added", "id", c.ID, "location", c.Location)
	return c, nil
}

// Update rewrites the component currently stored under originalID.
func (s *Service) Update(originalID, id, location string) (Component, error) {
	items, err := s.All()
	if err != nil {
		return Component{}, err
	}
	next, err := Update(items, originalID, Component{ID: id, Location: location})
	if err != nil {
		return Component{}, err
	}
	if err := s.save(next); err != nil {
		return Component{}, err
	}
	c, _ := Find(next, strings.TrimSpace(id))
	slog.Info("component updated", "original_id", originalID, "id", c.ID, "location", c.Location)
	return c, nil
}

// Delete removes id. It reports whether a record was removed; a missing id is
// a no-op.
func (s *Service) Delete(id string) (bool, error) {
	items, err := s.All()
	if err != nil {
		return false, err
	}
	next, removed := Delete(items, id)
	if !removed {
		return false, nil
	}
	if err := s.save(next); err != nil {
		return false, err
	}
	slog.Info("component deleted", "id", id)
	return true, nil
}

// Replace overwrites the whole collection. No merge, no dedup against the
// existing data.
func (s *Service) Replace(items []Component) error {
	if err := s.save(items); err != nil {
		return err
	}
	slog.Info("catalog replaced", "count", len(items))
	return nil
}

func (s *Service) Stats() (*Stats, error) {
	items, err := s.All()
	if err != nil {
		return nil, err
	}
	st := &Stats{Total: len(items)}
	seen := make(map[string]bool)
	for _, c := range items {
		if !seen[c.Location] {
			seen[c.Location] = true
			st.Locations = append(st.Locations, c.Location)
		}
	}
	return st, nil
}

func (s *Service) save(items []Component) error {
	if err := s.store.Save(items); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}
