package inventory

import "strings"

// ─── Search ──────────────────────────────────────────────────────────────────

// Search returns the components whose id contains query, case-insensitively,
// in collection order. An empty (or all-blank) query matches everything.
func Search(items []Component, query string) []Component {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]Component(nil), items...)
	}

	var matches []Component
	for _, c := range items {
		if strings.Contains(strings.ToLower(c.ID), q) {
			matches = append(matches, c)
		}
	}
	return matches
}

// Find looks a component up by exact id.
func Find(items []Component, id string) (Component, bool) {
	if i := indexOf(items, id); i >= 0 {
		return items[i], true
	}
	return Component{}, false
}

// ─── Mutations ───────────────────────────────────────────────────────────────

// Add appends c after validating it. The input slice is never modified.
func Add(items []Component, c Component) ([]Component, error) {
	c, err := NewComponent(c.ID, c.Location)
	if err != nil {
		return items, err
	}
	if indexOf(items, c.ID) >= 0 {
		return items, ErrDuplicateID
	}

	out := make([]Component, 0, len(items)+1)
	out = append(out, items...)
	return append(out, c), nil
}

// Update replaces the record identified by originalID with c, keeping its
// position. The new id may equal originalID; it must not collide with any
// other record.
func Update(items []Component, originalID string, c Component) ([]Component, error) {
	c, err := NewComponent(c.ID, c.Location)
	if err != nil {
		return items, err
	}
	if c.ID != originalID && indexOf(items, c.ID) >= 0 {
		return items, ErrDuplicateID
	}
	idx := indexOf(items, originalID)
	if idx < 0 {
		return items, ErrNotFound
	}

	out := append([]Component(nil), items...)
	out[idx] = c
	return out, nil
}

// Delete drops every record with the given id. The bool reports whether
// anything was removed; deleting an absent id is not an error.
func Delete(items []Component, id string) ([]Component, bool) {
	out := make([]Component, 0, len(items))
	for _, c := range items {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out, len(out) != len(items)
}

// DuplicateIDs returns the ids that appear more than once, in first-seen order.
func DuplicateIDs(items []Component) []string {
	seen := make(map[string]int, len(items))
	var dups []string
	for _, c := range items {
		seen[c.ID]++
		if seen[c.ID] == 2 {
			dups = append(dups, c.ID)
		}
	}
	return dups
}

func indexOf(items []Component, id string) int {
	for i, c := range items {
		if c.ID == id {
			return i
		}
	}
	return -1
}
