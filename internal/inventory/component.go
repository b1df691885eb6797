// Package inventory holds the component catalog: the Component record, the
// rules that keep a collection valid, and the operations the UI, CLI and MCP
// server run against it.
//
// Every operation works on a freshly loaded slice and returns a new slice;
// nothing here touches storage directly. Service wires the operations to a
// Store with load → operate → save.
package inventory

import (
	"errors"
	"strconv"
	"strings"
)

// ─── Types ───────────────────────────────────────────────────────────────────

// Component maps an inventory/part identifier to a physical storage location.
type Component struct {
	ID       string `json:"id"`
	Location string `json:"location"`
}

// ─── Errors ──────────────────────────────────────────────────────────────────

var (
	// ErrBlankField is returned when id or location is empty after trimming.
	ErrBlankField = errors.New("all fields are required")

	// ErrDuplicateID is returned when an id is already used by another record.
	ErrDuplicateID = errors.New("component id already exists")

	// ErrNotFound is returned when the target id is not in the collection.
	ErrNotFound = errors.New("component not found")
)

// NewComponent trims both fields and rejects blanks.
func NewComponent(id, location string) (Component, error) {
	c := Component{
		ID:       strings.TrimSpace(id),
		Location: strings.TrimSpace(location),
	}
	if c.ID == "" || c.Location == "" {
		return Component{}, ErrBlankField
	}
	return c, nil
}

// CountLabel renders a match count the way the result lists show it.
func CountLabel(n int) string {
	if n == 1 {
		return "1 component"
	}
	return strconv.Itoa(n) + " components"
}
