// Package backup reads and writes catalog backup files.
//
// Exports are 2-space indented JSON arrays named
// detaljer_backup_<YYYY-MM-DD>_<HH-MM>.json; imports accept the same shape and
// reject anything else before a single record reaches the store.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/EmilIverskog/storageFinder/internal/inventory"
)

// FilePrefix starts every exported file name.
const FilePrefix = "detaljer_backup"

var (
	// ErrMalformedJSON means the import file is not JSON at all.
	ErrMalformedJSON = errors.New("could not read JSON file")

	// ErrInvalidStructure means the JSON is not an array of {id, location}
	// objects with non-empty strings.
	ErrInvalidStructure = errors.New("invalid file structure")

	// ErrNothingToExport is returned when the catalog is empty.
	ErrNothingToExport = errors.New("no data to export")
)

// ─── Export ──────────────────────────────────────────────────────────────────

// FileName builds the export file name from t in its own location.
func FileName(t time.Time) string {
	return fmt.Sprintf("%s_%s.json", FilePrefix, t.Format("2006-01-02_15-04"))
}

// Marshal encodes items the way export files are written.
func Marshal(items []inventory.Component) ([]byte, error) {
	if items == nil {
		items = []inventory.Component{}
	}
	return json.MarshalIndent(items, "", "  ")
}

// WriteJSON writes items into dir under FileName(now.Local()) and returns the
// full path.
func WriteJSON(dir string, now time.Time, items []inventory.Component) (string, error) {
	if len(items) == 0 {
		return "", ErrNothingToExport
	}
	out, err := Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName(now.Local()))
	if err := os.WriteFile(path, out, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ─── Import ──────────────────────────────────────────────────────────────────

// Parse validates an import payload. Values are kept exactly as written;
// unknown fields are ignored.
func Parse(data []byte) ([]inventory.Component, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidStructure)
	}

	items := make([]inventory.Component, 0, len(list))
	for i, el := range list {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrInvalidStructure, i)
		}
		id, ok := nonBlankString(obj["id"])
		if !ok {
			return nil, fmt.Errorf("%w: element %d has no id", ErrInvalidStructure, i)
		}
		location, ok := nonBlankString(obj["location"])
		if !ok {
			return nil, fmt.Errorf("%w: element %d has no location", ErrInvalidStructure, i)
		}
		items = append(items, inventory.Component{ID: id, Location: location})
	}

	if dups := inventory.DuplicateIDs(items); len(dups) > 0 {
		return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidStructure, dups[0])
	}
	return items, nil
}

// ReadFile loads and validates an import file.
func ReadFile(path string) ([]inventory.Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

func nonBlankString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
