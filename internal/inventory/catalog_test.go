package inventory

import (
	"errors"
	"testing"
)

func sample() []Component {
	return []Component{
		{ID: "R-100", Location: "Shelf 3"},
		{ID: "C-22", Location: "Drawer A"},
		{ID: "r-220", Location: "Shelf 4"},
	}
}

func TestSearchIsCaseInsensitiveAndOrdered(t *testing.T) {
	got := Search(sample(), "  r-  ")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(got), got)
	}
	if got[0].ID != "R-100" || got[1].ID != "r-220" {
		t.Fatalf("expected collection order, got %+v", got)
	}
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	items := sample()
	got := Search(items, "")
	if len(got) != len(items) {
		t.Fatalf("expected all %d items, got %d", len(items), len(got))
	}
	got[0].ID = "mutated"
	if items[0].ID == "mutated" {
		t.Fatalf("search result must not alias the input slice")
	}
}

func TestSearchMissingSubstring(t *testing.T) {
	if got := Search(sample(), "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestAddThenSearchFindsExactlyOne(t *testing.T) {
	items, err := Add(sample(), Component{ID: " LED-5 ", Location: " Bin 9 "})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	got := Search(items, "LED-5")
	if len(got) != 1 || got[0].Location != "Bin 9" {
		t.Fatalf("expected one trimmed match, got %+v", got)
	}
}

func TestAddRejectsBlankAndDuplicate(t *testing.T) {
	items := sample()

	if _, err := Add(items, Component{ID: "   ", Location: "x"}); !errors.Is(err, ErrBlankField) {
		t.Fatalf("expected ErrBlankField, got %v", err)
	}
	if _, err := Add(items, Component{ID: "x", Location: ""}); !errors.Is(err, ErrBlankField) {
		t.Fatalf("expected ErrBlankField for blank location, got %v", err)
	}

	got, err := Add(items, Component{ID: "C-22", Location: "elsewhere"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if len(got) != len(items) || got[1].Location != "Drawer A" {
		t.Fatalf("duplicate add must leave collection unchanged, got %+v", got)
	}
}

func TestAddDuplicateCheckIsCaseSensitive(t *testing.T) {
	if _, err := Add(sample(), Component{ID: "c-22", Location: "Drawer B"}); err != nil {
		t.Fatalf("expected case-distinct id to be accepted, got %v", err)
	}
}

func TestUpdateLocationPreservesOrderAndSize(t *testing.T) {
	items := sample()
	got, err := Update(items, "C-22", Component{ID: "C-22", Location: "Drawer Z"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("expected size %d, got %d", len(items), len(got))
	}
	if got[1].ID != "C-22" || got[1].Location != "Drawer Z" {
		t.Fatalf("expected in-place update at index 1, got %+v", got)
	}
	if items[1].Location != "Drawer A" {
		t.Fatalf("input slice must not be modified")
	}
}

func TestUpdateRenameCollisionFails(t *testing.T) {
	items := sample()
	got, err := Update(items, "C-22", Component{ID: "R-100", Location: "x"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if got[1] != items[1] || got[0] != items[0] {
		t.Fatalf("failed update must leave data unchanged")
	}
}

func TestUpdateRenameToFreeID(t *testing.T) {
	got, err := Update(sample(), "C-22", Component{ID: "C-23", Location: "Drawer A"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got[1].ID != "C-23" {
		t.Fatalf("expected rename in place, got %+v", got)
	}
}

func TestUpdateMissingTarget(t *testing.T) {
	if _, err := Update(sample(), "nope", Component{ID: "nope", Location: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	once, removed := Delete(sample(), "C-22")
	if !removed || len(once) != 2 {
		t.Fatalf("expected one record removed, got removed=%v %+v", removed, once)
	}
	twice, removed := Delete(once, "C-22")
	if removed || len(twice) != 2 {
		t.Fatalf("expected repeat delete to be a no-op, got removed=%v %+v", removed, twice)
	}
}

func TestDuplicateIDs(t *testing.T) {
	items := append(sample(), Component{ID: "C-22", Location: "x"}, Component{ID: "C-22", Location: "y"})
	dups := DuplicateIDs(items)
	if len(dups) != 1 || dups[0] != "C-22" {
		t.Fatalf("expected [C-22], got %v", dups)
	}
}

func TestCountLabel(t *testing.T) {
	if CountLabel(1) != "1 component" || CountLabel(3) != "3 components" || CountLabel(0) != "0 components" {
		t.Fatalf("unexpected labels: %q %q %q", CountLabel(1), CountLabel(3), CountLabel(0))
	}
}
