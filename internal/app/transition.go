package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/EmilIverskog/storageFinder/internal/backup"
	"github.com/EmilIverskog/storageFinder/internal/inventory"
)

// ─── Events ──────────────────────────────────────────────────────────────────

type Event interface{ isEvent() }

// QueryChanged updates the search text on Search and EditSearch.
type QueryChanged struct{ Query string }

// Select picks a result: Search → Detail, EditSearch → EditForm.
type Select struct{ ID string }

// Open is a menu action from Search.
type Open struct{ Screen Screen }

type Back struct{}

// Submit saves the add or edit form.
type Submit struct{ Form Form }

type RequestDelete struct{}

type RequestImport struct{}

type Confirm struct{}

type Cancel struct{}

// Export writes the catalog to a backup file.
type Export struct{}

// ChooseFile starts reading an import file.
type ChooseFile struct{ Path string }

// ImportLoaded is the outcome of the read started by ChooseFile.
type ImportLoaded struct {
	Seq   int
	Items []inventory.Component
	Err   error
}

// Refresh re-renders the current results against a fresh snapshot.
type Refresh struct{}

func (QueryChanged) isEvent()  {}
func (Select) isEvent()        {}
func (Open) isEvent()          {}
func (Back) isEvent()          {}
func (Submit) isEvent()        {}
func (RequestDelete) isEvent() {}
func (RequestImport) isEvent() {}
func (Confirm) isEvent()       {}
func (Cancel) isEvent()        {}
func (Export) isEvent()        {}
func (ChooseFile) isEvent()    {}
func (ImportLoaded) isEvent()  {}
func (Refresh) isEvent()       {}

// ─── Effects ─────────────────────────────────────────────────────────────────

type Effect interface{ isEffect() }

// SaveEffect persists the full collection.
type SaveEffect struct{ Items []inventory.Component }

// ExportEffect writes items to a backup file.
type ExportEffect struct{ Items []inventory.Component }

type NotifyEffect struct{ Notice Notice }

// LoadImportEffect asks the caller to read Path and answer with ImportLoaded{Seq}.
type LoadImportEffect struct {
	Path string
	Seq  int
}

func (SaveEffect) isEffect()       {}
func (ExportEffect) isEffect()     {}
func (NotifyEffect) isEffect()     {}
func (LoadImportEffect) isEffect() {}

func notify(level Level, format string, args ...any) Effect {
	return NotifyEffect{Notice: Notice{Level: level, Text: fmt.Sprintf(format, args...)}}
}

// ─── Transition ──────────────────────────────────────────────────────────────

// Transition is the whole navigation and CRUD logic. items is a snapshot read
// just before the event; Transition never modifies it.
func Transition(st State, items []inventory.Component, ev Event) (State, []Effect) {
	// An open dialog swallows everything except its own answer.
	if st.Dialog != DialogNone {
		switch ev := ev.(type) {
		case Confirm:
			return confirm(st, items)
		case Cancel:
			st.Dialog = DialogNone
			return st, nil
		case ImportLoaded:
			return importLoaded(st, ev)
		}
		return st, nil
	}

	switch ev := ev.(type) {
	case QueryChanged:
		if st.Screen != ScreenSearch && st.Screen != ScreenEditSearch {
			return st, nil
		}
		st.Query = ev.Query
		st.Results = results(st.Screen, items, ev.Query)
		return st, nil

	case Refresh:
		if st.Screen == ScreenSearch || st.Screen == ScreenEditSearch {
			st.Results = results(st.Screen, items, st.Query)
		}
		return st, nil

	case Select:
		return selectResult(st, items, ev.ID)

	case Open:
		if st.Screen != ScreenSearch {
			return st, nil
		}
		switch ev.Screen {
		case ScreenAdd, ScreenEditSearch, ScreenImport:
			return enter(st, ev.Screen, items), nil
		}
		return st, nil

	case Back:
		switch st.Screen {
		case ScreenDetail, ScreenAdd, ScreenEditSearch, ScreenImport:
			return enter(st, ScreenSearch, items), nil
		case ScreenEditForm:
			return enter(st, ScreenEditSearch, items), nil
		}
		return st, nil

	case Submit:
		switch st.Screen {
		case ScreenAdd:
			return submitAdd(st, items, ev.Form)
		case ScreenEditForm:
			return submitEdit(st, items, ev.Form)
		}
		return st, nil

	case RequestDelete:
		if st.Screen == ScreenEditForm {
			st.Dialog = DialogDelete
		}
		return st, nil

	case Export:
		if len(items) == 0 {
			return st, []Effect{notify(LevelInfo, "No data to export")}
		}
		return st, []Effect{ExportEffect{Items: items}}

	case ChooseFile:
		path := strings.TrimSpace(ev.Path)
		if st.Screen != ScreenImport || path == "" {
			return st, nil
		}
		st.Import = ImportState{Path: path, Seq: st.Import.Seq + 1, Loading: true}
		return st, []Effect{LoadImportEffect{Path: path, Seq: st.Import.Seq}}

	case ImportLoaded:
		return importLoaded(st, ev)

	case RequestImport:
		if st.Screen == ScreenImport && st.Import.Ready() {
			st.Dialog = DialogImport
		}
		return st, nil
	}

	return st, nil
}

// enter switches to screen and resets that screen's transient fields.
func enter(st State, screen Screen, items []inventory.Component) State {
	st.Screen = screen
	st.Dialog = DialogNone

	switch screen {
	case ScreenSearch:
		st.Query = ""
		st.Results = results(ScreenSearch, items, "")
		st.Selected = inventory.Component{}
		st.Form = Form{}
		st.EditTarget = ""
	case ScreenAdd:
		st.Form = Form{}
	case ScreenEditSearch:
		st.Query = ""
		st.Results = results(ScreenEditSearch, items, "")
		st.Form = Form{}
		st.EditTarget = ""
	case ScreenImport:
		// Seq keeps counting so reads started on an earlier visit stay stale.
		st.Import = ImportState{Seq: st.Import.Seq}
	}
	return st
}

func results(screen Screen, items []inventory.Component, query string) Results {
	blank := strings.TrimSpace(query) == ""
	if screen == ScreenEditSearch && blank {
		return Results{Kind: ResultsHidden}
	}
	if screen == ScreenSearch && blank && len(items) == 0 {
		return Results{Kind: ResultsEmptyCatalog}
	}
	matches := inventory.Search(items, query)
	if len(matches) == 0 {
		return Results{Kind: ResultsNone}
	}
	return Results{Kind: ResultsMatches, Items: matches}
}

func selectResult(st State, items []inventory.Component, id string) (State, []Effect) {
	c, ok := inventory.Find(items, id)
	if !ok {
		return st, nil
	}
	switch st.Screen {
	case ScreenSearch:
		st = enter(st, ScreenDetail, items)
		st.Selected = c
	case ScreenEditSearch:
		st = enter(st, ScreenEditForm, items)
		st.EditTarget = c.ID
		st.Form = Form{ID: c.ID, Location: c.Location}
	}
	return st, nil
}

func submitAdd(st State, items []inventory.Component, f Form) (State, []Effect) {
	st.Form = f
	next, err := inventory.Add(items, inventory.Component{ID: f.ID, Location: f.Location})
	if err != nil {
		return st, []Effect{validationNotice(err)}
	}
	return enter(st, ScreenSearch, next), []Effect{
		SaveEffect{Items: next},
		notify(LevelSuccess, "Component saved"),
	}
}

func submitEdit(st State, items []inventory.Component, f Form) (State, []Effect) {
	st.Form = f
	next, err := inventory.Update(items, st.EditTarget, inventory.Component{ID: f.ID, Location: f.Location})
	if errors.Is(err, inventory.ErrNotFound) {
		return st, nil
	}
	if err != nil {
		return st, []Effect{validationNotice(err)}
	}
	return enter(st, ScreenSearch, next), []Effect{
		SaveEffect{Items: next},
		notify(LevelSuccess, "Component updated"),
	}
}

func confirm(st State, items []inventory.Component) (State, []Effect) {
	switch st.Dialog {
	case DialogDelete:
		next, _ := inventory.Delete(items, st.EditTarget)
		return enter(st, ScreenSearch, next), []Effect{
			SaveEffect{Items: next},
			notify(LevelSuccess, "Component deleted"),
		}
	case DialogImport:
		staged := st.Import.Pending
		st.Import = ImportState{Seq: st.Import.Seq}
		return enter(st, ScreenSearch, staged), []Effect{
			SaveEffect{Items: staged},
			notify(LevelSuccess, "Imported %s", inventory.CountLabel(len(staged))),
		}
	}
	st.Dialog = DialogNone
	return st, nil
}

func importLoaded(st State, ev ImportLoaded) (State, []Effect) {
	if st.Screen != ScreenImport || !st.Import.Loading || ev.Seq != st.Import.Seq {
		return st, nil
	}
	st.Import.Loading = false
	if ev.Err != nil {
		st.Import.Pending = nil
		switch {
		case errors.Is(ev.Err, backup.ErrMalformedJSON):
			return st, []Effect{notify(LevelError, "Could not read JSON file")}
		case errors.Is(ev.Err, backup.ErrInvalidStructure):
			return st, []Effect{notify(LevelError, "Invalid file structure")}
		}
		return st, []Effect{notify(LevelError, "Could not read file: %v", ev.Err)}
	}
	st.Import.Pending = ev.Items
	if st.Import.Pending == nil {
		st.Import.Pending = []inventory.Component{}
	}
	return st, nil
}

func validationNotice(err error) Effect {
	switch {
	case errors.Is(err, inventory.ErrBlankField):
		return notify(LevelError, "Fill in all fields")
	case errors.Is(err, inventory.ErrDuplicateID):
		return notify(LevelError, "Component ID already exists")
	}
	return notify(LevelError, "%v", err)
}
