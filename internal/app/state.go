// Package app is the screen controller: an explicit application state, the
// events that drive it, and a pure transition function from
// (state, snapshot, event) to (state, effects).
//
// Controller is the only impure piece. It re-reads the store before every
// event, runs Transition and applies the persistence and export effects,
// handing notifications and file loads back to the caller.
package app

import "github.com/EmilIverskog/storageFinder/internal/inventory"

// ─── Screens ─────────────────────────────────────────────────────────────────

type Screen int

const (
	ScreenSearch Screen = iota
	ScreenDetail
	ScreenAdd
	ScreenEditSearch
	ScreenEditForm
	ScreenImport
)

func (s Screen) String() string {
	switch s {
	case ScreenSearch:
		return "search"
	case ScreenDetail:
		return "detail"
	case ScreenAdd:
		return "add"
	case ScreenEditSearch:
		return "edit-search"
	case ScreenEditForm:
		return "edit-form"
	case ScreenImport:
		return "import"
	}
	return "unknown"
}

// Title is the header shown for the screen.
func (s Screen) Title() string {
	switch s {
	case ScreenDetail:
		return "Component"
	case ScreenAdd:
		return "Add component"
	case ScreenEditSearch, ScreenEditForm:
		return "Edit component"
	case ScreenImport:
		return "Import data"
	}
	return "Storage Finder"
}

// ─── Results ─────────────────────────────────────────────────────────────────

type ResultKind int

const (
	// ResultsHidden: edit-search with nothing typed yet.
	ResultsHidden ResultKind = iota
	// ResultsEmptyCatalog: nothing stored at all and no query.
	ResultsEmptyCatalog
	// ResultsNone: a query that matched nothing.
	ResultsNone
	ResultsMatches
)

type Results struct {
	Kind  ResultKind
	Items []inventory.Component
}

// ─── Dialogs, forms, import ──────────────────────────────────────────────────

type Dialog int

const (
	DialogNone Dialog = iota
	DialogDelete
	DialogImport
)

// Form holds the add/edit input values.
type Form struct {
	ID       string
	Location string
}

// ImportState tracks the file chosen on the import screen. Seq identifies the
// one outstanding read; results carrying any other Seq are stale.
type ImportState struct {
	Path    string
	Seq     int
	Loading bool
	Pending []inventory.Component
}

// Ready reports whether validated data is staged for confirmation.
func (i ImportState) Ready() bool {
	return !i.Loading && i.Pending != nil
}

// ─── State ───────────────────────────────────────────────────────────────────

type State struct {
	Screen     Screen
	Query      string
	Results    Results
	Selected   inventory.Component
	Form       Form
	EditTarget string
	Dialog     Dialog
	Import     ImportState
}

// Initial is the search screen rendered against items.
func Initial(items []inventory.Component) State {
	return enter(State{}, ScreenSearch, items)
}

// ─── Notices ─────────────────────────────────────────────────────────────────

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notice is a transient message for the user.
type Notice struct {
	Level Level
	Text  string
}
