// Package tui implements the Bubbletea terminal UI for Storage Finder.
//
// Following the Gentleman Bubbletea patterns:
// - Single Model struct holds ALL view state
// - Update() with type switch
// - Per-screen key handlers returning (tea.Model, tea.Cmd)
// - Slow work (file reads, toast timers) runs as tea.Cmd messages
//
// Navigation and data rules live in internal/app; this package only turns
// keys into app events and app state into text.
package tui

import (
	"time"

	"github.com/EmilIverskog/storageFinder/internal/app"
	"github.com/EmilIverskog/storageFinder/internal/backup"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const toastDuration = 2200 * time.Millisecond

// ─── Custom Messages ─────────────────────────────────────────────────────────

type importLoadedMsg struct {
	loaded app.ImportLoaded
}

type toastExpiredMsg struct {
	seq int
}

// ─── Model ───────────────────────────────────────────────────────────────────

const (
	focusID = iota
	focusLocation
)

type Model struct {
	ctl     *app.Controller
	Version string
	Width   int
	Height  int
	Cursor  int
	Scroll  int

	// Search and edit-search
	SearchInput textinput.Model

	// Add and edit form
	IDInput       textinput.Model
	LocationInput textinput.Model
	FormFocus     int

	// Import
	PathInput     textinput.Model
	ImportSpinner spinner.Model

	// Navigation menu (search screen only)
	MenuOpen   bool
	MenuCursor int

	// Toast
	Toast    *app.Notice
	toastSeq int
}

// New creates a TUI model driving the given controller.
func New(ctl *app.Controller, version string) Model {
	search := newInput("Search by component ID...")
	search.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorLavender)

	return Model{
		ctl:           ctl,
		Version:       version,
		SearchInput:   search,
		IDInput:       newFieldInput("e.g. R-100"),
		LocationInput: newFieldInput("e.g. Shelf 3, drawer B"),
		PathInput:     newInput("/path/to/detaljer_backup.json"),
		ImportSpinner: sp,
	}
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 60
	return ti
}

// newFieldInput edits stored values, which may be longer than any input
// limit. A truncated value would be saved back over the record.
func newFieldInput(placeholder string) textinput.Model {
	ti := newInput(placeholder)
	ti.CharLimit = 0
	return ti
}

// Init only needs the alt screen; the controller has already loaded data.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.EnterAltScreen,
	)
}

// State is the controller state the model renders.
func (m Model) State() app.State {
	return m.ctl.State()
}

// ─── Commands ────────────────────────────────────────────────────────────────

func readImportFile(path string, seq int) tea.Cmd {
	return func() tea.Msg {
		items, err := readImportFileFn(path)
		return importLoadedMsg{loaded: app.ImportLoaded{Seq: seq, Items: items, Err: err}}
	}
}

var readImportFileFn = backup.ReadFile

func expireToast(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}
