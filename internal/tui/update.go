package tui

import (
	"strings"

	"github.com/EmilIverskog/storageFinder/internal/app"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ─── Update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global quit — always works
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKeyPress(msg)

	case importLoadedMsg:
		return m.dispatch(msg.loaded)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.Toast = nil
		}
		return m, nil

	case spinner.TickMsg:
		// Only keep the spinner alive while a file is being read
		if m.State().Import.Loading {
			var cmd tea.Cmd
			m.ImportSpinner, cmd = m.ImportSpinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// dispatch sends ev to the controller, re-syncs the inputs when the screen
// changes and turns the returned effects into commands.
func (m Model) dispatch(ev app.Event) (Model, tea.Cmd) {
	before := m.State().Screen
	effects := m.ctl.Dispatch(ev)
	st := m.State()

	var cmds []tea.Cmd
	if st.Screen != before {
		cmds = append(cmds, m.enterScreen(st))
	}

	for _, eff := range effects {
		switch eff := eff.(type) {
		case app.NotifyEffect:
			n := eff.Notice
			m.Toast = &n
			m.toastSeq++
			cmds = append(cmds, expireToast(m.toastSeq))
		case app.LoadImportEffect:
			cmds = append(cmds, readImportFile(eff.Path, eff.Seq), m.ImportSpinner.Tick)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) enterScreen(st app.State) tea.Cmd {
	m.Cursor = 0
	m.Scroll = 0
	m.MenuOpen = false
	m.SearchInput.Blur()
	m.IDInput.Blur()
	m.LocationInput.Blur()
	m.PathInput.Blur()

	switch st.Screen {
	case app.ScreenSearch, app.ScreenEditSearch:
		m.SearchInput.SetValue(st.Query)
		return m.SearchInput.Focus()
	case app.ScreenAdd, app.ScreenEditForm:
		m.IDInput.SetValue(st.Form.ID)
		m.LocationInput.SetValue(st.Form.Location)
		m.FormFocus = focusID
		return m.IDInput.Focus()
	case app.ScreenImport:
		m.PathInput.SetValue("")
		return m.PathInput.Focus()
	}
	return nil
}

// ─── Key Press Router ────────────────────────────────────────────────────────

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.State()
	if st.Dialog != app.DialogNone {
		return m.handleDialogKeys(msg.String())
	}
	if m.MenuOpen {
		return m.handleMenuKeys(msg.String())
	}

	switch st.Screen {
	case app.ScreenSearch:
		return m.handleSearchKeys(msg)
	case app.ScreenDetail:
		return m.handleDetailKeys(msg.String())
	case app.ScreenAdd, app.ScreenEditForm:
		return m.handleFormKeys(msg)
	case app.ScreenEditSearch:
		return m.handleEditSearchKeys(msg)
	case app.ScreenImport:
		return m.handleImportKeys(msg)
	}
	return m, nil
}

// ─── Dialog ──────────────────────────────────────────────────────────────────

func (m Model) handleDialogKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y", "enter":
		return m.dispatch(app.Confirm{})
	case "n", "N", "esc":
		return m.dispatch(app.Cancel{})
	}
	return m, nil
}

// ─── Menu ────────────────────────────────────────────────────────────────────

type menuItem struct {
	label string
	event app.Event
}

var menuItems = []menuItem{
	{"Add component", app.Open{Screen: app.ScreenAdd}},
	{"Edit component", app.Open{Screen: app.ScreenEditSearch}},
	{"Import data", app.Open{Screen: app.ScreenImport}},
	{"Export data", app.Export{}},
	{"Quit", nil},
}

func (m Model) handleMenuKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.MenuCursor > 0 {
			m.MenuCursor--
		}
	case "down", "j":
		if m.MenuCursor < len(menuItems)-1 {
			m.MenuCursor++
		}
	case "enter", " ":
		item := menuItems[m.MenuCursor]
		m.MenuOpen = false
		if item.event == nil {
			return m, tea.Quit
		}
		return m.dispatch(item.event)
	case "esc", "tab", "q":
		m.MenuOpen = false
	}
	return m, nil
}

// ─── Search ──────────────────────────────────────────────────────────────────

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.MenuOpen = true
		m.MenuCursor = 0
		return m, nil
	case "ctrl+e":
		return m.dispatch(app.Export{})
	case "esc":
		if m.SearchInput.Value() == "" {
			return m, tea.Quit
		}
		m.SearchInput.SetValue("")
		return m.updateQuery()
	}
	if next, cmd, ok := m.handleResultKeys(msg.String()); ok {
		return next, cmd
	}
	return m.typeQuery(msg)
}

func (m Model) handleEditSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		return m.dispatch(app.Back{})
	}
	if next, cmd, ok := m.handleResultKeys(msg.String()); ok {
		return next, cmd
	}
	return m.typeQuery(msg)
}

// handleResultKeys moves through and picks from the result list. ok is false
// when the key belongs to the search input instead.
func (m Model) handleResultKeys(key string) (Model, tea.Cmd, bool) {
	items := m.State().Results.Items
	visibleItems := m.visibleResults()

	switch key {
	case "up":
		if m.Cursor > 0 {
			m.Cursor--
			if m.Cursor < m.Scroll {
				m.Scroll = m.Cursor
			}
		}
		return m, nil, true
	case "down":
		if m.Cursor < len(items)-1 {
			m.Cursor++
			if m.Cursor >= m.Scroll+visibleItems {
				m.Scroll = m.Cursor - visibleItems + 1
			}
		}
		return m, nil, true
	case "enter":
		if len(items) > 0 && m.Cursor < len(items) {
			next, cmd := m.dispatch(app.Select{ID: items[m.Cursor].ID})
			return next, cmd, true
		}
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) typeQuery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	if m.SearchInput.Value() == m.State().Query {
		return m, cmd
	}
	next, dcmd := m.updateQuery()
	return next, tea.Batch(cmd, dcmd)
}

func (m Model) updateQuery() (tea.Model, tea.Cmd) {
	m.Cursor = 0
	m.Scroll = 0
	return m.dispatch(app.QueryChanged{Query: m.SearchInput.Value()})
}

func (m Model) visibleResults() int {
	visibleItems := m.Height - 12 // one line per result
	if visibleItems < 5 {
		visibleItems = 5
	}
	return visibleItems
}

// ─── Detail ──────────────────────────────────────────────────────────────────

func (m Model) handleDetailKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "q", "backspace", "enter":
		return m.dispatch(app.Back{})
	}
	return m, nil
}

// ─── Add / Edit form ─────────────────────────────────────────────────────────

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.dispatch(app.Back{})
	case "tab", "shift+tab", "up", "down":
		cmd := m.toggleFormFocus()
		return m, cmd
	case "ctrl+d":
		if m.State().Screen == app.ScreenEditForm {
			return m.dispatch(app.RequestDelete{})
		}
		return m, nil
	case "enter":
		if m.FormFocus == focusID {
			cmd := m.toggleFormFocus()
			return m, cmd
		}
		return m.dispatch(app.Submit{Form: app.Form{
			ID:       m.IDInput.Value(),
			Location: m.LocationInput.Value(),
		}})
	case "ctrl+s":
		return m.dispatch(app.Submit{Form: app.Form{
			ID:       m.IDInput.Value(),
			Location: m.LocationInput.Value(),
		}})
	}

	var cmd tea.Cmd
	if m.FormFocus == focusID {
		m.IDInput, cmd = m.IDInput.Update(msg)
	} else {
		m.LocationInput, cmd = m.LocationInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleFormFocus() tea.Cmd {
	if m.FormFocus == focusID {
		m.FormFocus = focusLocation
		m.IDInput.Blur()
		return m.LocationInput.Focus()
	}
	m.FormFocus = focusID
	m.LocationInput.Blur()
	return m.IDInput.Focus()
}

// ─── Import ──────────────────────────────────────────────────────────────────

func (m Model) handleImportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.State()
	switch msg.String() {
	case "esc":
		return m.dispatch(app.Back{})
	case "enter":
		// Same file already staged: ask to replace. Otherwise read it.
		if st.Import.Ready() && strings.TrimSpace(m.PathInput.Value()) == st.Import.Path {
			return m.dispatch(app.RequestImport{})
		}
		return m.dispatch(app.ChooseFile{Path: m.PathInput.Value()})
	}

	var cmd tea.Cmd
	m.PathInput, cmd = m.PathInput.Update(msg)
	return m, cmd
}
