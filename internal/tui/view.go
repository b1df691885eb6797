package tui

import (
	"fmt"
	"strings"

	"github.com/EmilIverskog/storageFinder/internal/app"
	"github.com/EmilIverskog/storageFinder/internal/inventory"
)

// ─── View (main router) ─────────────────────────────────────────────────────

func (m Model) View() string {
	st := m.State()
	var content string

	switch st.Screen {
	case app.ScreenSearch:
		content = m.viewSearch(st)
	case app.ScreenDetail:
		content = m.viewDetail(st)
	case app.ScreenAdd, app.ScreenEditForm:
		content = m.viewForm(st)
	case app.ScreenEditSearch:
		content = m.viewEditSearch(st)
	case app.ScreenImport:
		content = m.viewImport(st)
	default:
		content = "Unknown screen"
	}

	if st.Dialog != app.DialogNone {
		content += "\n" + viewDialog(st)
	}

	if m.Toast != nil {
		content += "\n" + renderToast(*m.Toast)
	}

	return appStyle.Render(content)
}

func (m Model) header(st app.State) string {
	title := "  " + st.Screen.Title()
	if st.Screen == app.ScreenSearch && m.Version != "" {
		title += "  " + versionStyle.Render(m.Version)
	}
	return headerStyle.Render(title) + "\n"
}

// ─── Search ──────────────────────────────────────────────────────────────────

func (m Model) viewSearch(st app.State) string {
	var b strings.Builder

	b.WriteString(m.header(st))
	if m.MenuOpen {
		b.WriteString(m.viewMenu())
		b.WriteString("\n")
	}
	b.WriteString(searchInputStyle.Render(m.SearchInput.View()))
	b.WriteString("\n")
	b.WriteString(m.viewResults(st.Results))

	if m.MenuOpen {
		b.WriteString(helpStyle.Render("\n  j/k navigate • enter select • esc close"))
	} else {
		b.WriteString(helpStyle.Render("\n  type to search • ↑/↓ navigate • enter open • tab menu • ctrl+e export • esc quit"))
	}
	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Menu"))
	b.WriteString("\n")
	for i, item := range menuItems {
		if i == m.MenuCursor {
			b.WriteString(menuSelectedStyle.Render("▸ " + item.label))
		} else {
			b.WriteString(menuItemStyle.Render("  " + item.label))
		}
		if i < len(menuItems)-1 {
			b.WriteString("\n")
		}
	}
	return menuBoxStyle.Render(b.String())
}

// ─── Edit Search ─────────────────────────────────────────────────────────────

func (m Model) viewEditSearch(st app.State) string {
	var b strings.Builder

	b.WriteString(m.header(st))
	b.WriteString(searchInputStyle.Render(m.SearchInput.View()))
	b.WriteString("\n")
	b.WriteString(m.viewResults(st.Results))
	b.WriteString(helpStyle.Render("\n  type to search • ↑/↓ navigate • enter edit • esc back"))
	return b.String()
}

// ─── Results ─────────────────────────────────────────────────────────────────

func (m Model) viewResults(r app.Results) string {
	switch r.Kind {
	case app.ResultsHidden:
		return noResultsStyle.Render("Search for the component you want to change.") + "\n"
	case app.ResultsEmptyCatalog:
		return noResultsStyle.Render("No components stored yet. Press tab to add one.") + "\n"
	case app.ResultsNone:
		return noResultsStyle.Render("No matching components.") + "\n"
	}

	var b strings.Builder
	total := len(r.Items)
	b.WriteString(countStyle.Render("  " + inventory.CountLabel(total)))
	b.WriteString("\n\n")

	visibleItems := m.visibleResults()
	end := m.Scroll + visibleItems
	if end > total {
		end = total
	}
	for i := m.Scroll; i < end; i++ {
		b.WriteString(m.renderComponentListItem(i, r.Items[i]))
	}

	if total > visibleItems {
		b.WriteString(fmt.Sprintf("\n  %s\n", countStyle.Render(
			fmt.Sprintf("showing %d-%d of %d", m.Scroll+1, end, total))))
	}
	return b.String()
}

// ─── Detail ──────────────────────────────────────────────────────────────────

func (m Model) viewDetail(st app.State) string {
	var b strings.Builder

	b.WriteString(m.header(st))
	b.WriteString(fmt.Sprintf("%s %s\n",
		detailLabelStyle.Render("ID:"),
		idStyle.Render(st.Selected.ID)))
	b.WriteString(fmt.Sprintf("%s %s\n",
		detailLabelStyle.Render("Location:"),
		detailValueStyle.Render(locationStyle.Render(st.Selected.Location))))

	b.WriteString(helpStyle.Render("\n  esc back"))
	return b.String()
}

// ─── Add / Edit Form ─────────────────────────────────────────────────────────

func (m Model) viewForm(st app.State) string {
	var b strings.Builder

	b.WriteString(m.header(st))
	if st.Screen == app.ScreenEditForm {
		b.WriteString(fmt.Sprintf("%s %s\n\n",
			detailLabelStyle.Render("Editing:"),
			idStyle.Render(st.EditTarget)))
	}

	b.WriteString(m.formRow("ID:", m.FormFocus == focusID, m.IDInput.View()))
	b.WriteString(m.formRow("Location:", m.FormFocus == focusLocation, m.LocationInput.View()))

	help := "\n  tab switch field • enter next/save • esc cancel"
	if st.Screen == app.ScreenEditForm {
		help = "\n  tab switch field • enter next/save • ctrl+d delete • esc back"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m Model) formRow(label string, focused bool, input string) string {
	style := detailLabelStyle
	if focused {
		style = focusedLabelStyle
	}
	return fmt.Sprintf("%s %s\n", style.Render(label), input)
}

// ─── Import ──────────────────────────────────────────────────────────────────

func (m Model) viewImport(st app.State) string {
	var b strings.Builder

	b.WriteString(m.header(st))
	b.WriteString(warningStyle.Render("Importing replaces ALL stored components."))
	b.WriteString("\n\n")
	b.WriteString(searchInputStyle.Render(m.PathInput.View()))
	b.WriteString("\n")

	imp := st.Import
	switch {
	case imp.Loading:
		b.WriteString(fmt.Sprintf("  %s Reading %s...\n", m.ImportSpinner.View(), imp.Path))
	case imp.Ready():
		b.WriteString(fmt.Sprintf("  %s %s\n",
			detailLabelStyle.Render("File:"),
			locationStyle.Render(imp.Path)))
		b.WriteString(fmt.Sprintf("  %s %s\n",
			detailLabelStyle.Render("Ready:"),
			detailValueStyle.Render(inventory.CountLabel(len(imp.Pending)))))
		b.WriteString(helpStyle.Render("\n  enter import • edit path to choose another file • esc back"))
		return b.String()
	}

	b.WriteString(helpStyle.Render("\n  type a file path • enter read file • esc back"))
	return b.String()
}

// ─── Dialog ──────────────────────────────────────────────────────────────────

func viewDialog(st app.State) string {
	var question string
	switch st.Dialog {
	case app.DialogDelete:
		question = fmt.Sprintf("Delete %s? This cannot be undone.", st.EditTarget)
	case app.DialogImport:
		question = fmt.Sprintf("Replace all stored components with %s from %s?",
			inventory.CountLabel(len(st.Import.Pending)), st.Import.Path)
	}
	return dialogStyle.Render(question + "\n\n" + helpStyle.Render("y confirm • n cancel"))
}

// ─── Shared Renderers ────────────────────────────────────────────────────────

func (m Model) renderComponentListItem(index int, c inventory.Component) string {
	cursor := "  "
	style := listItemStyle
	if index == m.Cursor {
		cursor = "▸ "
		style = listSelectedStyle
	}

	return fmt.Sprintf("%s%s  %s\n",
		cursor,
		style.Render(idStyle.Render(truncateStr(c.ID, 32))),
		locationStyle.Render(truncateStr(c.Location, 60)))
}

func renderToast(n app.Notice) string {
	switch n.Level {
	case app.LevelSuccess:
		return toastSuccessStyle.Render("✓ " + n.Text)
	case app.LevelError:
		return toastErrorStyle.Render("✗ " + n.Text)
	}
	return toastInfoStyle.Render(n.Text)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func truncateStr(s string, max int) string {
	// Remove newlines for single-line display
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
