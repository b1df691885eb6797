package tui

import "github.com/charmbracelet/lipgloss"

// ─── Colors (Rosé Pine) ──────────────────────────────────────────────────────

var (
	colorOverlay  = lipgloss.Color("#6e6a86") // Muted purple borders
	colorText     = lipgloss.Color("#e0def4") // Light lavender text
	colorSubtext  = lipgloss.Color("#908caa") // Dim lavender
	colorLavender = lipgloss.Color("#c4a7e7") // Primary accent
	colorGreen    = lipgloss.Color("#9ccfd8") // Success
	colorPeach    = lipgloss.Color("#f6c177") // Warnings
	colorRed      = lipgloss.Color("#eb6f92") // Soft red
	colorBlue     = lipgloss.Color("#31748f") // Deep cyan
	colorMauve    = lipgloss.Color("#ebbcba") // Soft pink/mauve
	colorYellow   = lipgloss.Color("#f1ca93") // Gold
)

// ─── Layout Styles ───────────────────────────────────────────────────────────

var (
	// App frame
	appStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(1, 2)

	// Header bar
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorLavender).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorOverlay).
			PaddingBottom(1).
			MarginBottom(1)

	versionStyle = lipgloss.NewStyle().
			Foreground(colorSubtext).
			Italic(true)

	// Footer / help bar
	helpStyle = lipgloss.NewStyle().
			Foreground(colorSubtext).
			MarginTop(1)
)

// ─── Menu Styles ─────────────────────────────────────────────────────────────

var (
	menuBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorLavender).
			Padding(0, 1).
			MarginBottom(1)

	// Menu item (normal)
	menuItemStyle = lipgloss.NewStyle().
			Foreground(colorText).
			PaddingLeft(2)

	// Menu item (selected)
	menuSelectedStyle = lipgloss.NewStyle().
				Foreground(colorLavender).
				Bold(true).
				PaddingLeft(1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMauve).
			MarginBottom(1)
)

// ─── List Styles ─────────────────────────────────────────────────────────────

var (
	// List item (normal)
	listItemStyle = lipgloss.NewStyle().
			Foreground(colorText).
			PaddingLeft(2)

	// List item (selected/cursor)
	listSelectedStyle = lipgloss.NewStyle().
				Foreground(colorLavender).
				Bold(true).
				PaddingLeft(1)

	// Component ID
	idStyle = lipgloss.NewStyle().
		Foreground(colorBlue).
		Bold(true)

	// Storage location
	locationStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	// Result counter
	countStyle = lipgloss.NewStyle().
			Foreground(colorSubtext).
			Italic(true)
)

// ─── Detail / Form Styles ────────────────────────────────────────────────────

var (
	detailLabelStyle = lipgloss.NewStyle().
				Foreground(colorSubtext).
				Width(14).
				Align(lipgloss.Right).
				PaddingRight(1)

	detailValueStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Bold(true)

	focusedLabelStyle = detailLabelStyle.
				Foreground(colorLavender).
				Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorPeach).
			PaddingLeft(2)
)

// ─── Search Styles ───────────────────────────────────────────────────────────

var (
	searchInputStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colorLavender).
				Foreground(colorText).
				Padding(0, 1).
				MarginBottom(1)

	noResultsStyle = lipgloss.NewStyle().
			Foreground(colorSubtext).
			Italic(true).
			PaddingLeft(2).
			MarginTop(1)
)

// ─── Dialog / Toast Styles ───────────────────────────────────────────────────

var (
	dialogStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(colorRed).
			Padding(1, 2).
			MarginTop(1)

	toastInfoStyle = lipgloss.NewStyle().
			Foreground(colorText).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorOverlay).
			Padding(0, 1).
			MarginTop(1)

	toastSuccessStyle = toastInfoStyle.
				Foreground(colorGreen).
				BorderForeground(colorGreen)

	toastErrorStyle = toastInfoStyle.
			Foreground(colorRed).
			BorderForeground(colorRed)
)
