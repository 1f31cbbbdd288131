package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/railkit/exinstall/internal/version"
)

// Application branding constants
const (
	AppName       = "EX-INSTALLER"
	GitHubURL     = "github.com/railkit/exinstall"
	GitHubFullURL = "https://github.com/railkit/exinstall"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 110 // Maximum content width before capping
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#00A3E0") // DCC-EX blue
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red

	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#00A3E0") // Blue (same as primary)
	HighlightColor = lipgloss.Color("#43BF6D") // Green (same as secondary)
)

// Common styles
var (
	// Title style - bold, branded
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0).
			MarginBottom(1)

	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	// Menu item style (unselected)
	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	// Menu item style (selected)
	SelectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(HighlightColor).
				Bold(true)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(1, 0)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor)

	// Success message style
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor)

	// Warning message style
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// Info box style
	InfoBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)

	// Field label style in the configuration form
	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Width(24)

	// Disabled (version-gated) field style
	DisabledFieldStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Strikethrough(false)

	// Spinner style
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)
)

// RenderTitle renders a screen title with the branded style.
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderHeader renders the application header shown on every screen.
func RenderHeader() string {
	title := TitleStyle.Render(AppName + " v" + AppVersion())
	sub := SubtitleStyle.Render("DCC-EX firmware installer - " + GitHubURL)
	return lipgloss.JoinVertical(lipgloss.Left, title, sub)
}

// contentWidth clamps the terminal width to the supported content range.
func contentWidth(w int) int {
	if w < MinTerminalWidth {
		return MinTerminalWidth
	}
	if w > MaxContentWidth {
		return MaxContentWidth
	}
	return w
}
