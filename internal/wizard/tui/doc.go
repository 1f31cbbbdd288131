// Package tui implements the terminal user interface for the EX-Installer
// wizard.
//
// This package provides an interactive, full-screen TUI for selecting,
// configuring and installing DCC-EX firmware. Built using the Bubble Tea
// framework, it follows the Elm architecture with a Model-Update-View
// pattern at the top level.
//
// # Architecture
//
// The wizard is a sequence of screens the user moves through:
//   - Welcome: entry point
//   - Select product: which firmware to install
//   - Select device: which attached board to install onto
//   - Select version: which release tag to install
//   - Configure: the parameter form producing config.h
//   - Compile: compile and upload
//
// Screen instances are owned by the navigation controller, which caches
// them between visits so half-finished edits survive moving away and back.
// A screen working on product-specific data is rebuilt when the user
// switches products; the others are reused as-is. AppModel is the only
// tea.Model bubbletea sees: it runs transitions and routes every other
// message to the active screen.
//
// # Framework Components
//
//   - bubbles/spinner: board scan, repository sync and build indicators
//   - bubbles/textinput: numeric parameter entry
//   - lipgloss: styling and layout
//
// # Usage Example
//
//	ctx := session.New(services)
//	registry, _ := config.LoadRegistry()
//	app := tui.NewAppModel(ctx, registry)
//	p := tea.NewProgram(app, tea.WithAltScreen())
//	if _, err := p.Run(); err != nil {
//	    log.Fatal(err)
//	}
package tui
