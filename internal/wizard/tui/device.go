package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/railkit/exinstall/internal/product"
	"github.com/railkit/exinstall/internal/session"
	"github.com/railkit/exinstall/internal/urls"
)

// boardsMsg carries the result of scanning for attached boards.
type boardsMsg struct {
	boards []session.Board
	err    error
}

// selectDeviceModel lists attached boards and lets the user pick the
// install target.
type selectDeviceModel struct {
	ctx     *session.Context
	product string

	spin     spinner.Model
	scanning bool
	boards   []session.Board
	cursor   int
	scanErr  error
	pickErr  error
	width    int
}

func newSelectDeviceModel(ctx *session.Context) *selectDeviceModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle
	return &selectDeviceModel{ctx: ctx, spin: sp, scanning: true}
}

func (m *selectDeviceModel) ID() string { return StateSelectDevice }

func (m *selectDeviceModel) SetProduct(p string) { m.product = p }

func (m *selectDeviceModel) Init() tea.Cmd {
	m.scanning = true
	m.scanErr = nil
	return tea.Batch(m.spin.Tick, m.scanBoards())
}

// scanBoards lists boards off the event loop.
func (m *selectDeviceModel) scanBoards() tea.Cmd {
	boards := m.ctx.Services().Boards
	return func() tea.Msg {
		found, err := boards.ListBoards(context.Background())
		return boardsMsg{boards: found, err: err}
	}
}

func (m *selectDeviceModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case spinner.TickMsg:
		if m.scanning {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return cmd
		}

	case boardsMsg:
		m.scanning = false
		m.boards = msg.boards
		m.scanErr = msg.err
		if m.cursor >= len(m.boards) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		if m.scanning {
			return nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.boards)-1 {
				m.cursor++
			}
		case "r":
			return m.Init()
		case "enter":
			if len(m.boards) == 0 {
				return nil
			}
			b := m.boards[m.cursor]
			if err := product.CheckDevice(m.product, b.FQBN, b.Name); err != nil {
				m.pickErr = err
				return nil
			}
			m.pickErr = nil
			m.ctx.SetDevice(b.FQBN, b.Port)
			return switchTo(StateSelectVersion, m.product, "")
		case "esc":
			return switchTo(StateSelectProduct, "", "")
		case "q":
			return tea.Quit
		}
	}
	return nil
}

func (m *selectDeviceModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Select your device"))
	b.WriteString("\n")

	switch {
	case m.scanning:
		b.WriteString(m.spin.View() + " Scanning for attached boards...\n")

	case m.scanErr != nil:
		b.WriteString(ErrorStyle.Render("Could not list boards: " + m.scanErr.Error()))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("r rescan • esc back • q quit"))
		return b.String()

	case len(m.boards) == 0:
		b.WriteString(WarningStyle.Render("No boards detected."))
		b.WriteString("\nConnect your device via USB and rescan.\n")
		b.WriteString(SubtitleStyle.Render("Driver or cable trouble? See " + urls.TroubleshootingGuide))
		b.WriteString("\n")

	default:
		for i, board := range m.boards {
			label := fmt.Sprintf("%s  %s  %s", board.Name, board.FQBN, board.Port)
			if i == m.cursor {
				b.WriteString(SelectedMenuItemStyle.Render("> " + label))
			} else {
				b.WriteString(MenuItemStyle.Render(label))
			}
			b.WriteString("\n")
		}
	}

	if m.pickErr != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.pickErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("up/down select • enter confirm • r rescan • esc back • q quit"))
	return b.String()
}
