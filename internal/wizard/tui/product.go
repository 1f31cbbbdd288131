package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/railkit/exinstall/internal/config"
	"github.com/railkit/exinstall/internal/product"
)

// selectProductModel lets the user pick which firmware product to install.
type selectProductModel struct {
	registry *config.Registry
	ids      []string
	cursor   int
	width    int
}

func newSelectProductModel(registry *config.Registry) *selectProductModel {
	return &selectProductModel{
		registry: registry,
		ids:      product.IDs(),
	}
}

func (m *selectProductModel) ID() string { return StateSelectProduct }

func (m *selectProductModel) Init() tea.Cmd { return nil }

func (m *selectProductModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.ids)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.ids) > 0 {
				return switchTo(StateSelectDevice, m.ids[m.cursor], "")
			}
		case "esc":
			return switchTo(StateWelcome, "", "")
		case "q":
			return tea.Quit
		}
	}
	return nil
}

func (m *selectProductModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Select a product to install"))
	b.WriteString("\n")

	for i, id := range m.ids {
		details, ok := product.Lookup(id)
		if !ok {
			continue
		}
		label := details.Name
		if state := m.registry.GetProduct(id); state != nil && state.LastVersion != "" {
			label = fmt.Sprintf("%s  (last installed %s)", details.Name, state.LastVersion)
		}
		if i == m.cursor {
			b.WriteString(SelectedMenuItemStyle.Render("> " + label))
		} else {
			b.WriteString(MenuItemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("up/down select • enter confirm • esc back • q quit"))
	return b.String()
}
