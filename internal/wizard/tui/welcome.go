package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/railkit/exinstall/internal/urls"
)

// welcomeModel is the entry screen.
type welcomeModel struct {
	width int
}

func newWelcomeModel() *welcomeModel {
	return &welcomeModel{}
}

func (m *welcomeModel) ID() string { return StateWelcome }

func (m *welcomeModel) Init() tea.Cmd { return nil }

func (m *welcomeModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return switchTo(StateSelectProduct, "", "")
		case "q", "esc":
			return tea.Quit
		}
	}
	return nil
}

func (m *welcomeModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Welcome"))
	b.WriteString("\n")
	b.WriteString(InfoBoxStyle.Width(contentWidth(m.width) - 4).Render(
		"This installer downloads, configures, compiles and uploads DCC-EX\n" +
			"firmware to your Arduino device.\n\n" +
			"You will need your device connected via USB before continuing.\n\n" +
			"New to DCC-EX? Start here: " + urls.GettingStarted))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter continue • q quit"))

	return b.String()
}
