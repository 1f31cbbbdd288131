package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/railkit/exinstall/internal/config"
	"github.com/railkit/exinstall/internal/product"
	"github.com/railkit/exinstall/internal/semver"
	"github.com/railkit/exinstall/internal/session"
	"github.com/railkit/exinstall/internal/workspace"
)

// buildDoneMsg carries the result of the compile and upload run.
type buildDoneMsg struct {
	err error
}

// compileModel compiles the configured firmware and uploads it to the
// selected device. A fresh instance is built for every product: a build in
// progress belongs to exactly one checkout.
type compileModel struct {
	ctx      *session.Context
	registry *config.Registry
	product  string
	version  semver.Version

	spin     spinner.Model
	building bool
	done     bool
	buildErr error
	width    int
}

func newCompileModel(ctx *session.Context, registry *config.Registry) *compileModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle
	return &compileModel{ctx: ctx, registry: registry, spin: sp}
}

func (m *compileModel) ID() string { return StateCompile }

func (m *compileModel) SetProduct(p string) { m.product = p }

func (m *compileModel) SetVersion(v semver.Version) { m.version = v }

func (m *compileModel) Init() tea.Cmd {
	if m.building || m.done {
		return nil
	}
	m.building = true
	m.buildErr = nil
	return tea.Batch(m.spin.Tick, m.build())
}

// build runs compile and upload off the event loop.
func (m *compileModel) build() tea.Cmd {
	builder := m.ctx.Services().Builder
	id := m.product
	fqbn := m.ctx.Device
	port := m.ctx.Port
	return func() tea.Msg {
		details, ok := product.Lookup(id)
		if !ok {
			return buildDoneMsg{err: fmt.Errorf("unknown product %q", id)}
		}
		dir, err := workspace.InstallDir(details.LocalDir())
		if err != nil {
			return buildDoneMsg{err: err}
		}
		if err := builder.Compile(context.Background(), dir, fqbn); err != nil {
			return buildDoneMsg{err: err}
		}
		if port != "" {
			if err := builder.Upload(context.Background(), dir, fqbn, port); err != nil {
				return buildDoneMsg{err: err}
			}
		}
		return buildDoneMsg{}
	}
}

func (m *compileModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case spinner.TickMsg:
		if m.building {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return cmd
		}

	case buildDoneMsg:
		m.building = false
		m.done = msg.err == nil
		m.buildErr = msg.err
		if m.done {
			m.registry.MarkInstalled(m.product)
		}

	case tea.KeyMsg:
		if m.building {
			return nil
		}
		switch msg.String() {
		case "r":
			m.done = false
			return m.Init()
		case "e":
			return switchTo(StateConfigure, m.product, m.version.Tag)
		case "p":
			return switchTo(StateSelectProduct, "", "")
		case "q", "enter":
			if m.done {
				return tea.Quit
			}
			if msg.String() == "q" {
				return tea.Quit
			}
		}
	}
	return nil
}

func (m *compileModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Install firmware"))
	b.WriteString("\n")

	switch {
	case m.building:
		b.WriteString(m.spin.View() + " Compiling and uploading " + m.product + " " + m.version.String() + "...\n")

	case m.buildErr != nil:
		b.WriteString(ErrorStyle.Render("Install failed: " + m.buildErr.Error()))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("r retry • e edit config • p another product • q quit"))
		return b.String()

	case m.done:
		b.WriteString(SuccessStyle.Render("Firmware installed successfully."))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("p install another product • enter/q quit"))
		return b.String()
	}

	return b.String()
}
