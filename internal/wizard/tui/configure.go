package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/railkit/exinstall/internal/config"
	"github.com/railkit/exinstall/internal/directive"
	"github.com/railkit/exinstall/internal/product"
	"github.com/railkit/exinstall/internal/semver"
	"github.com/railkit/exinstall/internal/session"
	"github.com/railkit/exinstall/internal/turntable"
	"github.com/railkit/exinstall/internal/workspace"
)

// configureModel is the parameter form for the selected product and
// version. The instance is cached per product, so navigating away and back
// keeps half-finished edits exactly as left.
type configureModel struct {
	ctx      *session.Context
	registry *config.Registry
	product  string
	version  semver.Version

	schema *directive.Schema
	values directive.Values

	cursor  int
	editing bool
	input   textinput.Model

	problems []string
	writeErr error
	written  string
	width    int
}

func newConfigureModel(ctx *session.Context, registry *config.Registry) *configureModel {
	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 12
	return &configureModel{ctx: ctx, registry: registry, input: ti}
}

func (m *configureModel) ID() string { return StateConfigure }

func (m *configureModel) SetProduct(p string) {
	m.product = p
	m.schema = schemaFor(p)
	if m.schema != nil {
		m.values = m.schema.DefaultValues()
	}
}

func (m *configureModel) SetVersion(v semver.Version) {
	m.version = v
}

// schemaFor returns the parameter schema for a product, or nil when the
// product has no configurable parameters.
func schemaFor(id string) *directive.Schema {
	if id != turntable.ProductID {
		return nil
	}
	steppers := turntable.DefaultSteppers
	if details, ok := product.Lookup(id); ok {
		if dir, err := workspace.InstallDir(details.LocalDir()); err == nil {
			steppers = turntable.ListSteppers(dir)
		}
	}
	return turntable.NewSchema(steppers)
}

func (m *configureModel) Init() tea.Cmd { return nil }

func (m *configureModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return nil
}

// updateEditing handles keys while a numeric field is being typed into.
func (m *configureModel) updateEditing(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		f := m.schema.Fields[m.cursor]
		m.values[f.Name] = m.input.Value()
		m.editing = false
		return nil
	case "esc":
		m.editing = false
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// updateBrowsing handles keys while moving around the form.
func (m *configureModel) updateBrowsing(msg tea.KeyMsg) tea.Cmd {
	if m.schema == nil {
		switch msg.String() {
		case "enter":
			return switchTo(StateCompile, m.product, m.version.Tag)
		case "esc":
			return switchTo(StateSelectVersion, m.product, "")
		case "q":
			return tea.Quit
		}
		return nil
	}

	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "enter", " ":
		m.activateField()
	case "left", "h":
		m.cycleChoice(-1)
	case "right", "l":
		m.cycleChoice(1)
	case "t":
		m.registry.Preferences.EditConfigBeforeBuild = !m.registry.Preferences.EditConfigBeforeBuild
	case "w":
		return m.writeConfig()
	case "c":
		if m.written != "" {
			return switchTo(StateCompile, m.product, m.version.Tag)
		}
	case "esc":
		return switchTo(StateSelectVersion, m.product, "")
	case "q":
		return tea.Quit
	}
	return nil
}

// moveCursor moves to the next editable field in the given direction.
func (m *configureModel) moveCursor(delta int) {
	fields := m.schema.Fields
	i := m.cursor
	for {
		i += delta
		if i < 0 || i >= len(fields) {
			return
		}
		if fields[i].Editable(m.version) {
			m.cursor = i
			return
		}
	}
}

// activateField toggles a bool, cycles a choice, or opens the editor for a
// numeric field.
func (m *configureModel) activateField() {
	f := m.schema.Fields[m.cursor]
	if !f.Editable(m.version) {
		return
	}
	switch f.Kind {
	case directive.KindBool:
		if directive.IsOn(m.values[f.Name]) {
			m.values[f.Name] = "off"
		} else {
			m.values[f.Name] = "on"
		}
	case directive.KindChoice:
		m.cycleChoice(1)
	case directive.KindInt, directive.KindOptionalInt:
		m.input.SetValue(m.values[f.Name])
		m.input.Focus()
		m.editing = true
	}
}

// cycleChoice steps a choice field through its declared options.
func (m *configureModel) cycleChoice(delta int) {
	f := m.schema.Fields[m.cursor]
	if f.Kind != directive.KindChoice || !f.Editable(m.version) || len(f.Choices) == 0 {
		return
	}
	cur := -1
	for i, c := range f.Choices {
		if c == m.values[f.Name] {
			cur = i
			break
		}
	}
	next := (cur + delta + len(f.Choices)) % len(f.Choices)
	m.values[f.Name] = f.Choices[next]
}

// writeConfig runs the directive pipeline and writes the artifact.
func (m *configureModel) writeConfig() tea.Cmd {
	m.problems = nil
	m.writeErr = nil
	m.written = ""

	details, ok := product.Lookup(m.product)
	if !ok {
		m.writeErr = fmt.Errorf("unknown product %q", m.product)
		return nil
	}
	dir, err := workspace.InstallDir(details.LocalDir())
	if err != nil {
		m.writeErr = err
		return nil
	}

	gen := &directive.Generator{Schema: m.schema, AppVersion: AppVersion()}
	path := filepath.Join(dir, "config.h")
	written, err := gen.WriteConfig(path, m.values, m.version, details.Name)
	if err != nil {
		var pe *directive.PipelineError
		if directive.IsValidationError(err) {
			pe = err.(*directive.PipelineError)
			m.problems = pe.Problems
		} else {
			m.writeErr = err
		}
		return nil
	}

	m.written = written
	m.registry.RememberSelection(m.product, m.version.Tag, m.ctx.Device, m.ctx.Port)

	if m.registry.Preferences.EditConfigBeforeBuild {
		// The user wants to hand-edit the file first; stay here and show
		// where it went.
		return nil
	}
	return switchTo(StateCompile, m.product, m.version.Tag)
}

func (m *configureModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle(fmt.Sprintf("Configure %s (%s)", m.product, m.version.String())))
	b.WriteString("\n")

	if m.schema == nil {
		b.WriteString(InfoBoxStyle.Render(
			"This product has no configurable parameters in the installer.\n" +
				"Continuing installs the firmware with its default configuration."))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("enter continue • esc back • q quit"))
		return b.String()
	}

	for i, f := range m.schema.Fields {
		label := FieldLabelStyle.Render(f.Name)
		value := m.values[f.Name]
		if value == "" {
			value = "(default)"
		}

		switch {
		case !f.Editable(m.version):
			b.WriteString(DisabledFieldStyle.Render(fmt.Sprintf("    %s fixed (requires v%d.%d.%d)",
				label, f.MinVersion.Major, f.MinVersion.Minor, f.MinVersion.Patch)))
		case i == m.cursor && m.editing:
			b.WriteString(SelectedMenuItemStyle.Render("> " + label + m.input.View()))
		case i == m.cursor:
			b.WriteString(SelectedMenuItemStyle.Render("> " + label + value))
		default:
			b.WriteString("    " + label + value)
		}
		b.WriteString("\n")
	}

	if len(m.problems) > 0 {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(directive.FormatValidationErrors(m.problems)))
		b.WriteString("\n")
	}
	if m.writeErr != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("Could not write config: " + m.writeErr.Error()))
		b.WriteString("\n")
	}
	if m.written != "" {
		b.WriteString("\n")
		b.WriteString(SuccessStyle.Render("Config written to " + m.written + "\nEdit it if needed, then press c to compile."))
		b.WriteString("\n")
	}

	edit := "off"
	if m.registry.Preferences.EditConfigBeforeBuild {
		edit = "on"
	}
	b.WriteString(HelpStyle.Render(fmt.Sprintf(
		"up/down field • enter/space change • w write config • t edit-before-build (%s) • esc back • q quit", edit)))
	return b.String()
}
