package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/railkit/exinstall/internal/config"
	"github.com/railkit/exinstall/internal/gitclient"
	"github.com/railkit/exinstall/internal/product"
	"github.com/railkit/exinstall/internal/semver"
	"github.com/railkit/exinstall/internal/session"
	"github.com/railkit/exinstall/internal/workspace"
)

// tagsMsg carries the result of syncing the firmware repository and
// listing its release tags.
type tagsMsg struct {
	tags []string
	err  error
}

// selectVersionModel syncs the product repository and lets the user pick a
// release tag. The screen is recreated when the product changes: its tag
// list belongs to one repository.
type selectVersionModel struct {
	ctx      *session.Context
	registry *config.Registry
	product  string

	spin    spinner.Model
	syncing bool
	tags    []string
	cursor  int
	syncErr error
	width   int
}

func newSelectVersionModel(ctx *session.Context, registry *config.Registry) *selectVersionModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle
	return &selectVersionModel{ctx: ctx, registry: registry, spin: sp, syncing: true}
}

func (m *selectVersionModel) ID() string { return StateSelectVersion }

func (m *selectVersionModel) SetProduct(p string) { m.product = p }

func (m *selectVersionModel) Init() tea.Cmd {
	m.syncing = true
	m.syncErr = nil
	return tea.Batch(m.spin.Tick, m.syncRepo())
}

// syncRepo clones or refreshes the firmware checkout and lists its tags.
func (m *selectVersionModel) syncRepo() tea.Cmd {
	repos := m.ctx.Services().Repos
	id := m.product
	includeDevel := m.registry.Preferences.UseDevelVersions
	return func() tea.Msg {
		details, ok := product.Lookup(id)
		if !ok {
			return tagsMsg{err: fmt.Errorf("unknown product %q", id)}
		}
		dir, err := workspace.InstallDir(details.LocalDir())
		if err != nil {
			return tagsMsg{err: err}
		}
		if err := repos.CloneOrUpdate(context.Background(), details.RepoURL, dir, ""); err != nil {
			return tagsMsg{err: err}
		}
		tags, err := repos.ListTags(context.Background(), dir)
		if err != nil {
			return tagsMsg{err: err}
		}
		tags = filterTags(tags, includeDevel)
		gitclient.SortTagsDescending(tags)
		return tagsMsg{tags: tags}
	}
}

// filterTags keeps production releases, plus development releases when the
// user opted in. Unparsable tags are dropped from the list.
func filterTags(tags []string, includeDevel bool) []string {
	var kept []string
	for _, t := range tags {
		v := semver.Parse(t)
		if !v.Known() {
			continue
		}
		if v.Channel == semver.ChannelDevel && !includeDevel {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

func (m *selectVersionModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case spinner.TickMsg:
		if m.syncing {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return cmd
		}

	case tagsMsg:
		m.syncing = false
		m.tags = msg.tags
		m.syncErr = msg.err
		m.cursor = 0
		// Preselect the version used last time, when it is still listed.
		if state := m.registry.GetProduct(m.product); state != nil {
			for i, t := range m.tags {
				if t == state.LastVersion {
					m.cursor = i
					break
				}
			}
		}

	case tea.KeyMsg:
		if m.syncing {
			return nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tags)-1 {
				m.cursor++
			}
		case "r":
			return m.Init()
		case "d":
			m.registry.Preferences.UseDevelVersions = !m.registry.Preferences.UseDevelVersions
			return m.Init()
		case "enter":
			if len(m.tags) == 0 {
				return nil
			}
			return switchTo(StateConfigure, m.product, m.tags[m.cursor])
		case "esc":
			return switchTo(StateSelectDevice, m.product, "")
		case "q":
			return tea.Quit
		}
	}
	return nil
}

func (m *selectVersionModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Select the firmware version"))
	b.WriteString("\n")

	switch {
	case m.syncing:
		b.WriteString(m.spin.View() + " Syncing firmware repository...\n")

	case m.syncErr != nil:
		b.WriteString(ErrorStyle.Render("Could not list versions: " + m.syncErr.Error()))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("r retry • esc back • q quit"))
		return b.String()

	case len(m.tags) == 0:
		b.WriteString(WarningStyle.Render("No releases found for this product."))
		b.WriteString("\n")

	default:
		for i, t := range m.tags {
			label := t
			if i == 0 {
				label += "  (latest)"
			}
			if i == m.cursor {
				b.WriteString(SelectedMenuItemStyle.Render("> " + label))
			} else {
				b.WriteString(MenuItemStyle.Render(label))
			}
			b.WriteString("\n")
		}
	}

	devel := "off"
	if m.registry.Preferences.UseDevelVersions {
		devel = "on"
	}
	b.WriteString(HelpStyle.Render(fmt.Sprintf(
		"up/down select • enter confirm • d devel versions (%s) • r refresh • esc back • q quit", devel)))
	return b.String()
}
