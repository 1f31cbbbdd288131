package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/railkit/exinstall/internal/config"
	"github.com/railkit/exinstall/internal/logging"
	"github.com/railkit/exinstall/internal/navigation"
	"github.com/railkit/exinstall/internal/session"
)

// State identifiers for the workflow screens.
const (
	StateWelcome       = "welcome"
	StateSelectProduct = "select_product"
	StateSelectDevice  = "select_device"
	StateSelectVersion = "select_version"
	StateConfigure     = "configure"
	StateCompile       = "compile"
)

// screen is what every workflow screen implements on top of being a
// navigable state. Screens are pointer models: the navigation controller
// caches them between visits so in-progress edits survive.
type screen interface {
	navigation.State
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// switchMsg asks the app model to run a navigation transition.
type switchMsg struct {
	stateID    string
	product    string
	versionTag string
}

// switchTo builds the command for a navigation transition.
func switchTo(stateID, product, versionTag string) tea.Cmd {
	return func() tea.Msg {
		return switchMsg{stateID: stateID, product: product, versionTag: versionTag}
	}
}

// AppModel is the top-level coordinator model. It owns the navigation
// controller and routes messages to whichever screen is active.
type AppModel struct {
	ctx      *session.Context
	nav      *navigation.Controller
	registry *config.Registry

	width  int
	height int

	// fatal holds a navigation wiring defect; set just before quitting.
	fatal error
}

// NewAppModel creates the application model and registers every workflow
// screen with the navigation controller.
func NewAppModel(ctx *session.Context, registry *config.Registry) AppModel {
	nav := navigation.NewController(ctx)

	nav.Register(navigation.Entry{ID: StateWelcome}, func() (navigation.State, error) {
		return newWelcomeModel(), nil
	})
	nav.Register(navigation.Entry{ID: StateSelectProduct}, func() (navigation.State, error) {
		return newSelectProductModel(registry), nil
	})
	nav.Register(navigation.Entry{ID: StateSelectDevice, ProductScoped: true, RecreateOnProductChange: true}, func() (navigation.State, error) {
		return newSelectDeviceModel(ctx), nil
	})
	nav.Register(navigation.Entry{ID: StateSelectVersion, ProductScoped: true, RecreateOnProductChange: true}, func() (navigation.State, error) {
		return newSelectVersionModel(ctx, registry), nil
	})
	nav.Register(navigation.Entry{ID: StateConfigure, ProductScoped: true, RecreateOnProductChange: true}, func() (navigation.State, error) {
		return newConfigureModel(ctx, registry), nil
	})
	nav.Register(navigation.Entry{ID: StateCompile, ProductScoped: true, RecreateOnProductChange: true}, func() (navigation.State, error) {
		return newCompileModel(ctx, registry), nil
	})

	return AppModel{ctx: ctx, nav: nav, registry: registry}
}

// Init starts the workflow on the welcome screen.
func (m AppModel) Init() tea.Cmd {
	return switchTo(StateWelcome, "", "")
}

// active returns the currently active screen, or nil before the first
// transition.
func (m AppModel) active() screen {
	st := m.nav.Active()
	if st == nil {
		return nil
	}
	return st.(screen)
}

// Update handles global messages and routes the rest to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if sc := m.active(); sc != nil {
			sc.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case switchMsg:
		st, err := m.nav.Switch(msg.stateID, msg.product, msg.versionTag)
		if err != nil {
			// An unknown state id is a wiring defect; nothing sensible can
			// continue from here.
			logging.Error("navigation failed", zap.Error(err))
			m.fatal = err
			return m, tea.Quit
		}
		sc := st.(screen)
		sc.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		return m, sc.Init()
	}

	if sc := m.active(); sc != nil {
		return m, sc.Update(msg)
	}
	return m, nil
}

// View renders the active screen under the application header.
func (m AppModel) View() string {
	if m.fatal != nil {
		return ErrorStyle.Render("internal error: " + m.fatal.Error())
	}
	sc := m.active()
	if sc == nil {
		return ""
	}
	return RenderHeader() + "\n" + sc.View()
}

// FatalErr returns the wiring defect that terminated the program, if any.
func (m AppModel) FatalErr() error {
	return m.fatal
}
