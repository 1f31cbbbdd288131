package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/railkit/exinstall/internal/config"
	"github.com/railkit/exinstall/internal/session"
)

// drive runs one message through the app model and returns the updated
// model. Commands returned by the screens are not executed; tests feed
// their messages in directly.
func drive(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	mdl, _ := m.Update(msg)
	return mdl.(AppModel)
}

func TestDeviceScreenFollowsProductChange(t *testing.T) {
	ctx := session.New(session.Services{})
	app := drive(t, NewAppModel(ctx, config.NewRegistry()),
		switchMsg{stateID: StateSelectDevice, product: "ex_turntable"})

	// Back out and pick a different product.
	app = drive(t, app, switchMsg{stateID: StateSelectProduct})
	app = drive(t, app, switchMsg{stateID: StateSelectDevice, product: "ex_commandstation"})

	dev, ok := app.nav.Active().(*selectDeviceModel)
	if !ok {
		t.Fatalf("active state is %T, want the device screen", app.nav.Active())
	}
	if dev.product != "ex_commandstation" {
		t.Fatalf("device screen scoped to %q after selecting ex_commandstation", dev.product)
	}
	if ctx.ActiveProduct != "ex_commandstation" {
		t.Errorf("session product = %q", ctx.ActiveProduct)
	}

	// A Mega is valid for EX-CommandStation but not EX-Turntable; it must
	// be accepted against the newly selected product.
	dev.Update(boardsMsg{boards: []session.Board{{
		Name: "Arduino Mega or Mega 2560",
		FQBN: "arduino:avr:mega",
		Port: "/dev/ttyACM0",
	}}})
	cmd := dev.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if dev.pickErr != nil {
		t.Fatalf("supported board rejected: %v", dev.pickErr)
	}
	if cmd == nil {
		t.Error("expected a transition after confirming a supported board")
	}
	if ctx.Device != "arduino:avr:mega" || ctx.Port != "/dev/ttyACM0" {
		t.Errorf("device not recorded: %q %q", ctx.Device, ctx.Port)
	}
}
