// Package session holds the state shared across the installer workflow: the
// selected product, the target device, and the parsed firmware version.
//
// A single Context is created at startup and mutated as the user progresses.
// All mutation happens on the event loop, one user action at a time, so the
// Context carries no locking. The external tool wrappers the workflow needs
// are injected once as Services; nothing in this package reaches for globals.
package session

import (
	"context"

	"github.com/railkit/exinstall/internal/semver"
)

// Board describes one attached device as reported by the board lister.
type Board struct {
	Name string
	FQBN string
	Port string
}

// BoardLister lists the devices currently attached to the machine.
type BoardLister interface {
	ListBoards(ctx context.Context) ([]Board, error)
}

// RepoClient clones or refreshes a firmware repository and lists its
// release tags.
type RepoClient interface {
	CloneOrUpdate(ctx context.Context, url, dir, ref string) error
	ListTags(ctx context.Context, dir string) ([]string, error)
}

// SketchBuilder compiles and uploads a firmware sketch for a board.
type SketchBuilder interface {
	Compile(ctx context.Context, sketchDir, fqbn string) error
	Upload(ctx context.Context, sketchDir, fqbn, port string) error
}

// Services bundles the external collaborators the workflow consumes. They
// are constructed once in main and live for the process lifetime.
type Services struct {
	Boards  BoardLister
	Repos   RepoClient
	Builder SketchBuilder
}

// Context is the session state threaded through the workflow. Screens read
// it; the navigation controller is the only writer of CurrentStateID.
type Context struct {
	services Services

	CurrentStateID string
	ActiveProduct  string
	Device         string
	Port           string
	Version        semver.Version
}

// New creates a session context with the given collaborators.
func New(services Services) *Context {
	return &Context{services: services}
}

// Services returns the injected collaborators.
func (c *Context) Services() Services {
	return c.services
}

// SetProduct records the product being configured.
func (c *Context) SetProduct(id string) {
	c.ActiveProduct = id
}

// SetDevice records the target device FQBN and the port it was found on.
func (c *Context) SetDevice(fqbn, port string) {
	c.Device = fqbn
	c.Port = port
}

// SetVersionTag parses and records the selected firmware version. The
// previous descriptor is replaced, never mutated. A malformed tag yields
// the unknown sentinel; selection never fails.
func (c *Context) SetVersionTag(tag string) {
	c.Version = semver.Parse(tag)
}
