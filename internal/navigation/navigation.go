// Package navigation implements the workflow state machine: a registry of
// named states, an instance cache that preserves in-progress edits, and the
// reuse/recreate decision applied when the user moves between screens.
package navigation

import (
	"errors"
	"fmt"

	"github.com/railkit/exinstall/internal/logging"
	"github.com/railkit/exinstall/internal/semver"
	"github.com/railkit/exinstall/internal/session"
)

// ErrUnknownState is returned when a transition names a state that was
// never registered. This is a wiring defect, not a user-facing condition.
var ErrUnknownState = errors.New("unknown state")

// ErrProductRequired is returned when a product-scoped state is entered
// with no product selected anywhere in the session.
var ErrProductRequired = errors.New("product-scoped state entered without a product")

// State is a navigable unit of the workflow. Implementations additionally
// implement ProductScoped or VersionAware when they consume that context.
type State interface {
	ID() string
}

// ProductScoped is implemented by states that work on a specific product.
type ProductScoped interface {
	SetProduct(product string)
}

// VersionAware is implemented by states whose behaviour depends on the
// selected firmware version.
type VersionAware interface {
	SetVersion(v semver.Version)
}

// Factory constructs a fresh instance of a state.
type Factory func() (State, error)

// Entry declares one state's navigation behaviour. ProductScoped states
// receive the product on entry; states flagged RecreateOnProductChange are
// discarded and rebuilt when entered for a different product than before.
type Entry struct {
	ID                      string
	ProductScoped           bool
	RecreateOnProductChange bool
}

// Action is the outcome of the reuse/recreate decision.
type Action int

const (
	// CreateFresh instantiates the state for the first time.
	CreateFresh Action = iota
	// Reuse activates the cached instance, keeping its in-progress edits.
	Reuse
	// Recreate discards the cached instance and builds a new one.
	Recreate
)

// String returns a human-readable name for the action
func (a Action) String() string {
	switch a {
	case CreateFresh:
		return "create"
	case Reuse:
		return "reuse"
	case Recreate:
		return "recreate"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Decide evaluates the transition decision table. hasPrevious reports
// whether any state was active before this transition; cached whether an
// instance of the requested state exists; prevProduct is the product
// associated with the previously active state, requested the product of
// this transition.
func Decide(entry Entry, hasPrevious, cached bool, prevProduct, requested string) Action {
	if !hasPrevious || !cached {
		return CreateFresh
	}
	if !entry.RecreateOnProductChange || requested == prevProduct {
		return Reuse
	}
	return Recreate
}

// Controller owns the state cache and applies transitions. Exactly one
// state is active after any successful transition; inactive cached states
// keep their internal data untouched until recreated.
type Controller struct {
	ctx       *session.Context
	entries   map[string]Entry
	factories map[string]Factory

	cache        map[string]State
	stateProduct map[string]string
	activeID     string
}

// NewController creates an empty controller bound to the session context.
func NewController(ctx *session.Context) *Controller {
	return &Controller{
		ctx:          ctx,
		entries:      make(map[string]Entry),
		factories:    make(map[string]Factory),
		cache:        make(map[string]State),
		stateProduct: make(map[string]string),
	}
}

// Register adds a state to the registry. Registration happens once at
// startup; re-registering an id replaces the earlier entry.
func (c *Controller) Register(entry Entry, factory Factory) {
	c.entries[entry.ID] = entry
	c.factories[entry.ID] = factory
}

// Active returns the currently active state, or nil before the first
// transition.
func (c *Controller) Active() State {
	if c.activeID == "" {
		return nil
	}
	return c.cache[c.activeID]
}

// Switch transitions to the named state, carrying the optional product and
// version tag into it. A malformed version tag never blocks the
// transition; it parses to the unknown sentinel. The returned state is the
// active instance.
func (c *Controller) Switch(stateID, product, versionTag string) (State, error) {
	entry, ok := c.entries[stateID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownState, stateID)
	}

	effProduct := product
	if effProduct == "" {
		// Re-entering without an explicit product keeps the prior
		// association, falling back to the session's active product.
		if p, ok := c.stateProduct[stateID]; ok && p != "" {
			effProduct = p
		} else {
			effProduct = c.ctx.ActiveProduct
		}
	}
	if entry.ProductScoped && effProduct == "" {
		return nil, fmt.Errorf("%w: %q", ErrProductRequired, stateID)
	}

	_, cached := c.cache[stateID]
	prevProduct := c.stateProduct[c.activeID]
	action := Decide(entry, c.activeID != "", cached, prevProduct, effProduct)
	logging.LogNavigation(stateID, action.String(), effProduct)

	hasVersion := versionTag != ""

	switch action {
	case CreateFresh, Recreate:
		st, err := c.factories[stateID]()
		if err != nil {
			return nil, fmt.Errorf("constructing state %q: %w", stateID, err)
		}
		if entry.ProductScoped {
			if ps, ok := st.(ProductScoped); ok {
				ps.SetProduct(effProduct)
			}
		}
		if hasVersion {
			if va, ok := st.(VersionAware); ok {
				va.SetVersion(semver.Parse(versionTag))
			}
		}
		c.cache[stateID] = st

	case Reuse:
		if entry.ProductScoped && effProduct != c.stateProduct[stateID] {
			// A reused state entered for a different product must not keep
			// working against the old one.
			if ps, ok := c.cache[stateID].(ProductScoped); ok {
				ps.SetProduct(effProduct)
			}
		}
		if hasVersion {
			if va, ok := c.cache[stateID].(VersionAware); ok {
				va.SetVersion(semver.Parse(versionTag))
			}
		}
	}

	c.stateProduct[stateID] = effProduct
	c.activeID = stateID

	c.ctx.CurrentStateID = stateID
	if entry.ProductScoped {
		c.ctx.SetProduct(effProduct)
	}
	if hasVersion {
		c.ctx.SetVersionTag(versionTag)
	}

	return c.cache[stateID], nil
}
