package config

import "time"

// Registry represents the entire user configuration file. It stores
// per-product selections from earlier sessions and application-wide
// preferences, so a returning user lands back where they left off.
type Registry struct {
	Version     int                      `yaml:"version"`
	Products    map[string]*ProductState `yaml:"products,omitempty"` // Keyed by product id
	Preferences *Preferences             `yaml:"preferences,omitempty"`
}

// ProductState remembers the last selections made for one product.
type ProductState struct {
	LastVersion   string    `yaml:"last_version,omitempty"`   // Last selected version tag
	LastDevice    string    `yaml:"last_device,omitempty"`    // Last selected board FQBN
	LastPort      string    `yaml:"last_port,omitempty"`      // Port the board was on
	LastInstalled time.Time `yaml:"last_installed,omitempty"` // Last successful install
	ConfigDir     string    `yaml:"config_dir,omitempty"`     // User's external config file directory
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	// EditConfigBeforeBuild opens the generated config for manual editing
	// instead of proceeding straight to compile and upload.
	EditConfigBeforeBuild bool `yaml:"edit_config_before_build"`
	// UseDevelVersions includes development-channel tags in version lists.
	UseDevelVersions bool `yaml:"use_devel_versions"`
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Products:    make(map[string]*ProductState),
		Preferences: &Preferences{},
	}
}

// GetProduct retrieves remembered state by product id.
// Returns nil if the product has no stored state.
func (r *Registry) GetProduct(id string) *ProductState {
	return r.Products[id]
}

// EnsureProduct returns the stored state for a product, creating an empty
// entry when none exists.
func (r *Registry) EnsureProduct(id string) *ProductState {
	if r.Products == nil {
		r.Products = make(map[string]*ProductState)
	}

	if state, exists := r.Products[id]; exists {
		return state
	}

	state := &ProductState{}
	r.Products[id] = state
	return state
}

// RememberSelection records the version and device chosen for a product.
func (r *Registry) RememberSelection(id, versionTag, fqbn, port string) {
	state := r.EnsureProduct(id)
	state.LastVersion = versionTag
	state.LastDevice = fqbn
	state.LastPort = port
}

// MarkInstalled records a successful install time for a product.
func (r *Registry) MarkInstalled(id string) {
	r.EnsureProduct(id).LastInstalled = time.Now()
}
