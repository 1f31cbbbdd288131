// Package config provides user configuration management for EX-Installer.
//
// This package manages a YAML-based configuration file that remembers the
// selections a user made in earlier sessions (product, firmware version,
// target device) along with application-wide preferences. The configuration
// follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/exinstall/config.yaml or $HOME/.config/exinstall/config.yaml
//   - macOS: $HOME/.config/exinstall/config.yaml
//   - Windows: %LOCALAPPDATA%\exinstall\config.yaml
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Remember this session's selections
//	registry.RememberSelection("ex_turntable", "v0.7.0-Prod", "arduino:avr:nano", "/dev/ttyUSB0")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
