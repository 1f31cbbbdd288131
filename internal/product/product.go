// Package product holds the static catalog of installable products.
//
// Each entry records where the product's firmware lives and which boards it
// can be installed onto. The catalog is populated at compile time and never
// persisted; it is the source of truth for product-scoped navigation.
package product

import (
	"fmt"
	"sort"
	"strings"
)

// Details describes one installable product.
type Details struct {
	// ID is the stable identifier used for navigation and session context.
	ID string
	// Name is the human-readable product name.
	Name string
	// RepoName is the owner/name slug of the firmware repository.
	RepoName string
	// RepoURL is the clone URL of the firmware repository.
	RepoURL string
	// ArchiveURL is the base URL for release tag archives.
	ArchiveURL string
	// SupportedDevices lists the board FQBNs the firmware runs on.
	SupportedDevices []string
}

// LocalDir returns the directory name the product repository is checked out
// into (the repository name without the owner).
func (d Details) LocalDir() string {
	if i := strings.IndexByte(d.RepoName, '/'); i >= 0 {
		return d.RepoName[i+1:]
	}
	return d.RepoName
}

// SupportsDevice reports whether the given board FQBN can run this product.
func (d Details) SupportsDevice(fqbn string) bool {
	for _, supported := range d.SupportedDevices {
		if supported == fqbn {
			return true
		}
	}
	return false
}

// catalog is keyed by product ID.
var catalog = map[string]Details{
	"ex_commandstation": {
		ID:         "ex_commandstation",
		Name:       "EX-CommandStation",
		RepoName:   "DCC-EX/CommandStation-EX",
		RepoURL:    "https://github.com/DCC-EX/CommandStation-EX.git",
		ArchiveURL: "https://github.com/DCC-EX/CommandStation-EX/archive/refs/tags/",
		SupportedDevices: []string{
			"arduino:avr:uno",
			"arduino:avr:nano",
			"arduino:avr:nano:cpu=atmega328",
			"arduino:avr:mega",
			"esp32:esp32:esp32",
			"STMicroelectronics:stm32:Nucleo_64:pnum=NUCLEO_F411RE",
			"STMicroelectronics:stm32:Nucleo_64:pnum=NUCLEO_F446RE",
		},
	},
	"ex_turntable": {
		ID:         "ex_turntable",
		Name:       "EX-Turntable",
		RepoName:   "DCC-EX/EX-Turntable",
		RepoURL:    "https://github.com/DCC-EX/EX-Turntable.git",
		ArchiveURL: "https://github.com/DCC-EX/EX-Turntable/archive/refs/tags/",
		SupportedDevices: []string{
			"arduino:avr:uno",
			"arduino:avr:nano",
			"arduino:avr:nano:cpu=atmega328",
		},
	},
}

// Lookup returns the details for a product ID.
func Lookup(id string) (Details, bool) {
	d, ok := catalog[id]
	return d, ok
}

// IDs returns all product IDs in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CheckDevice validates that the selected board can run the product,
// returning a user-facing error when it cannot.
func CheckDevice(id, fqbn, deviceName string) error {
	d, ok := catalog[id]
	if !ok {
		return fmt.Errorf("unknown product %q", id)
	}
	if !d.SupportsDevice(fqbn) {
		return fmt.Errorf("device type %s is not supported for use with %s", deviceName, d.Name)
	}
	return nil
}
