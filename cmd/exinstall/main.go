// Exinstall is an installer for DCC-EX firmware.
//
// It downloads a firmware release, generates its configuration from an
// interactive parameter form, then compiles and uploads it to an attached
// Arduino device using arduino-cli. Git and arduino-cli must be installed
// and on the PATH.
//
// Usage:
//
//	exinstall [command] [flags]
//
// Running without arguments launches the interactive wizard.
// See 'exinstall --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/railkit/exinstall/internal/logging"
	"github.com/railkit/exinstall/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "exinstall",
	Short: "DCC-EX Firmware Installer",
	Long: `An installer for DCC-EX model railroading firmware.

Downloads a firmware release, generates its configuration, and compiles
and uploads it to an attached Arduino device.

If no command is specified, the interactive wizard will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run wizard when no subcommand provided
		return runWizard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("exinstall %s (commit: %s)\n", version.Version, version.Commit)
	},
}
