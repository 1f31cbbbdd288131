package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/railkit/exinstall/internal/arduino"
	"github.com/railkit/exinstall/internal/config"
	"github.com/railkit/exinstall/internal/directive"
	"github.com/railkit/exinstall/internal/gitclient"
	"github.com/railkit/exinstall/internal/logging"
	"github.com/railkit/exinstall/internal/product"
	"github.com/railkit/exinstall/internal/semver"
	"github.com/railkit/exinstall/internal/session"
	"github.com/railkit/exinstall/internal/turntable"
	"github.com/railkit/exinstall/internal/version"
	"github.com/railkit/exinstall/internal/wizard/tui"
	"github.com/railkit/exinstall/internal/workspace"
)

// Command flags
var (
	valuesFile string
	versionTag string
	outputPath string
)

func init() {
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(generateCmd)
}

// newServices constructs the external tool wrappers used by every command.
func newServices() session.Services {
	logger := logging.GetLogger()
	return session.Services{
		Boards:  arduino.NewClient(arduino.DefaultConfig(), logger),
		Repos:   gitclient.NewClient(gitclient.DefaultConfig(), logger),
		Builder: arduino.NewClient(arduino.DefaultConfig(), logger),
	}
}

// wizardCmd launches the interactive TUI wizard
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch the interactive installer wizard",
	Long: `Launch an interactive TUI wizard for installing firmware.

The wizard walks through:
- Selecting the product to install
- Selecting the attached device to install onto
- Selecting the firmware version
- Configuring the firmware parameters
- Compiling and uploading

This is the recommended way to install firmware for most users.`,
	Example: `  # Launch the wizard
  exinstall wizard
  # Or simply (wizard is default):
  exinstall`,
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the wizard needs an interactive terminal; use 'exinstall generate' for scripted runs")
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := session.New(newServices())
	model := tui.NewAppModel(ctx, registry)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard error: %w", err)
	}
	if app, ok := final.(tui.AppModel); ok && app.FatalErr() != nil {
		return app.FatalErr()
	}

	// Persist selections for the next session.
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// boardsCmd lists attached boards
var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List attached Arduino boards",
	Long: `List the Arduino boards currently attached to this machine.

Requires arduino-cli to be installed and on the PATH.`,
	RunE: runBoards,
}

func runBoards(cmd *cobra.Command, args []string) error {
	services := newServices()
	boards, err := services.Boards.ListBoards(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list boards: %w", err)
	}

	if len(boards) == 0 {
		fmt.Println("No boards detected.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the device is connected via USB")
		fmt.Println("  - Check that the USB cable carries data, not just power")
		fmt.Println("  - Verify arduino-cli can see the board: arduino-cli board list")
		return nil
	}

	fmt.Printf("Found %d board(s):\n\n", len(boards))
	for i, b := range boards {
		fmt.Printf("%d. %s\n", i+1, b.Name)
		fmt.Printf("   FQBN: %s\n", b.FQBN)
		fmt.Printf("   Port: %s\n", b.Port)
		fmt.Println()
	}
	return nil
}

// tagsCmd lists release tags for a product
var tagsCmd = &cobra.Command{
	Use:   "tags <product>",
	Short: "List release versions for a product",
	Long: `Clone or refresh a product's firmware repository and list its
release tags, newest first.`,
	Example: `  exinstall tags ex_turntable
  exinstall tags ex_commandstation`,
	Args: cobra.ExactArgs(1),
	RunE: runTags,
}

func runTags(cmd *cobra.Command, args []string) error {
	details, ok := product.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown product %q (known: %v)", args[0], product.IDs())
	}

	services := newServices()
	dir, err := workspace.InstallDir(details.LocalDir())
	if err != nil {
		return err
	}

	fmt.Printf("Syncing %s...\n", details.RepoName)
	if err := services.Repos.CloneOrUpdate(context.Background(), details.RepoURL, dir, ""); err != nil {
		return fmt.Errorf("failed to sync repository: %w", err)
	}

	tags, err := services.Repos.ListTags(context.Background(), dir)
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}
	gitclient.SortTagsDescending(tags)

	for _, t := range tags {
		fmt.Println(t)
	}
	return nil
}

// generateCmd generates a config.h without the wizard
var generateCmd = &cobra.Command{
	Use:   "generate <product>",
	Short: "Generate a firmware config file from a values file",
	Long: `Generate a product's config.h from a YAML values file, without the
interactive wizard. Parameters omitted from the values file use their
defaults.

The values file maps parameter names to values, for example:

  i2cAddress: "60"
  mode: TURNTABLE
  stepperDriver: ULN2003_HALF_CW

On validation failure every problem is reported and nothing is written.`,
	Example: `  exinstall generate ex_turntable --values turntable.yaml --tag v0.7.0-Prod
  exinstall generate ex_turntable --values turntable.yaml --tag v0.6.1-Prod --output ./config.h`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&valuesFile, "values", "", "YAML file of parameter values")
	generateCmd.Flags().StringVar(&versionTag, "tag", "", "Firmware version tag the config targets")
	generateCmd.Flags().StringVar(&outputPath, "output", "", "Output path (default: the product checkout's config.h)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	details, ok := product.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown product %q (known: %v)", args[0], product.IDs())
	}
	if details.ID != turntable.ProductID {
		return fmt.Errorf("%s has no configurable parameters", details.Name)
	}

	vals := directive.Values{}
	if valuesFile != "" {
		data, err := os.ReadFile(valuesFile)
		if err != nil {
			return fmt.Errorf("failed to read values file: %w", err)
		}
		// Values arrive untyped; the pipeline coerces raw strings itself.
		var raw map[string]interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse values file: %w", err)
		}
		for k, v := range raw {
			vals[k] = fmt.Sprint(v)
		}
	}

	dir, err := workspace.InstallDir(details.LocalDir())
	if err != nil {
		return err
	}
	path := outputPath
	if path == "" {
		path = filepath.Join(dir, "config.h")
	}

	gen := &directive.Generator{
		Schema:     turntable.NewSchema(turntable.ListSteppers(dir)),
		AppVersion: version.Version,
	}

	written, err := gen.WriteConfig(path, vals, semver.Parse(versionTag), details.Name)
	if err != nil {
		if directive.IsValidationError(err) {
			pe := err.(*directive.PipelineError)
			fmt.Fprint(os.Stderr, directive.FormatValidationErrors(pe.Problems))
			return fmt.Errorf("validation failed")
		}
		return err
	}

	fmt.Printf("Config written to %s\n", written)
	return nil
}
