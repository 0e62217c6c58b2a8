// Package cmd provides Cobra CLI commands for lockbreak.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/lockbreak/internal/bootstrap"
	"github.com/bnema/lockbreak/internal/cli"
	"github.com/bnema/lockbreak/internal/domain/build"
	"github.com/bnema/lockbreak/internal/domain/entity"
)

// GUIRunner starts the graphical front-end and returns its exit code.
type GUIRunner func(ctx context.Context, app *cli.App, overrides bootstrap.Overrides) int

var (
	app       *cli.App
	buildInfo build.Info
	guiRunner GUIRunner

	flagMinutes float64
	flagMode    string

	rootCmd = &cobra.Command{
		Use:   "lockbreak",
		Short: "Lock the screen at a fixed interval to force breaks",
		Long: `Lockbreak locks your screen every N minutes so you step away from it.

The lock is either a fullscreen overlay with a countdown and an unlock button,
or the operating system's own lock screen.

Run without a subcommand to open the settings window, or use 'lockbreak tui'
for the terminal front-end.`,
		SilenceUsage:      true,
		PersistentPreRunE: initApp,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
		RunE: runGUI,
	}
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the settings window",
	Long: `Open the GTK4 settings window and start locking on demand.

Examples:
  lockbreak run
  lockbreak run --minutes 45 --mode system`,
	RunE: runGUI,
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&flagMinutes, "minutes", 0, "default interval in minutes (overrides timer.default_minutes)")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "", "lock mode: overlay or system (overrides lock.mode)")
	rootCmd.AddCommand(runCmd)
}

func initApp(cmd *cobra.Command, _ []string) error {
	// Skip initialization for commands that don't need app context
	switch cmd.Name() {
	case "help", "completion":
		return nil
	}

	var opts cli.AppOptions
	if cmd.Name() == "tui" {
		// Console logs would tear the alternate screen.
		opts.LogOutput = io.Discard
	}

	var err error
	app, err = cli.NewApp(opts)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	app.BuildInfo = buildInfo
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

// SetGUIRunner registers the graphical front-end. The GTK code lives in main so
// the CLI stays buildable without it.
func SetGUIRunner(runner GUIRunner) {
	guiRunner = runner
}

// overridesFromFlags validates --minutes and --mode.
func overridesFromFlags() (bootstrap.Overrides, error) {
	var o bootstrap.Overrides
	if flagMinutes < 0 {
		return o, fmt.Errorf("--minutes: %w", entity.ErrInvalidInterval)
	}
	o.Minutes = flagMinutes
	if flagMode != "" {
		mode, err := entity.ParseLockMode(flagMode)
		if err != nil {
			return o, fmt.Errorf("--mode %q: %w", flagMode, err)
		}
		o.Mode = mode
	}
	return o, nil
}

func runGUI(_ *cobra.Command, _ []string) error {
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	if guiRunner == nil {
		return errors.New("graphical front-end not available in this build")
	}

	overrides, err := overridesFromFlags()
	if err != nil {
		return err
	}

	if code := guiRunner(app.Ctx(), app, overrides); code != 0 {
		return fmt.Errorf("lockbreak exited with code %d", code)
	}
	return nil
}
