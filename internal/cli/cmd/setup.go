package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/lockbreak/assets"
	"github.com/bnema/lockbreak/internal/application/usecase"
	"github.com/bnema/lockbreak/internal/infrastructure/desktop"
)

var (
	setupAutostart     bool
	setupAutostartMode string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Setup desktop integration",
	Long: `Setup lockbreak's integration with the desktop environment.

Subcommands:
  install  - Install the launcher entry and icon, optionally start at login
  remove   - Remove every file installed by 'setup install'`,
}

var setupInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install desktop file",
	Long: `Install lockbreak.desktop to the user's applications directory and the
icon to the hicolor theme.

With --autostart, also install an entry in $XDG_CONFIG_HOME/autostart so the
settings window opens at login. --minutes and --mode are kept in that entry.

This command is idempotent - safe to run multiple times.`,
	RunE: runSetupInstall,
}

var setupRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove desktop integration",
	RunE:  runSetupRemove,
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.AddCommand(setupInstallCmd)
	setupCmd.AddCommand(setupRemoveCmd)
	setupInstallCmd.Flags().BoolVar(&setupAutostart, "autostart", false, "open lockbreak at login")
	setupInstallCmd.Flags().StringVar(&setupAutostartMode, "autostart-frontend", "run", "front-end started at login: run or tui")
}

func runSetupInstall(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if setupAutostartMode != "run" && setupAutostartMode != "tui" {
		return fmt.Errorf("--autostart-frontend must be run or tui, got %q", setupAutostartMode)
	}

	theme := app.Theme
	adapter, err := desktop.New()
	if err != nil {
		return err
	}

	result, err := usecase.NewInstallDesktopUseCase(adapter).Execute(app.Ctx(), usecase.InstallDesktopInput{
		IconData:      assets.LogoSVG,
		Autostart:     setupAutostart,
		AutostartArgs: autostartArgs(),
	})
	if err != nil {
		fmt.Printf("%s %s\n", theme.ErrorStyle.Render("✗"), err.Error())
		return err
	}

	printInstalled := func(what, path string, existed bool) {
		verb := "installed to"
		if existed {
			verb = "updated at"
		}
		fmt.Printf("%s %s %s %s\n", theme.SuccessStyle.Render("✓"), what, verb, theme.Highlight.Render(path))
	}

	printInstalled("Desktop file", result.DesktopPath, result.WasDesktopExisting)
	if result.IconPath != "" {
		printInstalled("Icon", result.IconPath, result.WasIconExisting)
	}
	if result.AutostartPath != "" {
		printInstalled("Autostart entry", result.AutostartPath, result.WasAutostartExisting)
	} else {
		fmt.Println()
		fmt.Println(theme.Subtle.Render("Run 'lockbreak setup install --autostart' to open lockbreak at login"))
	}
	return nil
}

// autostartArgs forwards --minutes and --mode to the login entry.
func autostartArgs() []string {
	args := []string{setupAutostartMode}
	if flagMinutes > 0 {
		args = append(args, "--minutes", strconv.FormatFloat(flagMinutes, 'f', -1, 64))
	}
	if flagMode != "" {
		args = append(args, "--mode", flagMode)
	}
	return args
}

func runSetupRemove(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	adapter, err := desktop.New()
	if err != nil {
		return err
	}

	result, err := usecase.NewRemoveDesktopUseCase(adapter).Execute(app.Ctx())
	if err != nil {
		return err
	}

	if !result.WasDesktopInstalled && !result.WasAutostartInstalled && !result.WasIconInstalled {
		fmt.Println(app.Theme.Subtle.Render("Nothing to remove"))
		return nil
	}
	fmt.Printf("%s Desktop integration removed\n", app.Theme.SuccessStyle.Render("✓"))
	return nil
}
